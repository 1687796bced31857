package domain

import (
	"github.com/shopspring/decimal"
)

// RiskProtection ranks how well a policy shields the member from a
// worst-case year, relative to its peers in a comparison.
type RiskProtection string

const (
	ProtectionLow    RiskProtection = "low"
	ProtectionMedium RiskProtection = "medium"
	ProtectionHigh   RiskProtection = "high"
)

// AnnualCosts is the premium and cost-sharing breakdown for one policy year
type AnnualCosts struct {
	Premiums        decimal.Decimal `json:"premiums"`
	TreatmentCosts  decimal.Decimal `json:"treatmentCosts"`
	MedicationCosts decimal.Decimal `json:"medicationCosts"`
	TotalCosts      decimal.Decimal `json:"totalCosts"`
}

// AccumulatorProgress reports how far an individual/family accumulator got
type AccumulatorProgress struct {
	Individual decimal.Decimal `json:"individual"`
	Family     decimal.Decimal `json:"family"`
}

// KeyMetrics are the headline numbers surfaced per policy
type KeyMetrics struct {
	RiskProtection       RiskProtection  `json:"riskProtection"`
	EffectiveMonthlyCost decimal.Decimal `json:"effectiveMonthlyCost"`
}

// LedgerEntry is one row of the simulator's replay trace: what the member
// owed for an item and the accumulator state after it was applied.
type LedgerEntry struct {
	Category      ServiceCategory `json:"category"`
	Name          string          `json:"name"`
	MemberOwed    decimal.Decimal `json:"memberOwed"`
	DeductibleMet decimal.Decimal `json:"deductibleMet"`
	OOPMet        decimal.Decimal `json:"oopMet"`
	OutOfNetwork  bool            `json:"outOfNetwork,omitempty"`
}

// CostAnalysis is the simulated true annual cost of one policy against one
// treatment plan. It is created fresh per simulation and never mutated
// after return, except that the comparator assigns RiskProtection relative
// to sibling policies.
type CostAnalysis struct {
	PolicyID   string     `json:"policyId"`
	PolicyName string     `json:"policyName"`
	PolicyType PolicyType `json:"policyType"`

	Annual             AnnualCosts         `json:"annual"`
	DeductibleProgress AccumulatorProgress `json:"deductibleProgress"`
	OOPProgress        AccumulatorProgress `json:"oopProgress"`
	KeyMetrics         KeyMetrics          `json:"keyMetrics"`

	HSAEligible bool `json:"hsaEligible"`

	// Worst-case annual exposure: effective premium plus individual OOP-max.
	WorstCaseExposure decimal.Decimal `json:"worstCaseExposure"`

	Ledger []LedgerEntry `json:"ledger,omitempty"`
}
