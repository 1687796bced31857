package domain

import (
	"github.com/shopspring/decimal"
)

// Urgency classifies how urgently a treatment item is needed
type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyRoutine   Urgency = "routine"
)

// TreatmentItem is one priced line item in an annual treatment plan
type TreatmentItem struct {
	Category         ServiceCategory `json:"category"`
	Name             string          `json:"name"`
	AnnualFrequency  decimal.Decimal `json:"annualFrequency"`
	UnitCostEstimate decimal.Decimal `json:"unitCostEstimate"`
	Urgency          Urgency         `json:"urgency"`
	RelatedCondition string          `json:"relatedCondition,omitempty"`
	Severity         Severity        `json:"severity,omitempty"`

	// OutOfNetwork models a no-referral/no-network delivery scenario.
	OutOfNetwork bool `json:"outOfNetwork,omitempty"`
}

// AnnualCost is frequency times unit cost
func (ti TreatmentItem) AnnualCost() decimal.Decimal {
	return ti.AnnualFrequency.Mul(ti.UnitCostEstimate)
}

// TreatmentPlanTotals splits the plan's raw annual cost by bucket
type TreatmentPlanTotals struct {
	Treatments  decimal.Decimal `json:"treatments"`
	Medications decimal.Decimal `json:"medications"`
	Preventive  decimal.Decimal `json:"preventive"`
	Total       decimal.Decimal `json:"total"`
}

// TreatmentPlan is an ordered, append-only list of priced treatment items
// plus aggregates derived once from the final item list. The aggregates are
// never mutated independently of the items.
type TreatmentPlan struct {
	Items []TreatmentItem `json:"items"`

	Totals                 TreatmentPlanTotals `json:"totalAnnualCost"`
	HasChronicConditions   bool                `json:"hasChronicConditions"`
	RequiresSpecialistCare bool                `json:"requiresSpecialistCare"`
	EmergencyRiskLevel     RiskLevel           `json:"emergencyRiskLevel"`
}

// HasAdmission reports whether the plan contains an inpatient admission with
// non-zero frequency. ER cost-sharing converts to the inpatient rate when a
// linked admission exists.
func (tp TreatmentPlan) HasAdmission() bool {
	for _, item := range tp.Items {
		if item.Category == CategoryInpatient && item.AnnualFrequency.IsPositive() {
			return true
		}
	}
	return false
}
