package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PolicyType is the managed-care structure of a policy
type PolicyType string

const (
	PolicyHMO  PolicyType = "HMO"
	PolicyPPO  PolicyType = "PPO"
	PolicyEPO  PolicyType = "EPO"
	PolicyPOS  PolicyType = "POS"
	PolicyHDHP PolicyType = "HDHP"
)

// ServiceCategory is the closed set of service categories the engine prices.
// Category lookups are exhaustive; anything unrecognized resolves to
// CategoryOther through ParseServiceCategory, never by silent fallthrough.
type ServiceCategory string

const (
	CategoryPrimaryCare           ServiceCategory = "primary_care"
	CategorySpecialist            ServiceCategory = "specialist"
	CategoryEmergency             ServiceCategory = "emergency"
	CategoryInpatient             ServiceCategory = "inpatient"
	CategoryDiagnostics           ServiceCategory = "diagnostics"
	CategoryImaging               ServiceCategory = "imaging"
	CategoryPreventive            ServiceCategory = "preventive"
	CategoryDrugGeneric           ServiceCategory = "drug_generic"
	CategoryDrugPreferredBrand    ServiceCategory = "drug_preferred_brand"
	CategoryDrugNonPreferredBrand ServiceCategory = "drug_non_preferred_brand"
	CategoryDrugSpecialty         ServiceCategory = "drug_specialty"
	CategoryOther                 ServiceCategory = "other"
)

// AllServiceCategories returns every category in stable replay order.
func AllServiceCategories() []ServiceCategory {
	return []ServiceCategory{
		CategoryPrimaryCare,
		CategorySpecialist,
		CategoryEmergency,
		CategoryInpatient,
		CategoryDiagnostics,
		CategoryImaging,
		CategoryPreventive,
		CategoryDrugGeneric,
		CategoryDrugPreferredBrand,
		CategoryDrugNonPreferredBrand,
		CategoryDrugSpecialty,
		CategoryOther,
	}
}

// IsDrug reports whether the category is a prescription-drug tier.
func (sc ServiceCategory) IsDrug() bool {
	switch sc {
	case CategoryDrugGeneric, CategoryDrugPreferredBrand, CategoryDrugNonPreferredBrand, CategoryDrugSpecialty:
		return true
	}
	return false
}

// ParseServiceCategory normalizes a free-form category string. Unknown
// names map to CategoryOther so malformed extraction output is never fatal.
func ParseServiceCategory(s string) ServiceCategory {
	normalized := ServiceCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, sc := range AllServiceCategories() {
		if sc == normalized {
			return sc
		}
	}
	return CategoryOther
}

// Premium holds annual premium amounts for a policy
type Premium struct {
	IndividualAnnual           decimal.Decimal `yaml:"individual_annual" json:"individualAnnual"`
	FamilyAnnual               decimal.Decimal `yaml:"family_annual" json:"familyAnnual"`
	EmployerContributionAnnual decimal.Decimal `yaml:"employer_contribution_annual" json:"employerContributionAnnual"`
}

// Deductible holds a policy's deductible design. Embedded=true lets an
// individual's spend independently satisfy the individual deductible within
// a family plan; embedded=false requires the family aggregate first.
type Deductible struct {
	Individual decimal.Decimal `yaml:"individual" json:"individual"`
	Family     decimal.Decimal `yaml:"family" json:"family"`
	Embedded   bool            `yaml:"embedded" json:"embedded"`
}

// OutOfPocketMax is the hard cap on annual member cost-sharing
type OutOfPocketMax struct {
	Individual decimal.Decimal `yaml:"individual" json:"individual"`
	Family     decimal.Decimal `yaml:"family" json:"family"`
}

// CostSharingRule describes how one service category is cost-shared.
// Copay and Coinsurance are both optional; a rule with neither is pure
// coinsurance at the policy's default rate.
type CostSharingRule struct {
	Copay            *decimal.Decimal `yaml:"copay,omitempty" json:"copay,omitempty"`
	Coinsurance      *decimal.Decimal `yaml:"coinsurance,omitempty" json:"coinsurance,omitempty"`
	WaivedIfAdmitted bool             `yaml:"waived_if_admitted" json:"waivedIfAdmitted"`
}

// Network describes a policy's provider network and out-of-network terms
type Network struct {
	Size                    int             `yaml:"size" json:"size"`
	OutOfNetworkCoverage    bool            `yaml:"out_of_network_coverage" json:"outOfNetworkCoverage"`
	OutOfNetworkDeductible  decimal.Decimal `yaml:"out_of_network_deductible" json:"outOfNetworkDeductible"`
	OutOfNetworkCoinsurance decimal.Decimal `yaml:"out_of_network_coinsurance" json:"outOfNetworkCoinsurance"`
	OutOfNetworkOopMax      decimal.Decimal `yaml:"out_of_network_oop_max" json:"outOfNetworkOopMax"`
}

// PolicyBenefits holds account eligibility and benefit flags
type PolicyBenefits struct {
	HSAEligible     bool            `yaml:"hsa_eligible" json:"hsaEligible"`
	FSAEligible     bool            `yaml:"fsa_eligible" json:"fsaEligible"`
	WellnessRewards decimal.Decimal `yaml:"wellness_rewards" json:"wellnessRewards"`

	// Some plans exclude specialty-tier drugs from the OOP-max accumulator.
	SpecialtyExcludedFromOOPMax bool `yaml:"specialty_excluded_from_oop_max" json:"specialtyExcludedFromOopMax"`
}

// InsurancePolicy is one candidate policy's full benefit design, normalized
// by the upstream extraction glue. The engine treats it as opaque validated
// input; Sanitize enforces the non-negativity invariants.
type InsurancePolicy struct {
	ID   string     `yaml:"id" json:"id"`
	Name string     `yaml:"name" json:"name"`
	Type PolicyType `yaml:"type" json:"type"`

	Premium        Premium        `yaml:"premium" json:"premium"`
	Deductible     Deductible     `yaml:"deductible" json:"deductible"`
	OutOfPocketMax OutOfPocketMax `yaml:"out_of_pocket_max" json:"outOfPocketMax"`

	// Default member coinsurance rate for categories without an explicit rule.
	Coinsurance decimal.Decimal `yaml:"coinsurance" json:"coinsurance"`

	CostSharing map[ServiceCategory]CostSharingRule `yaml:"cost_sharing" json:"costSharing"`

	Network  Network        `yaml:"network" json:"network"`
	Benefits PolicyBenefits `yaml:"benefits" json:"benefits"`
}

// Sanitize clamps every monetary field to be non-negative. Upstream AI
// extraction is inherently uncertain, so malformed values are corrected
// rather than rejected.
func (p *InsurancePolicy) Sanitize() {
	p.Premium.IndividualAnnual = clampNonNegative(p.Premium.IndividualAnnual)
	p.Premium.FamilyAnnual = clampNonNegative(p.Premium.FamilyAnnual)
	p.Premium.EmployerContributionAnnual = clampNonNegative(p.Premium.EmployerContributionAnnual)
	p.Deductible.Individual = clampNonNegative(p.Deductible.Individual)
	p.Deductible.Family = clampNonNegative(p.Deductible.Family)
	p.OutOfPocketMax.Individual = clampNonNegative(p.OutOfPocketMax.Individual)
	p.OutOfPocketMax.Family = clampNonNegative(p.OutOfPocketMax.Family)
	p.Coinsurance = clampNonNegative(p.Coinsurance)
	p.Network.OutOfNetworkDeductible = clampNonNegative(p.Network.OutOfNetworkDeductible)
	p.Network.OutOfNetworkCoinsurance = clampNonNegative(p.Network.OutOfNetworkCoinsurance)
	p.Network.OutOfNetworkOopMax = clampNonNegative(p.Network.OutOfNetworkOopMax)
	p.Benefits.WellnessRewards = clampNonNegative(p.Benefits.WellnessRewards)

	// Rebuild the rule map so callers' input is never mutated.
	sanitized := make(map[ServiceCategory]CostSharingRule, len(p.CostSharing))
	for cat, rule := range p.CostSharing {
		if rule.Copay != nil {
			clamped := clampNonNegative(*rule.Copay)
			rule.Copay = &clamped
		}
		if rule.Coinsurance != nil {
			clamped := clampNonNegative(*rule.Coinsurance)
			rule.Coinsurance = &clamped
		}
		sanitized[cat] = rule
	}
	p.CostSharing = sanitized
}

// Rule resolves the cost-sharing rule for a category. A missing rule means
// pure coinsurance at the policy default.
func (p *InsurancePolicy) Rule(cat ServiceCategory) CostSharingRule {
	if rule, ok := p.CostSharing[cat]; ok {
		return rule
	}
	return CostSharingRule{}
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
