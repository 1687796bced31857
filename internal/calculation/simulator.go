package calculation

import (
	"fmt"

	"github.com/planwise/benefitsim/internal/domain"
	"github.com/shopspring/decimal"
)

// BenefitSimulator replays a treatment plan through one policy's
// cost-sharing rules. It is a deterministic ledger replay, not an
// optimizer: items are processed in the plan's stable order and the
// out-of-pocket cap is enforced item by item so mid-year progress traces
// stay reproducible.
type BenefitSimulator struct{}

// NewBenefitSimulator creates a benefit simulator
func NewBenefitSimulator() *BenefitSimulator {
	return &BenefitSimulator{}
}

// accumulator tracks deductible and OOP progress for one network path.
// A zero oopTarget means the path has no cap.
type accumulator struct {
	dedTarget decimal.Decimal
	oopTarget decimal.Decimal
	dedMet    decimal.Decimal
	oopMet    decimal.Decimal
}

// apply charges one item's allowed cost through the deductible-then-
// coinsurance phases, caps the member share at the remaining OOP headroom,
// and advances the accumulators. Deductible credit never exceeds what the
// member actually paid.
func (a *accumulator) apply(cost, rate decimal.Decimal, exemptFromOOP bool) decimal.Decimal {
	remDed := a.dedTarget.Sub(a.dedMet)
	if remDed.IsNegative() {
		remDed = decimal.Zero
	}

	toDed := decimal.Min(cost, remDed)
	raw := toDed.Add(cost.Sub(toDed).Mul(rate))

	owed := raw
	if !exemptFromOOP && a.oopTarget.IsPositive() {
		remOOP := a.oopTarget.Sub(a.oopMet)
		if remOOP.IsNegative() {
			remOOP = decimal.Zero
		}
		owed = decimal.Min(raw, remOOP)
		a.oopMet = a.oopMet.Add(owed)
	} else if !exemptFromOOP {
		a.oopMet = a.oopMet.Add(owed)
	}

	a.dedMet = a.dedMet.Add(decimal.Min(toDed, owed))
	return owed
}

// applyCopay charges a flat copay, capped at the remaining OOP headroom.
// Copays never accumulate toward the deductible.
func (a *accumulator) applyCopay(amount decimal.Decimal) decimal.Decimal {
	owed := amount
	if a.oopTarget.IsPositive() {
		remOOP := a.oopTarget.Sub(a.oopMet)
		if remOOP.IsNegative() {
			remOOP = decimal.Zero
		}
		owed = decimal.Min(amount, remOOP)
	}
	a.oopMet = a.oopMet.Add(owed)
	return owed
}

// Simulate produces the annual cost breakdown for one policy against one
// treatment plan. It is referentially transparent: a fresh CostAnalysis per
// call, no shared state, no I/O. A non-positive family size is the one
// programmer error and is rejected at this boundary.
func (bs *BenefitSimulator) Simulate(policy domain.InsurancePolicy, plan domain.TreatmentPlan, familySize int) (domain.CostAnalysis, error) {
	if familySize < 1 {
		return domain.CostAnalysis{}, fmt.Errorf("family size must be at least 1, got %d", familySize)
	}

	policy.Sanitize()

	inNet := accumulator{
		dedTarget: inNetworkDeductibleTarget(policy),
		oopTarget: inNetworkOOPTarget(policy, familySize),
	}
	outNet := accumulator{
		dedTarget: policy.Network.OutOfNetworkDeductible,
		oopTarget: policy.Network.OutOfNetworkOopMax,
	}

	admitted := plan.HasAdmission()

	treatmentOwed := decimal.Zero
	medicationOwed := decimal.Zero
	ledger := make([]domain.LedgerEntry, 0, len(plan.Items))

	for _, item := range plan.Items {
		cost := item.AnnualCost()
		if cost.IsNegative() {
			cost = decimal.Zero
		}

		var owed decimal.Decimal
		var entry domain.LedgerEntry

		if item.OutOfNetwork {
			owed = bs.chargeOutOfNetwork(&outNet, policy, cost)
			entry = domain.LedgerEntry{
				Category: item.Category, Name: item.Name, MemberOwed: owed,
				DeductibleMet: outNet.dedMet, OOPMet: outNet.oopMet, OutOfNetwork: true,
			}
		} else {
			owed = bs.chargeInNetwork(&inNet, policy, item, cost, admitted)
			entry = domain.LedgerEntry{
				Category: item.Category, Name: item.Name, MemberOwed: owed,
				DeductibleMet: inNet.dedMet, OOPMet: inNet.oopMet,
			}
		}

		if item.Category.IsDrug() {
			medicationOwed = medicationOwed.Add(owed)
		} else {
			treatmentOwed = treatmentOwed.Add(owed)
		}
		ledger = append(ledger, entry)
	}

	premium := effectivePremium(policy, familySize)
	total := premium.Add(treatmentOwed).Add(medicationOwed)

	return domain.CostAnalysis{
		PolicyID:   policy.ID,
		PolicyName: policy.Name,
		PolicyType: policy.Type,
		Annual: domain.AnnualCosts{
			Premiums:        premium,
			TreatmentCosts:  treatmentOwed,
			MedicationCosts: medicationOwed,
			TotalCosts:      total,
		},
		DeductibleProgress: deductibleProgress(policy, inNet.dedMet),
		OOPProgress:        oopProgress(policy, inNet.oopMet),
		KeyMetrics: domain.KeyMetrics{
			EffectiveMonthlyCost: total.Div(decimal.NewFromInt(12)).Round(2),
		},
		HSAEligible:       policy.Benefits.HSAEligible,
		WorstCaseExposure: premium.Add(policy.OutOfPocketMax.Individual),
		Ledger:            ledger,
	}, nil
}

// chargeInNetwork routes one in-network item through its category rule
func (bs *BenefitSimulator) chargeInNetwork(acc *accumulator, policy domain.InsurancePolicy, item domain.TreatmentItem, cost decimal.Decimal, admitted bool) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}

	rule := policy.Rule(item.Category)

	// ER cost-sharing converts to the inpatient rate when a linked
	// admission exists in the same plan.
	if rule.WaivedIfAdmitted && admitted {
		inpatientRule := policy.Rule(domain.CategoryInpatient)
		rate := memberCoinsuranceRate(inpatientRule, policy)
		return acc.apply(cost, rate, false)
	}

	exempt := item.Category == domain.CategoryDrugSpecialty && policy.Benefits.SpecialtyExcludedFromOOPMax

	if rule.Copay != nil {
		copayOwed := rule.Copay.Mul(item.AnnualFrequency)

		if rule.Coinsurance == nil {
			// Flat copay regardless of deductible status; copay-only
			// categories skip deductible tracking entirely.
			if exempt {
				return copayOwed
			}
			return acc.applyCopay(copayOwed)
		}

		// Copay is authoritative pre-deductible; coinsurance is the
		// post-deductible rate.
		if acc.dedMet.LessThan(acc.dedTarget) {
			if exempt {
				return copayOwed
			}
			return acc.applyCopay(copayOwed)
		}
	}

	rate := memberCoinsuranceRate(rule, policy)
	return acc.apply(cost, rate, exempt)
}

// chargeOutOfNetwork routes one out-of-network item through the parallel
// accumulator set. Without out-of-network coverage the member owes the full
// cost with no cap.
func (bs *BenefitSimulator) chargeOutOfNetwork(acc *accumulator, policy domain.InsurancePolicy, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	if !policy.Network.OutOfNetworkCoverage {
		return cost
	}
	rate := normalizeRate(policy.Network.OutOfNetworkCoinsurance)
	return acc.apply(cost, rate, false)
}

// memberCoinsuranceRate resolves the member's post-deductible share for a
// rule. A zero or absent rate means the policy pays no coinsurance benefit
// for the category, so the member keeps paying the full allowed cost until
// the OOP-max; this reproduces observed plan data where 0 marks an
// uncovered coinsurance phase rather than free care.
func memberCoinsuranceRate(rule domain.CostSharingRule, policy domain.InsurancePolicy) decimal.Decimal {
	rate := policy.Coinsurance
	if rule.Coinsurance != nil {
		rate = *rule.Coinsurance
	}
	return normalizeRate(rate)
}

// normalizeRate accepts fractions or percents and maps zero to full cost
func normalizeRate(rate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if rate.GreaterThan(one) {
		rate = rate.Div(decimal.NewFromInt(100))
	}
	if rate.GreaterThan(one) {
		return one
	}
	if rate.IsZero() {
		return one
	}
	return rate
}

// effectivePremium is the annual premium net of employer contribution,
// floored at zero.
func effectivePremium(policy domain.InsurancePolicy, familySize int) decimal.Decimal {
	base := policy.Premium.IndividualAnnual
	if familySize > 1 {
		base = policy.Premium.FamilyAnnual
	}
	premium := base.Sub(policy.Premium.EmployerContributionAnnual)
	if premium.IsNegative() {
		return decimal.Zero
	}
	return premium
}

// inNetworkDeductibleTarget picks the deductible the member must clear
// before coinsurance begins. Embedded plans let the member's own spend
// satisfy the individual deductible; non-embedded plans require the family
// aggregate first, with the individual amount as fallback when no family
// deductible is defined.
func inNetworkDeductibleTarget(policy domain.InsurancePolicy) decimal.Decimal {
	if policy.Deductible.Embedded {
		return policy.Deductible.Individual
	}
	return firstPositive(policy.Deductible.Family, policy.Deductible.Individual)
}

// inNetworkOOPTarget picks the applicable OOP-max by family size
func inNetworkOOPTarget(policy domain.InsurancePolicy, familySize int) decimal.Decimal {
	if familySize > 1 {
		return firstPositive(policy.OutOfPocketMax.Family, policy.OutOfPocketMax.Individual)
	}
	return policy.OutOfPocketMax.Individual
}

// deductibleProgress reports individual and family deductible progress.
// Non-embedded plans credit no member-level progress toward the individual
// target until the family aggregate is met.
func deductibleProgress(policy domain.InsurancePolicy, dedMet decimal.Decimal) domain.AccumulatorProgress {
	famTarget := firstPositive(policy.Deductible.Family, policy.Deductible.Individual)
	progress := domain.AccumulatorProgress{
		Family: decimal.Min(dedMet, famTarget),
	}

	if policy.Deductible.Embedded {
		progress.Individual = decimal.Min(dedMet, policy.Deductible.Individual)
	} else if famTarget.IsPositive() && dedMet.GreaterThanOrEqual(famTarget) {
		progress.Individual = policy.Deductible.Individual
	}

	return progress
}

func oopProgress(policy domain.InsurancePolicy, oopMet decimal.Decimal) domain.AccumulatorProgress {
	famTarget := firstPositive(policy.OutOfPocketMax.Family, policy.OutOfPocketMax.Individual)
	return domain.AccumulatorProgress{
		Individual: decimal.Min(oopMet, policy.OutOfPocketMax.Individual),
		Family:     decimal.Min(oopMet, famTarget),
	}
}

func firstPositive(values ...decimal.Decimal) decimal.Decimal {
	for _, v := range values {
		if v.IsPositive() {
			return v
		}
	}
	return decimal.Zero
}
