package calculation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/planwise/benefitsim/internal/domain"
	"github.com/shopspring/decimal"
)

// TreatmentPlanGenerator expands a profile and utilization estimate into a
// concrete list of priced annual treatment line items. All pricing tables
// are injected explicitly.
type TreatmentPlanGenerator struct {
	ConditionRules  map[string]domain.ConditionRule
	ServiceCosts    map[domain.ServiceCategory]decimal.Decimal
	DrugPrices      domain.DrugPriceTable
	MedicationTiers map[string]domain.ServiceCategory
	Preventive      []domain.PreventiveScreening
}

// NewTreatmentPlanGenerator creates a generator with the default tables
func NewTreatmentPlanGenerator() *TreatmentPlanGenerator {
	return &TreatmentPlanGenerator{
		ConditionRules:  domain.DefaultConditionRules(),
		ServiceCosts:    domain.DefaultServiceCosts(),
		DrugPrices:      domain.DefaultDrugPrices(),
		MedicationTiers: domain.DefaultMedicationTiers(),
		Preventive:      domain.DefaultPreventiveSchedule(),
	}
}

// Generate builds the annual treatment plan for a member. Identical
// (member, utilization) inputs always produce the same item order:
// condition-driven items sort by condition name then category, and every
// other section has a fixed position and internal order.
func (g *TreatmentPlanGenerator) Generate(member domain.Member, utilization domain.UtilizationEstimate) domain.TreatmentPlan {
	items := []domain.TreatmentItem{}

	// Primary care is owned by the utilization estimate; condition
	// increments are already folded in there.
	if pc := utilization.Count(domain.CategoryPrimaryCare); pc.IsPositive() {
		items = append(items, domain.TreatmentItem{
			Category:         domain.CategoryPrimaryCare,
			Name:             "Primary care visits",
			AnnualFrequency:  pc,
			UnitCostEstimate: g.serviceCost(domain.CategoryPrimaryCare),
			Urgency:          domain.UrgencyRoutine,
		})
	}

	items = append(items, g.conditionItems(member)...)
	items = append(items, g.medicationItems(member)...)
	items = append(items, g.declaredVisitItems(member)...)
	items = append(items, g.preventiveItems(member)...)

	plan := domain.TreatmentPlan{Items: items}
	g.computeAggregates(&plan)
	return plan
}

// conditionItems emits the management cadence for each active condition,
// scaled by severity (applied to frequency, never unit price). Conditions
// missing from the rule table fall back to a generic management item.
func (g *TreatmentPlanGenerator) conditionItems(member domain.Member) []domain.TreatmentItem {
	conditions := member.ActiveConditions()
	sort.Slice(conditions, func(i, j int) bool {
		return strings.ToLower(conditions[i].Name) < strings.ToLower(conditions[j].Name)
	})

	items := []domain.TreatmentItem{}
	for _, cond := range conditions {
		severity := cond.Severity.Normalize()
		mult := severity.Multiplier()

		rule, ok := g.ConditionRules[strings.ToLower(strings.TrimSpace(cond.Name))]
		if !ok {
			// Data-availability gap, not an error: price at the generic
			// service default.
			items = append(items, domain.TreatmentItem{
				Category:         domain.CategoryOther,
				Name:             fmt.Sprintf("%s management visits", cond.Name),
				AnnualFrequency:  decimal.NewFromInt(2).Mul(mult),
				UnitCostEstimate: g.serviceCost(domain.CategoryOther),
				Urgency:          urgencyForSeverity(severity),
				RelatedCondition: cond.Name,
				Severity:         severity,
			})
			continue
		}

		condItems := []domain.TreatmentItem{}

		if rule.SpecialistVisits.IsPositive() {
			name := rule.SpecialistName
			if name == "" {
				name = fmt.Sprintf("%s specialist visit", cond.Name)
			}
			condItems = append(condItems, domain.TreatmentItem{
				Category:         domain.CategorySpecialist,
				Name:             name,
				AnnualFrequency:  rule.SpecialistVisits.Mul(mult),
				UnitCostEstimate: g.serviceCost(domain.CategorySpecialist),
				Urgency:          urgencyForSeverity(severity),
				RelatedCondition: cond.Name,
				Severity:         severity,
			})
		}
		if rule.ERVisits.IsPositive() {
			condItems = append(condItems, domain.TreatmentItem{
				Category:         domain.CategoryEmergency,
				Name:             fmt.Sprintf("%s emergency care", cond.Name),
				AnnualFrequency:  rule.ERVisits.Mul(mult),
				UnitCostEstimate: g.serviceCost(domain.CategoryEmergency),
				Urgency:          domain.UrgencyEmergency,
				RelatedCondition: cond.Name,
				Severity:         severity,
			})
		}
		if rule.InpatientAdmits.IsPositive() {
			condItems = append(condItems, domain.TreatmentItem{
				Category:         domain.CategoryInpatient,
				Name:             fmt.Sprintf("%s hospital admission", cond.Name),
				AnnualFrequency:  rule.InpatientAdmits.Mul(mult),
				UnitCostEstimate: g.serviceCost(domain.CategoryInpatient),
				Urgency:          domain.UrgencyEmergency,
				RelatedCondition: cond.Name,
				Severity:         severity,
			})
		}
		if rule.LabTests.IsPositive() {
			name := rule.MonitoringName
			if name == "" {
				name = fmt.Sprintf("%s lab monitoring", cond.Name)
			}
			condItems = append(condItems, domain.TreatmentItem{
				Category:         domain.CategoryDiagnostics,
				Name:             name,
				AnnualFrequency:  rule.LabTests.Mul(mult),
				UnitCostEstimate: g.serviceCost(domain.CategoryDiagnostics),
				Urgency:          domain.UrgencyRoutine,
				RelatedCondition: cond.Name,
				Severity:         severity,
			})
		}
		if rule.ImagingStudies.IsPositive() {
			condItems = append(condItems, domain.TreatmentItem{
				Category:         domain.CategoryImaging,
				Name:             fmt.Sprintf("%s imaging", cond.Name),
				AnnualFrequency:  rule.ImagingStudies.Mul(mult),
				UnitCostEstimate: g.serviceCost(domain.CategoryImaging),
				Urgency:          domain.UrgencyRoutine,
				RelatedCondition: cond.Name,
				Severity:         severity,
			})
		}

		sort.SliceStable(condItems, func(i, j int) bool {
			return categoryRank(condItems[i].Category) < categoryRank(condItems[j].Category)
		})
		items = append(items, condItems...)
	}

	return items
}

// medicationItems prices 12 monthly fills per distinct active medication.
// Tier resolution: the specialty flag wins, then the brand lookup table,
// then generic.
func (g *TreatmentPlanGenerator) medicationItems(member domain.Member) []domain.TreatmentItem {
	meds := make([]domain.Medication, len(member.Medications))
	copy(meds, member.Medications)
	sort.Slice(meds, func(i, j int) bool {
		return strings.ToLower(meds[i].Name) < strings.ToLower(meds[j].Name)
	})

	seen := map[string]bool{}
	items := []domain.TreatmentItem{}
	for _, med := range meds {
		key := strings.ToLower(strings.TrimSpace(med.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		tier := domain.CategoryDrugGeneric
		if t, ok := g.MedicationTiers[key]; ok {
			tier = t
		}
		if med.Specialty {
			tier = domain.CategoryDrugSpecialty
		}

		items = append(items, domain.TreatmentItem{
			Category:         tier,
			Name:             fmt.Sprintf("%s (monthly fill)", med.Name),
			AnnualFrequency:  decimal.NewFromInt(12),
			UnitCostEstimate: g.drugPrice(tier),
			Urgency:          domain.UrgencyRoutine,
		})
	}
	return items
}

// declaredVisitItems turns user-declared expected visits into routine items
func (g *TreatmentPlanGenerator) declaredVisitItems(member domain.Member) []domain.TreatmentItem {
	items := []domain.TreatmentItem{}
	for _, visit := range member.ExpectedVisits {
		freq := visit.AnnualFrequency
		if freq.IsNegative() {
			freq = decimal.Zero
		}
		cat := visit.Category
		if cat == "" {
			cat = domain.CategoryOther
		}
		name := visit.Description
		if name == "" {
			name = "Planned visit"
		}
		items = append(items, domain.TreatmentItem{
			Category:         cat,
			Name:             name,
			AnnualFrequency:  freq,
			UnitCostEstimate: g.serviceCost(cat),
			Urgency:          domain.UrgencyRoutine,
		})
	}
	return items
}

// preventiveItems applies the age/gender-banded preventive schedule
func (g *TreatmentPlanGenerator) preventiveItems(member domain.Member) []domain.TreatmentItem {
	items := []domain.TreatmentItem{}
	for _, screening := range g.Preventive {
		if member.Age < screening.MinAge {
			continue
		}
		if screening.MaxAge > 0 && member.Age > screening.MaxAge {
			continue
		}
		if screening.Gender != "" && screening.Gender != member.Gender {
			continue
		}
		items = append(items, domain.TreatmentItem{
			Category:         domain.CategoryPreventive,
			Name:             screening.Name,
			AnnualFrequency:  screening.AnnualFrequency,
			UnitCostEstimate: screening.UnitCost,
			Urgency:          domain.UrgencyRoutine,
		})
	}
	return items
}

// computeAggregates derives the plan's totals and flags from the final item
// list in one pass. Nothing mutates these afterward.
func (g *TreatmentPlanGenerator) computeAggregates(plan *domain.TreatmentPlan) {
	totals := domain.TreatmentPlanTotals{}
	erExposure := decimal.Zero

	for _, item := range plan.Items {
		cost := item.AnnualCost()
		totals.Total = totals.Total.Add(cost)

		switch {
		case item.Category == domain.CategoryPreventive:
			totals.Preventive = totals.Preventive.Add(cost)
		case item.Category.IsDrug():
			totals.Medications = totals.Medications.Add(cost)
		default:
			totals.Treatments = totals.Treatments.Add(cost)
		}

		if item.Category == domain.CategoryEmergency || item.Category == domain.CategoryInpatient {
			erExposure = erExposure.Add(item.AnnualFrequency)
		}

		if item.Category == domain.CategorySpecialist {
			plan.RequiresSpecialistCare = true
		}
		if item.RelatedCondition != "" {
			if rule, ok := g.ConditionRules[strings.ToLower(item.RelatedCondition)]; !ok || rule.Chronic {
				plan.HasChronicConditions = true
			}
		}
	}

	plan.Totals = totals
	plan.EmergencyRiskLevel = emergencyRiskLevel(erExposure)
}

// emergencyRiskLevel maps expected annual ER visits plus admissions onto the
// shared risk-level scale using the same /12 normalization as the estimator.
func emergencyRiskLevel(exposure decimal.Decimal) domain.RiskLevel {
	ratio := exposure.Div(decimal.NewFromInt(12))
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.75)):
		return domain.RiskCritical
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.5)):
		return domain.RiskHigh
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.25)):
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}

func urgencyForSeverity(severity domain.Severity) domain.Urgency {
	if severity == domain.SeveritySevere {
		return domain.UrgencyUrgent
	}
	return domain.UrgencyRoutine
}

func (g *TreatmentPlanGenerator) serviceCost(cat domain.ServiceCategory) decimal.Decimal {
	if cost, ok := g.ServiceCosts[cat]; ok {
		return cost
	}
	return g.ServiceCosts[domain.CategoryOther]
}

func (g *TreatmentPlanGenerator) drugPrice(tier domain.ServiceCategory) decimal.Decimal {
	switch tier {
	case domain.CategoryDrugPreferredBrand:
		return g.DrugPrices.PreferredBrand
	case domain.CategoryDrugNonPreferredBrand:
		return g.DrugPrices.NonPreferredBrand
	case domain.CategoryDrugSpecialty:
		return g.DrugPrices.Specialty
	default:
		return g.DrugPrices.Generic
	}
}

// categoryRank fixes the intra-condition ordering of emitted items
func categoryRank(cat domain.ServiceCategory) int {
	for i, c := range domain.AllServiceCategories() {
		if c == cat {
			return i
		}
	}
	return len(domain.AllServiceCategories())
}
