package calculation

import (
	"sort"
	"strings"

	"github.com/planwise/benefitsim/internal/domain"
	"github.com/shopspring/decimal"
)

// RiskEstimator converts a health profile into a risk score and expected
// annual utilization counts. It is a pure function over its configuration
// tables; the tables are passed in explicitly rather than read from any
// shared state.
type RiskEstimator struct {
	ConditionRules map[string]domain.ConditionRule
	Adjustments    domain.RiskAdjustments
}

// NewRiskEstimator creates a risk estimator with the default tables
func NewRiskEstimator() *RiskEstimator {
	return &RiskEstimator{
		ConditionRules: domain.DefaultConditionRules(),
		Adjustments:    domain.DefaultRiskAdjustments(),
	}
}

// NewRiskEstimatorWithConfig creates a risk estimator with custom tables
func NewRiskEstimatorWithConfig(rules map[string]domain.ConditionRule, adjustments domain.RiskAdjustments) *RiskEstimator {
	return &RiskEstimator{
		ConditionRules: rules,
		Adjustments:    adjustments,
	}
}

// Estimate derives expected annual utilization and risk from a member
// profile. Unknown condition names are never fatal: they miss the lookup
// table but still count toward the multiple-condition bonus.
func (re *RiskEstimator) Estimate(member domain.Member) domain.UtilizationEstimate {
	age := member.Age
	if age < 0 {
		age = 0
	}

	counts := domain.BaselineUtilization(age)
	factors := []domain.RiskFactor{}

	// Age bands contribute risk points only, not utilization.
	switch {
	case age < 5:
		factors = append(factors, domain.RiskFactor{
			Name: "Pediatric age", Category: "age", Impact: "moderate",
			Points: re.Adjustments.PediatricPoints,
		})
	case age > 75:
		factors = append(factors, domain.RiskFactor{
			Name: "Age over 75", Category: "age", Impact: "high",
			Points: re.Adjustments.ElderPoints,
		})
	case age > 65:
		factors = append(factors, domain.RiskFactor{
			Name: "Age over 65", Category: "age", Impact: "moderate",
			Points: re.Adjustments.SeniorPoints,
		})
	}

	// Conditions in sorted order so factor lists are reproducible.
	active := member.ActiveConditions()
	sort.Slice(active, func(i, j int) bool {
		return strings.ToLower(active[i].Name) < strings.ToLower(active[j].Name)
	})

	for _, cond := range active {
		rule, ok := re.ConditionRules[strings.ToLower(strings.TrimSpace(cond.Name))]
		if !ok {
			continue
		}

		addCount(counts, domain.CategoryPrimaryCare, rule.PrimaryCareVisits)
		addCount(counts, domain.CategorySpecialist, rule.SpecialistVisits)
		addCount(counts, domain.CategoryEmergency, rule.ERVisits)
		addCount(counts, domain.CategoryInpatient, rule.InpatientAdmits)
		addCount(counts, domain.CategoryDiagnostics, rule.LabTests)
		addCount(counts, domain.CategoryImaging, rule.ImagingStudies)

		points := scalePoints(rule.RiskPoints, cond.Severity.Normalize())
		factors = append(factors, domain.RiskFactor{
			Name:     cond.Name,
			Category: "condition",
			Impact:   impactForPoints(points),
			Points:   points,
		})
	}

	// Every declared condition counts toward the comorbidity bonus, known
	// to the lookup table or not.
	if len(active) >= re.Adjustments.MultipleConditionThreshold {
		factors = append(factors, domain.RiskFactor{
			Name: "Multiple chronic conditions", Category: "condition", Impact: "moderate",
			Points: re.Adjustments.MultipleConditionPoints,
		})
	}

	// Prescription fills: one monthly fill per distinct active medication.
	for _, med := range member.Medications {
		tier := domain.CategoryDrugGeneric
		if med.Specialty {
			tier = domain.CategoryDrugSpecialty
		}
		addCount(counts, tier, decimal.NewFromInt(12))
	}

	factors = append(factors, re.lifestyleFactors(member, age)...)

	score := 0
	for _, f := range factors {
		score += f.Points
	}
	if score > 100 {
		score = 100
	}

	erVisits := counts[domain.CategoryEmergency]
	admits := counts[domain.CategoryInpatient]
	emergencyRisk := erVisits.Add(admits).Div(decimal.NewFromInt(12))
	if emergencyRisk.GreaterThan(decimal.NewFromInt(1)) {
		emergencyRisk = decimal.NewFromInt(1)
	}

	return domain.UtilizationEstimate{
		Counts:        counts,
		EmergencyRisk: emergencyRisk,
		RiskScore:     score,
		RiskLevel:     domain.RiskLevelFromScore(score),
		Factors:       factors,
	}
}

// lifestyleFactors returns the lifestyle risk contributions in a fixed
// order. Lifestyle never changes utilization counts.
func (re *RiskEstimator) lifestyleFactors(member domain.Member, age int) []domain.RiskFactor {
	factors := []domain.RiskFactor{}
	life := member.Lifestyle

	if life.Smoker {
		factors = append(factors, domain.RiskFactor{
			Name: "Smoker", Category: "lifestyle", Impact: "high",
			Points: re.Adjustments.SmokerPoints,
		})
	}
	if life.HeavyAlcohol {
		factors = append(factors, domain.RiskFactor{
			Name: "Heavy alcohol use", Category: "lifestyle", Impact: "moderate",
			Points: re.Adjustments.HeavyAlcoholPoints,
		})
	}
	if strings.EqualFold(life.ExerciseLevel, "sedentary") && age > 30 {
		factors = append(factors, domain.RiskFactor{
			Name: "Sedentary lifestyle", Category: "lifestyle", Impact: "low",
			Points: re.Adjustments.SedentaryPoints,
		})
	}

	bmi := life.BMI
	switch {
	case bmi.GreaterThanOrEqual(decimal.NewFromInt(40)):
		factors = append(factors, domain.RiskFactor{
			Name: "BMI 40 or above", Category: "lifestyle", Impact: "high",
			Points: re.Adjustments.SevereObesityPoints,
		})
	case bmi.GreaterThanOrEqual(decimal.NewFromInt(30)):
		factors = append(factors, domain.RiskFactor{
			Name: "BMI 30 or above", Category: "lifestyle", Impact: "moderate",
			Points: re.Adjustments.ObesityPoints,
		})
	case bmi.IsPositive() && bmi.LessThan(decimal.NewFromFloat(18.5)):
		factors = append(factors, domain.RiskFactor{
			Name: "Underweight", Category: "lifestyle", Impact: "low",
			Points: re.Adjustments.UnderweightPoints,
		})
	}

	return factors
}

// scalePoints applies the severity multiplier to a condition's base points
func scalePoints(base int, severity domain.Severity) int {
	scaled := decimal.NewFromInt(int64(base)).Mul(severity.Multiplier())
	return int(scaled.Round(0).IntPart())
}

func impactForPoints(points int) string {
	switch {
	case points >= 20:
		return "high"
	case points >= 10:
		return "moderate"
	default:
		return "low"
	}
}

func addCount(counts map[domain.ServiceCategory]decimal.Decimal, cat domain.ServiceCategory, amount decimal.Decimal) {
	if amount.IsZero() {
		return
	}
	counts[cat] = counts[cat].Add(amount)
}
