package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRiskLevelFromScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  RiskLevel
	}{
		{"zero is low", 0, RiskLow},
		{"just below moderate", 29, RiskLow},
		{"moderate threshold", 30, RiskModerate},
		{"just below high", 49, RiskModerate},
		{"high threshold", 50, RiskHigh},
		{"just below critical", 69, RiskHigh},
		{"critical threshold", 70, RiskCritical},
		{"capped score", 100, RiskCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLevelFromScore(tt.score))
		})
	}
}

func TestParseServiceCategory(t *testing.T) {
	assert.Equal(t, CategoryPrimaryCare, ParseServiceCategory("primary_care"))
	assert.Equal(t, CategoryDrugSpecialty, ParseServiceCategory("  Drug_Specialty "))
	assert.Equal(t, CategoryOther, ParseServiceCategory("acupuncture"))
	assert.Equal(t, CategoryOther, ParseServiceCategory(""))
}

func TestServiceCategoryIsDrug(t *testing.T) {
	assert.True(t, CategoryDrugGeneric.IsDrug())
	assert.True(t, CategoryDrugSpecialty.IsDrug())
	assert.False(t, CategoryEmergency.IsDrug())
	assert.False(t, CategoryOther.IsDrug())
}

func TestSeverityMultiplier(t *testing.T) {
	assert.True(t, SeverityMild.Multiplier().Equal(decimal.NewFromInt(1)))
	assert.True(t, SeverityModerate.Multiplier().Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, SeveritySevere.Multiplier().Equal(decimal.NewFromInt(2)))
	assert.True(t, Severity("unknown").Multiplier().Equal(decimal.NewFromInt(1)))
}

func TestSeverityNormalize(t *testing.T) {
	assert.Equal(t, SeverityModerate, Severity(" Moderate ").Normalize())
	assert.Equal(t, SeveritySevere, Severity("SEVERE").Normalize())
	assert.Equal(t, SeverityMild, Severity("").Normalize())
	assert.Equal(t, SeverityMild, Severity("stage 4").Normalize())
}

func TestConditionActive(t *testing.T) {
	assert.True(t, Condition{Name: "asthma"}.Active())
	assert.True(t, Condition{Name: "asthma", Status: "Active"}.Active())
	assert.False(t, Condition{Name: "asthma", Status: "resolved"}.Active())
}

func TestActiveConditionsFiltersResolved(t *testing.T) {
	member := Member{
		Conditions: []Condition{
			{Name: "diabetes", Status: "active"},
			{Name: "pneumonia", Status: "resolved"},
			{Name: "hypertension"},
		},
	}
	active := member.ActiveConditions()
	assert.Len(t, active, 2)
	assert.Equal(t, "diabetes", active[0].Name)
	assert.Equal(t, "hypertension", active[1].Name)
}

func TestTreatmentItemAnnualCost(t *testing.T) {
	item := TreatmentItem{
		AnnualFrequency:  decimal.NewFromFloat(0.5),
		UnitCostEstimate: decimal.NewFromInt(12500),
	}
	assert.True(t, item.AnnualCost().Equal(decimal.NewFromInt(6250)))
}

func TestTreatmentPlanHasAdmission(t *testing.T) {
	withAdmission := TreatmentPlan{Items: []TreatmentItem{
		{Category: CategoryEmergency, AnnualFrequency: decimal.NewFromInt(1)},
		{Category: CategoryInpatient, AnnualFrequency: decimal.NewFromFloat(0.4)},
	}}
	assert.True(t, withAdmission.HasAdmission())

	zeroFrequency := TreatmentPlan{Items: []TreatmentItem{
		{Category: CategoryInpatient, AnnualFrequency: decimal.Zero},
	}}
	assert.False(t, zeroFrequency.HasAdmission())
}

func TestPolicySanitizeClampsNegatives(t *testing.T) {
	copay := decimal.NewFromInt(-30)
	policy := InsurancePolicy{
		Premium:        Premium{IndividualAnnual: decimal.NewFromInt(-5000)},
		Deductible:     Deductible{Individual: decimal.NewFromInt(-1000)},
		OutOfPocketMax: OutOfPocketMax{Family: decimal.NewFromInt(-9000)},
		CostSharing: map[ServiceCategory]CostSharingRule{
			CategoryPrimaryCare: {Copay: &copay},
		},
	}

	policy.Sanitize()

	assert.True(t, policy.Premium.IndividualAnnual.IsZero())
	assert.True(t, policy.Deductible.Individual.IsZero())
	assert.True(t, policy.OutOfPocketMax.Family.IsZero())
	assert.True(t, policy.CostSharing[CategoryPrimaryCare].Copay.IsZero())

	// The caller's original copay value must not be rewritten in place.
	assert.True(t, copay.Equal(decimal.NewFromInt(-30)))
}

func TestPolicyRuleDefaultsToCoinsurance(t *testing.T) {
	policy := InsurancePolicy{Coinsurance: decimal.NewFromFloat(0.2)}
	rule := policy.Rule(CategoryImaging)
	assert.Nil(t, rule.Copay)
	assert.Nil(t, rule.Coinsurance)
	assert.False(t, rule.WaivedIfAdmitted)
}
