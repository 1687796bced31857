package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/planwise/benefitsim/internal/domain"
)

func TestEstimateHealthyAdultBaseline(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{Name: "Alex", Age: 30, Gender: domain.Male})

	assert.Equal(t, 0, estimate.RiskScore)
	assert.Equal(t, domain.RiskLow, estimate.RiskLevel)
	assert.Empty(t, estimate.Factors)
	assert.True(t, estimate.Count(domain.CategoryPrimaryCare).Equal(decimal.NewFromInt(1)))
	assert.True(t, estimate.EmergencyRisk.IsZero())
}

func TestEstimateBaselineDoublesAtFifty(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{Age: 50})
	assert.True(t, estimate.Count(domain.CategoryPrimaryCare).Equal(decimal.NewFromInt(2)))
}

func TestEstimateConditionAddsUtilizationAndScaledPoints(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{
		Age: 45,
		Conditions: []domain.Condition{
			{Name: "Diabetes", Severity: domain.SeverityModerate, Status: "active"},
		},
	})

	// Condition increments fold into the baseline counts.
	assert.True(t, estimate.Count(domain.CategoryPrimaryCare).Equal(decimal.NewFromInt(3)))
	assert.True(t, estimate.Count(domain.CategorySpecialist).Equal(decimal.NewFromInt(4)))
	assert.True(t, estimate.Count(domain.CategoryDiagnostics).Equal(decimal.NewFromInt(4)))

	// 18 base points scaled by the moderate multiplier.
	assert.Equal(t, 27, estimate.RiskScore)
	assert.Equal(t, domain.RiskLow, estimate.RiskLevel)
}

func TestEstimateUnknownConditionsStillCountTowardComorbidityBonus(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{
		Age: 35,
		Conditions: []domain.Condition{
			{Name: "Ehlers-Danlos syndrome"},
			{Name: "POTS"},
			{Name: "Fibromyalgia"},
		},
	})

	// None of the three is in the lookup table, so the only factor is the
	// multiple-condition bonus.
	assert.Len(t, estimate.Factors, 1)
	assert.Equal(t, "Multiple chronic conditions", estimate.Factors[0].Name)
	assert.Equal(t, 10, estimate.RiskScore)
	assert.True(t, estimate.Count(domain.CategoryPrimaryCare).Equal(decimal.NewFromInt(1)))
}

func TestEstimateResolvedConditionsIgnored(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{
		Age: 40,
		Conditions: []domain.Condition{
			{Name: "Diabetes", Status: "resolved"},
		},
	})
	assert.Equal(t, 0, estimate.RiskScore)
	assert.True(t, estimate.Count(domain.CategorySpecialist).IsZero())
}

func TestEstimateLifestyleAffectsScoreNotUtilization(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{
		Age: 40,
		Lifestyle: domain.Lifestyle{
			Smoker:        true,
			HeavyAlcohol:  true,
			ExerciseLevel: "sedentary",
			BMI:           decimal.NewFromInt(42),
		},
	})

	// 15 smoker + 10 alcohol + 5 sedentary + 12 severe obesity.
	assert.Equal(t, 42, estimate.RiskScore)
	assert.Equal(t, domain.RiskModerate, estimate.RiskLevel)
	assert.True(t, estimate.Count(domain.CategoryPrimaryCare).Equal(decimal.NewFromInt(1)))
	assert.True(t, estimate.Count(domain.CategoryEmergency).IsZero())
}

func TestEstimateSedentaryOnlyCountsOverThirty(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{
		Age:       25,
		Lifestyle: domain.Lifestyle{ExerciseLevel: "sedentary"},
	})
	assert.Equal(t, 0, estimate.RiskScore)
}

func TestEstimateScoreCapsAtOneHundred(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{
		Age: 60,
		Conditions: []domain.Condition{
			{Name: "Cancer", Severity: domain.SeveritySevere},
			{Name: "COPD", Severity: domain.SeveritySevere},
			{Name: "Heart Disease", Severity: domain.SeveritySevere},
		},
	})
	assert.Equal(t, 100, estimate.RiskScore)
	assert.Equal(t, domain.RiskCritical, estimate.RiskLevel)
}

func TestEstimateMedicationsAddMonthlyFills(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{
		Age: 50,
		Medications: []domain.Medication{
			{Name: "Lisinopril"},
			{Name: "Humira", Specialty: true},
		},
	})
	assert.True(t, estimate.Count(domain.CategoryDrugGeneric).Equal(decimal.NewFromInt(12)))
	assert.True(t, estimate.Count(domain.CategoryDrugSpecialty).Equal(decimal.NewFromInt(12)))
}

func TestEstimateEmergencyRiskFromExpectedAcuteCare(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{
		Age: 55,
		Conditions: []domain.Condition{
			{Name: "COPD"},
		},
	})

	// COPD contributes 1 ER visit and 0.3 admissions per year.
	want := decimal.NewFromFloat(1.3).Div(decimal.NewFromInt(12))
	assert.True(t, estimate.EmergencyRisk.Equal(want), "got %s", estimate.EmergencyRisk)
}

func TestEstimateNegativeAgeClampedToZero(t *testing.T) {
	estimator := NewRiskEstimator()
	estimate := estimator.Estimate(domain.Member{Age: -3})

	// Clamped age lands in the pediatric band.
	assert.Equal(t, 8, estimate.RiskScore)
	assert.True(t, estimate.Count(domain.CategoryPrimaryCare).Equal(decimal.NewFromInt(1)))
}

func TestEstimateFactorOrderIsDeterministic(t *testing.T) {
	member := domain.Member{
		Age: 58,
		Conditions: []domain.Condition{
			{Name: "Hypertension"},
			{Name: "Diabetes"},
			{Name: "Asthma"},
		},
		Lifestyle: domain.Lifestyle{Smoker: true},
	}

	estimator := NewRiskEstimator()
	first := estimator.Estimate(member)
	second := estimator.Estimate(member)

	assert.Equal(t, first.Factors, second.Factors)
	assert.Equal(t, "Asthma", first.Factors[0].Name)
	assert.Equal(t, "Diabetes", first.Factors[1].Name)
	assert.Equal(t, "Hypertension", first.Factors[2].Name)
}
