package config

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/benefitsim/internal/domain"
)

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Jordan Alvarez", config.Member.Name)
	assert.Equal(t, 42, config.Member.Age)
	assert.Equal(t, domain.Female, config.Member.Gender)
	assert.Equal(t, 3, config.FamilySize)
	require.Len(t, config.Policies, 2)

	ppo := config.Policies[0]
	assert.Equal(t, "ppo-standard", ppo.ID)
	assert.Equal(t, domain.PolicyPPO, ppo.Type)
	assert.True(t, ppo.Premium.FamilyAnnual.Equal(decimal.NewFromInt(16800)))
	assert.True(t, ppo.Deductible.Embedded)
	assert.True(t, ppo.Coinsurance.Equal(decimal.NewFromFloat(0.2)))

	erRule := ppo.Rule(domain.CategoryEmergency)
	require.NotNil(t, erRule.Copay)
	assert.True(t, erRule.Copay.Equal(decimal.NewFromInt(350)))
	assert.True(t, erRule.WaivedIfAdmitted)

	assert.True(t, ppo.Network.OutOfNetworkCoverage)
	assert.True(t, ppo.Network.OutOfNetworkCoinsurance.Equal(decimal.NewFromFloat(0.4)))
}

func TestLoadFromFileNormalizes(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	// Free-form severity maps onto the enumerated set.
	assert.Equal(t, domain.SeverityModerate, config.Member.Conditions[0].Severity)

	// Unknown visit categories resolve to other, negative frequencies clamp.
	require.Len(t, config.Member.ExpectedVisits, 2)
	assert.Equal(t, domain.CategoryImaging, config.Member.ExpectedVisits[0].Category)
	assert.Equal(t, domain.CategoryOther, config.Member.ExpectedVisits[1].Category)
	assert.True(t, config.Member.ExpectedVisits[1].AnnualFrequency.IsZero())

	// The second policy declares no id and falls back to its position.
	hdhp := config.Policies[1]
	assert.Equal(t, "policy-2", hdhp.ID)
	assert.Equal(t, "Bronze HDHP", hdhp.Name)
	assert.True(t, hdhp.Benefits.HSAEligible)
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestNormalizeConfigurationClamps(t *testing.T) {
	config := &Configuration{
		Member: domain.Member{
			Age:       -4,
			Lifestyle: domain.Lifestyle{BMI: decimal.NewFromInt(-22)},
		},
		FamilySize: 0,
		Policies: []domain.InsurancePolicy{
			{Premium: domain.Premium{IndividualAnnual: decimal.NewFromInt(-100)}},
		},
	}

	NewInputParser().NormalizeConfiguration(config)

	assert.Equal(t, 0, config.Member.Age)
	assert.True(t, config.Member.Lifestyle.BMI.IsZero())
	assert.Equal(t, 1, config.FamilySize)
	assert.True(t, config.Policies[0].Premium.IndividualAnnual.IsZero())
	assert.Equal(t, "policy-1", config.Policies[0].ID)
	assert.Equal(t, "policy-1", config.Policies[0].Name)
}

func TestValidateConfigurationDuplicateIDs(t *testing.T) {
	config := &Configuration{
		Policies: []domain.InsurancePolicy{
			{ID: "plan-a", Type: domain.PolicyHMO},
			{ID: "plan-a", Type: domain.PolicyPPO},
		},
	}
	err := NewInputParser().ValidateConfiguration(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate policy id")
}

func TestValidateConfigurationUnknownType(t *testing.T) {
	config := &Configuration{
		Policies: []domain.InsurancePolicy{
			{ID: "plan-a", Type: "INDEMNITY"},
		},
	}
	err := NewInputParser().ValidateConfiguration(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")

	config.Policies[0].Type = ""
	assert.NoError(t, NewInputParser().ValidateConfiguration(config))
}
