package config

import (
	"fmt"
	"os"

	"github.com/planwise/benefitsim/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Configuration is the single YAML input document: one member profile, the
// candidate policies to compare, and household options.
type Configuration struct {
	Member     domain.Member            `yaml:"member"`
	FamilySize int                      `yaml:"family_size"`
	Policies   []domain.InsurancePolicy `yaml:"policies"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file, then validates and
// clamps it. Malformed values inside the document are corrected (upstream
// extraction is inherently uncertain); only an unreadable or unparseable
// file is an error.
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.NormalizeConfiguration(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// NormalizeConfiguration clamps and defaults every field the engine's
// boundary contract requires: non-negative money and counts, severity in
// the enumerated set, known service categories, family size at least 1.
func (ip *InputParser) NormalizeConfiguration(config *Configuration) {
	if config.FamilySize < 1 {
		config.FamilySize = 1
	}
	if config.Member.Age < 0 {
		config.Member.Age = 0
	}
	if config.Member.Lifestyle.BMI.IsNegative() {
		config.Member.Lifestyle.BMI = decimal.Zero
	}

	for i := range config.Member.Conditions {
		config.Member.Conditions[i].Severity = config.Member.Conditions[i].Severity.Normalize()
	}

	for i := range config.Member.ExpectedVisits {
		visit := &config.Member.ExpectedVisits[i]
		visit.Category = domain.ParseServiceCategory(string(visit.Category))
		if visit.AnnualFrequency.IsNegative() {
			visit.AnnualFrequency = decimal.Zero
		}
	}

	for i := range config.Policies {
		policy := &config.Policies[i]
		policy.Sanitize()
		if policy.ID == "" {
			policy.ID = fmt.Sprintf("policy-%d", i+1)
		}
		if policy.Name == "" {
			policy.Name = policy.ID
		}
	}
}

// ValidateConfiguration rejects only contract violations that normalization
// cannot repair
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	seen := map[string]bool{}
	for _, policy := range config.Policies {
		if seen[policy.ID] {
			return fmt.Errorf("duplicate policy id %q", policy.ID)
		}
		seen[policy.ID] = true

		switch policy.Type {
		case domain.PolicyHMO, domain.PolicyPPO, domain.PolicyEPO, domain.PolicyPOS, domain.PolicyHDHP, "":
		default:
			return fmt.Errorf("policy %q has unknown type %q", policy.ID, policy.Type)
		}
	}
	return nil
}
