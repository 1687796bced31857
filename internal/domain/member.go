package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Gender identifies a member's gender for preventive-care scheduling
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// Severity represents how advanced a diagnosed condition is
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Multiplier returns the frequency scaling factor applied to condition-driven
// treatment items. Unknown severities scale like mild.
func (s Severity) Multiplier() decimal.Decimal {
	switch s {
	case SeverityModerate:
		return decimal.NewFromFloat(1.5)
	case SeveritySevere:
		return decimal.NewFromInt(2)
	default:
		return decimal.NewFromInt(1)
	}
}

// Normalize maps free-form severity strings onto the enumerated set.
func (s Severity) Normalize() Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(string(s)))) {
	case SeverityModerate:
		return SeverityModerate
	case SeveritySevere:
		return SeveritySevere
	default:
		return SeverityMild
	}
}

// Condition is a diagnosed health condition on a member's profile
type Condition struct {
	Name     string   `yaml:"name" json:"name"`
	Severity Severity `yaml:"severity" json:"severity"`
	Status   string   `yaml:"status" json:"status"` // active | resolved
}

// Active reports whether the condition should drive utilization. An empty
// status is treated as active since upstream extraction often omits it.
func (c Condition) Active() bool {
	return c.Status == "" || strings.EqualFold(c.Status, "active")
}

// Medication is a prescription on a member's profile
type Medication struct {
	Name      string `yaml:"name" json:"name"`
	Specialty bool   `yaml:"specialty" json:"specialty"`
}

// Lifestyle captures risk-relevant lifestyle flags
type Lifestyle struct {
	Smoker        bool            `yaml:"smoker" json:"smoker"`
	HeavyAlcohol  bool            `yaml:"heavy_alcohol" json:"heavyAlcohol"`
	ExerciseLevel string          `yaml:"exercise_level" json:"exerciseLevel"` // sedentary | light | moderate | active
	BMI           decimal.Decimal `yaml:"bmi" json:"bmi"`
}

// ExpectedVisit is a user-declared visit the member already anticipates
// (e.g., planned physical therapy) that should appear in the treatment plan.
type ExpectedVisit struct {
	Category        ServiceCategory `yaml:"category" json:"category"`
	Description     string          `yaml:"description" json:"description"`
	AnnualFrequency decimal.Decimal `yaml:"annual_frequency" json:"annualFrequency"`
}

// Member represents one person's health profile. It is immutable input to
// the engine and owned by the caller.
type Member struct {
	Name           string          `yaml:"name" json:"name"`
	Age            int             `yaml:"age" json:"age"`
	Gender         Gender          `yaml:"gender" json:"gender"`
	Conditions     []Condition     `yaml:"conditions" json:"conditions"`
	Medications    []Medication    `yaml:"medications" json:"medications"`
	Lifestyle      Lifestyle       `yaml:"lifestyle" json:"lifestyle"`
	ExpectedVisits []ExpectedVisit `yaml:"expected_visits" json:"expectedVisits"`
}

// ActiveConditions returns the conditions that should drive utilization,
// sorted order is the caller's responsibility.
func (m Member) ActiveConditions() []Condition {
	active := make([]Condition, 0, len(m.Conditions))
	for _, c := range m.Conditions {
		if c.Active() {
			active = append(active, c)
		}
	}
	return active
}
