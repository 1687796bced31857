package domain

import (
	"github.com/shopspring/decimal"
)

// RiskLevel is derived from RiskScore via fixed thresholds
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevelFromScore maps a 0-100 risk score to its level. Thresholds are
// fixed: >=70 critical, >=50 high, >=30 moderate, else low.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskCritical
	case score >= 50:
		return RiskHigh
	case score >= 30:
		return RiskModerate
	default:
		return RiskLow
	}
}

// RiskFactor is one contribution to the member's risk score
type RiskFactor struct {
	Name     string `json:"name"`
	Category string `json:"category"` // condition | age | lifestyle
	Impact   string `json:"impact"`   // low | moderate | high
	Points   int    `json:"points"`
}

// UtilizationEstimate is the expected annual healthcare utilization derived
// from a member's health profile. Counts are expected annual service counts
// per category; EmergencyRisk is in [0,1].
type UtilizationEstimate struct {
	Counts        map[ServiceCategory]decimal.Decimal `json:"counts"`
	EmergencyRisk decimal.Decimal                     `json:"emergencyRisk"`
	RiskScore     int                                 `json:"riskScore"`
	RiskLevel     RiskLevel                           `json:"riskLevel"`
	Factors       []RiskFactor                        `json:"factors"`
}

// Count returns the expected annual count for a category, zero if absent.
func (ue UtilizationEstimate) Count(cat ServiceCategory) decimal.Decimal {
	if c, ok := ue.Counts[cat]; ok {
		return c
	}
	return decimal.Zero
}
