package compare

import (
	"fmt"
	"strings"

	"github.com/planwise/benefitsim/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table ranking the compared policies
func (tf *TableFormatter) Format(result *ComparisonResult) string {
	var sb strings.Builder

	sb.WriteString("POLICY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Family size: %d\n", result.FamilySize))
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %-6s %*s %*s %*s %*s %-10s\n",
		nameWidth, "Policy",
		"Type",
		numWidth, "Premium",
		numWidth, "Cost Sharing",
		numWidth, "Total/Year",
		numWidth, "OOP Progress",
		"Protection"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	for i, a := range result.Analyses {
		name := a.PolicyName
		if i == 0 && len(result.Analyses) > 1 {
			name += " *"
		}
		costSharing := a.Annual.TreatmentCosts.Add(a.Annual.MedicationCosts)
		sb.WriteString(fmt.Sprintf("%-*s %-6s %*s %*s %*s %*s %-10s\n",
			nameWidth, tf.truncate(name, nameWidth),
			string(a.PolicyType),
			numWidth, "$"+tf.formatDecimal(a.Annual.Premiums),
			numWidth, "$"+tf.formatDecimal(costSharing),
			numWidth, "$"+tf.formatDecimal(a.Annual.TotalCosts),
			numWidth, "$"+tf.formatDecimal(a.OOPProgress.Individual),
			string(a.KeyMetrics.RiskProtection)))
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if len(result.Analyses) > 1 {
		sb.WriteString("* lowest total annual cost\n")
	}

	if result.Recommendation.Summary != "" {
		sb.WriteString("\nRECOMMENDATION\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		sb.WriteString(result.Recommendation.Summary + "\n")
	}

	if len(result.Recommendation.Alternatives) > 0 {
		sb.WriteString("\nAlternatives worth a look:\n")
		for _, id := range result.Recommendation.Alternatives {
			for _, a := range result.Analyses {
				if a.PolicyID == id {
					sb.WriteString(fmt.Sprintf("  - %s (%s): $%s/year\n",
						a.PolicyName, a.PolicyType, tf.formatDecimal(a.Annual.TotalCosts)))
				}
			}
		}
	}

	return sb.String()
}

// FormatAnalysis renders a single policy's cost breakdown
func (tf *TableFormatter) FormatAnalysis(a *domain.CostAnalysis) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s (%s)\n", a.PolicyName, a.PolicyType))
	sb.WriteString(strings.Repeat("-", 48) + "\n")
	sb.WriteString(fmt.Sprintf("  Premiums:             $%s\n", tf.formatDecimal(a.Annual.Premiums)))
	sb.WriteString(fmt.Sprintf("  Treatment costs:      $%s\n", tf.formatDecimal(a.Annual.TreatmentCosts)))
	sb.WriteString(fmt.Sprintf("  Medication costs:     $%s\n", tf.formatDecimal(a.Annual.MedicationCosts)))
	sb.WriteString(fmt.Sprintf("  Total annual cost:    $%s\n", tf.formatDecimal(a.Annual.TotalCosts)))
	sb.WriteString(fmt.Sprintf("  Effective monthly:    $%s\n", a.KeyMetrics.EffectiveMonthlyCost.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("  Deductible met:       $%s individual / $%s family\n",
		tf.formatDecimal(a.DeductibleProgress.Individual), tf.formatDecimal(a.DeductibleProgress.Family)))
	sb.WriteString(fmt.Sprintf("  OOP progress:         $%s individual / $%s family\n",
		tf.formatDecimal(a.OOPProgress.Individual), tf.formatDecimal(a.OOPProgress.Family)))
	if a.HSAEligible {
		sb.WriteString("  HSA eligible\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	return d.Round(0).StringFixed(0)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
