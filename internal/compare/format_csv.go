package compare

import (
	"encoding/csv"
	"strings"

	"github.com/planwise/benefitsim/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(result *ComparisonResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Policy ID",
		"Policy Name",
		"Type",
		"Premiums",
		"Treatment Costs",
		"Medication Costs",
		"Total Annual Cost",
		"Effective Monthly Cost",
		"Deductible Met (Individual)",
		"Deductible Met (Family)",
		"OOP Progress (Individual)",
		"OOP Progress (Family)",
		"Risk Protection",
		"HSA Eligible",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i := range result.Analyses {
		if err := writer.Write(cf.formatRow(&result.Analyses[i])); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats one policy analysis as a CSV row
func (cf *CSVFormatter) formatRow(a *domain.CostAnalysis) []string {
	hsa := "no"
	if a.HSAEligible {
		hsa = "yes"
	}
	return []string{
		a.PolicyID,
		a.PolicyName,
		string(a.PolicyType),
		a.Annual.Premiums.StringFixed(2),
		a.Annual.TreatmentCosts.StringFixed(2),
		a.Annual.MedicationCosts.StringFixed(2),
		a.Annual.TotalCosts.StringFixed(2),
		a.KeyMetrics.EffectiveMonthlyCost.StringFixed(2),
		a.DeductibleProgress.Individual.StringFixed(2),
		a.DeductibleProgress.Family.StringFixed(2),
		a.OOPProgress.Individual.StringFixed(2),
		a.OOPProgress.Family.StringFixed(2),
		string(a.KeyMetrics.RiskProtection),
		hsa,
	}
}
