package compare

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/planwise/benefitsim/internal/domain"
)

// Recommendation names the winners of a comparison and explains why
type Recommendation struct {
	BestValue         string   `json:"bestValue"`
	BestForMajorEvent string   `json:"bestForMajorEvent"`
	Summary           string   `json:"summary"`
	Alternatives      []string `json:"alternatives"`
}

// ComparisonResult is the ranked output of comparing every candidate policy
// against the same treatment plan
type ComparisonResult struct {
	Analyses       []domain.CostAnalysis `json:"analyses"`
	Recommendation Recommendation        `json:"recommendation"`
	FamilySize     int                   `json:"familySize"`
}

// assignRiskProtection ranks policies into terciles by worst-case annual
// exposure (effective premium plus individual OOP-max). Lower exposure means
// stronger protection. This is a relative ranking, which is why it lives in
// the comparator rather than the simulator.
func assignRiskProtection(analyses []domain.CostAnalysis) {
	n := len(analyses)
	if n == 0 {
		return
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return analyses[order[a]].WorstCaseExposure.LessThan(analyses[order[b]].WorstCaseExposure)
	})

	for rank, idx := range order {
		switch {
		case rank*3 < n:
			analyses[idx].KeyMetrics.RiskProtection = domain.ProtectionHigh
		case rank*3 < 2*n:
			analyses[idx].KeyMetrics.RiskProtection = domain.ProtectionMedium
		default:
			analyses[idx].KeyMetrics.RiskProtection = domain.ProtectionLow
		}
	}
}

// buildRecommendation templates the winners and their cost delta. With a
// single policy it degrades to a single-policy statement and an empty
// alternatives list; it never errors.
func buildRecommendation(analyses []domain.CostAnalysis) Recommendation {
	if len(analyses) == 0 {
		return Recommendation{Summary: "No policies were supplied for comparison.", Alternatives: []string{}}
	}

	bestValue := analyses[0]

	if len(analyses) == 1 {
		summary := fmt.Sprintf("%s is the only policy evaluated; estimated annual cost $%s.",
			bestValue.PolicyName, bestValue.Annual.TotalCosts.StringFixed(0))
		if bestValue.HSAEligible {
			summary += " It is HSA eligible."
		}
		return Recommendation{
			BestValue:         bestValue.PolicyID,
			BestForMajorEvent: bestValue.PolicyID,
			Summary:           summary,
			Alternatives:      []string{},
		}
	}

	// Strongest major-event protection is the lowest individual OOP-max,
	// recovered from the exposure figure net of premium.
	oopMax := func(a domain.CostAnalysis) decimal.Decimal {
		return a.WorstCaseExposure.Sub(a.Annual.Premiums)
	}
	bestMajor := analyses[0]
	for _, a := range analyses[1:] {
		if oopMax(a).LessThan(oopMax(bestMajor)) {
			bestMajor = a
		}
	}

	summary := fmt.Sprintf("%s offers the lowest estimated annual cost at $%s.",
		bestValue.PolicyName, bestValue.Annual.TotalCosts.StringFixed(0))
	if bestValue.HSAEligible {
		summary += " It is HSA eligible."
	}
	if bestMajor.PolicyID != bestValue.PolicyID {
		delta := bestMajor.Annual.TotalCosts.Sub(bestValue.Annual.TotalCosts)
		summary += fmt.Sprintf(" %s offers the strongest protection against a major medical event and costs $%s more per year.",
			bestMajor.PolicyName, delta.Abs().StringFixed(0))
	} else {
		summary += " It also offers the strongest protection against a major medical event."
	}

	return Recommendation{
		BestValue:         bestValue.PolicyID,
		BestForMajorEvent: bestMajor.PolicyID,
		Summary:           summary,
		Alternatives:      alternativePicks(analyses, bestValue),
	}
}

// alternativePicks lists the next two cheapest policies whose type differs
// from the best-value pick and from each other
func alternativePicks(analyses []domain.CostAnalysis, bestValue domain.CostAnalysis) []string {
	alternatives := []string{}
	seenTypes := map[domain.PolicyType]bool{bestValue.PolicyType: true}

	for _, a := range analyses {
		if a.PolicyID == bestValue.PolicyID || seenTypes[a.PolicyType] {
			continue
		}
		alternatives = append(alternatives, a.PolicyID)
		seenTypes[a.PolicyType] = true
		if len(alternatives) == 2 {
			break
		}
	}
	return alternatives
}
