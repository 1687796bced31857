package compare

import (
	"fmt"
	"sort"
	"sync"

	"github.com/planwise/benefitsim/internal/calculation"
	"github.com/planwise/benefitsim/internal/domain"
)

// CompareEngine runs the benefit simulator across candidate policies and
// ranks the results. Simulations share no state, so they run concurrently;
// correctness does not depend on it.
type CompareEngine struct {
	Simulator *calculation.BenefitSimulator
}

// NewCompareEngine creates a comparison engine
func NewCompareEngine() *CompareEngine {
	return &CompareEngine{
		Simulator: calculation.NewBenefitSimulator(),
	}
}

// Compare simulates the treatment plan under every candidate policy and
// returns the analyses sorted ascending by total annual cost, with a
// templated recommendation. An empty policy list yields a well-formed empty
// result, not an error.
func (ce *CompareEngine) Compare(policies []domain.InsurancePolicy, plan domain.TreatmentPlan, familySize int) (*ComparisonResult, error) {
	if familySize < 1 {
		return nil, fmt.Errorf("family size must be at least 1, got %d", familySize)
	}

	analyses := make([]domain.CostAnalysis, len(policies))
	errs := make([]error, len(policies))

	var wg sync.WaitGroup
	for i := range policies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			analyses[i], errs[i] = ce.Simulator.Simulate(policies[i], plan, familySize)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("simulating policy %s: %w", policies[i].ID, err)
		}
	}

	// Ascending by total cost; name breaks ties so rankings are stable.
	sort.SliceStable(analyses, func(a, b int) bool {
		if !analyses[a].Annual.TotalCosts.Equal(analyses[b].Annual.TotalCosts) {
			return analyses[a].Annual.TotalCosts.LessThan(analyses[b].Annual.TotalCosts)
		}
		return analyses[a].PolicyName < analyses[b].PolicyName
	})

	assignRiskProtection(analyses)

	return &ComparisonResult{
		Analyses:       analyses,
		Recommendation: buildRecommendation(analyses),
		FamilySize:     familySize,
	}, nil
}
