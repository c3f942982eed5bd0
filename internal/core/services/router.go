package services

import "github.com/icta-labs/lore-cli/internal/core/domain"

// routeResults is the grounding decision: a pure function of one
// query's retrieval results and the fixed thresholds. Empty results
// fall back. Otherwise a low mean OR any single low score falls
// back; only a set that clears both thresholds is grounded.
func routeResults(results []domain.RetrievalResult, thresholds domain.Thresholds) domain.RoutingDecision {
	if len(results) == 0 {
		return domain.RoutingDecision{Route: domain.RouteFallback}
	}

	sum := 0.0
	min := results[0].Score
	for _, r := range results {
		sum += r.Score
		if r.Score < min {
			min = r.Score
		}
	}
	mean := sum / float64(len(results))

	decision := domain.RoutingDecision{
		Route:       domain.RouteGrounded,
		MeanScore:   mean,
		MinScore:    min,
		ResultCount: len(results),
	}
	if mean < thresholds.Mean || min < thresholds.Min {
		decision.Route = domain.RouteFallback
	}
	return decision
}
