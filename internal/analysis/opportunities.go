package analysis

import (
	"fmt"
	"sort"

	"ResearchScout/internal/domain"
)

const opportunityThreshold = 2

var suggestedFocus = map[string]string{
	"collaboration":     "Patterns for dividing work between people and AI assistants",
	"trust":             "How trust in AI output is built, calibrated, and lost",
	"mental model":      "Helping users form accurate mental models of AI behavior",
	"communication":     "Communication conventions that make AI intent legible",
	"explainability":    "Explanations users actually read and act on",
	"transparency":      "Surfacing AI uncertainty and provenance in everyday tools",
	"workflow":          "Integrating AI steps into existing team workflows",
	"feedback":          "Designing feedback loops that improve AI assistance over time",
	"cognitive load":    "Reducing cognitive load when reviewing AI suggestions",
	"human-in-the-loop": "Where human review adds the most value in AI pipelines",
	"agent":             "Working alongside autonomous agents without losing oversight",
	"alignment":         "Practical alignment between AI behavior and team goals",
}

// RankOpportunities turns frequent research terms into opportunities ordered by
// descending frequency; equal frequencies keep the trend order. site may be nil,
// in which case every topic is a high gap.
func RankOpportunities(trends domain.TrendAnalysis, site *domain.CorpusGapAnalysis) []domain.Opportunity {
	terms := make(domain.TermCounts, len(trends.TrendingTerms))
	copy(terms, trends.TrendingTerms)
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Count > terms[j].Count
	})

	opportunities := make([]domain.Opportunity, 0)
	for _, tc := range terms {
		if tc.Count <= opportunityThreshold {
			continue
		}

		level := domain.GapHigh
		if site != nil && site.ConceptCoverage.Has(tc.Term) {
			level = domain.GapCovered
		}

		opportunities = append(opportunities, domain.Opportunity{
			Topic:             tc.Term,
			ResearchFrequency: tc.Count,
			GapLevel:          level,
			ResearchBasis:     fmt.Sprintf("Appears %d times across recent arXiv papers", tc.Count),
			SuggestedFocus:    focusFor(tc.Term),
		})
	}
	return opportunities
}

func focusFor(term string) string {
	if focus, ok := suggestedFocus[term]; ok {
		return focus
	}
	return fmt.Sprintf("Explore practical applications of %s in human-AI collaboration", term)
}
