// Package analysis aggregates site and research corpora into gap, trend, and opportunity views.
package analysis

import (
	"sort"
	"time"

	"ResearchScout/internal/domain"
)

const (
	dominantThemeLimit     = 10
	underexploredThreshold = 3

	// ErrNoArticles marks an analysis computed over an empty corpus.
	ErrNoArticles = "no articles found"
)

// AnalyzeGaps aggregates per-article concept counts into corpus-level coverage.
// The result depends only on articles (and now for the timestamp).
func AnalyzeGaps(articles []domain.ArticleMetadata, now time.Time) domain.CorpusGapAnalysis {
	result := domain.CorpusGapAnalysis{
		TotalArticles:         len(articles),
		DominantThemes:        domain.ConceptStats{},
		UnderexploredConcepts: domain.ConceptStats{},
		ConceptCoverage:       domain.ConceptStats{},
		AnalysisTimestamp:     now.UTC().Format(time.RFC3339),
	}
	if len(articles) == 0 {
		result.Error = ErrNoArticles
		return result
	}

	index := map[string]int{}
	for _, article := range articles {
		for _, concept := range sortedKeys(article.KeyConcepts) {
			count := article.KeyConcepts[concept]
			i, ok := index[concept]
			if !ok {
				i = len(result.ConceptCoverage)
				index[concept] = i
				result.ConceptCoverage = append(result.ConceptCoverage, domain.ConceptStat{Concept: concept})
			}
			result.ConceptCoverage[i].Count += count
			if count > 0 {
				result.ConceptCoverage[i].Articles++
			}
		}
	}

	ranked := make(domain.ConceptStats, len(result.ConceptCoverage))
	copy(ranked, result.ConceptCoverage)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > dominantThemeLimit {
		ranked = ranked[:dominantThemeLimit]
	}
	result.DominantThemes = ranked

	for _, stat := range result.ConceptCoverage {
		if stat.Articles < underexploredThreshold && stat.Count > 0 {
			result.UnderexploredConcepts = append(result.UnderexploredConcepts, stat)
		}
	}

	return result
}

// sortedKeys gives map iteration a fixed order so first-encountered tiebreaks are stable.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
