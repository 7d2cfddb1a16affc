package analysis_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ResearchScout/internal/analysis"
	"ResearchScout/internal/domain"
)

var fixedNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func article(concepts map[string]int) domain.ArticleMetadata {
	return domain.ArticleMetadata{KeyConcepts: concepts}
}

func TestAnalyzeGapsAggregates(t *testing.T) {
	t.Parallel()

	articles := []domain.ArticleMetadata{
		article(map[string]int{"trust": 4, "collaboration": 1}),
		article(map[string]int{"trust": 2, "workflow": 3}),
		article(map[string]int{"trust": 1}),
	}

	got := analysis.AnalyzeGaps(articles, fixedNow)

	require.Equal(t, 3, got.TotalArticles)
	require.Empty(t, got.Error)
	require.Equal(t, "2026-03-02T10:00:00Z", got.AnalysisTimestamp)

	trust, ok := got.ConceptCoverage.Lookup("trust")
	require.True(t, ok)
	require.Equal(t, domain.ConceptStat{Concept: "trust", Count: 7, Articles: 3}, trust)

	require.Len(t, got.ConceptCoverage, 3)
	require.Equal(t, "trust", got.DominantThemes[0].Concept)
	require.Equal(t, "workflow", got.DominantThemes[1].Concept)

	require.False(t, got.UnderexploredConcepts.Has("trust"))
	require.True(t, got.UnderexploredConcepts.Has("workflow"))
	require.True(t, got.UnderexploredConcepts.Has("collaboration"))
}

func TestAnalyzeGapsCoverageIsUnionOfKeys(t *testing.T) {
	t.Parallel()

	articles := []domain.ArticleMetadata{
		article(map[string]int{"a": 1, "b": 2}),
		article(map[string]int{"c": 1}),
		article(map[string]int{}),
		article(map[string]int{"b": 1, "d": 5}),
	}

	got := analysis.AnalyzeGaps(articles, fixedNow)

	keys := map[string]bool{}
	for _, stat := range got.ConceptCoverage {
		keys[stat.Concept] = true
	}
	require.Equal(t, map[string]bool{"a": true, "b": true, "c": true, "d": true}, keys)
}

func TestAnalyzeGapsDominantThemesCappedAndRanked(t *testing.T) {
	t.Parallel()

	var articles []domain.ArticleMetadata
	for i := 1; i <= 14; i++ {
		articles = append(articles, article(map[string]int{fmt.Sprintf("concept-%02d", i): i}))
	}

	got := analysis.AnalyzeGaps(articles, fixedNow)

	require.Len(t, got.DominantThemes, 10)
	minIncluded := got.DominantThemes[len(got.DominantThemes)-1].Count
	for _, stat := range got.ConceptCoverage {
		if !got.DominantThemes.Has(stat.Concept) {
			require.LessOrEqual(t, stat.Count, minIncluded)
		}
	}
	for i := 1; i < len(got.DominantThemes); i++ {
		require.GreaterOrEqual(t, got.DominantThemes[i-1].Count, got.DominantThemes[i].Count)
	}
}

func TestAnalyzeGapsUnderexploredRule(t *testing.T) {
	t.Parallel()

	articles := []domain.ArticleMetadata{
		article(map[string]int{"x": 1, "y": 1}),
		article(map[string]int{"x": 1, "y": 1}),
		article(map[string]int{"x": 1}),
	}

	got := analysis.AnalyzeGaps(articles, fixedNow)

	for _, stat := range got.ConceptCoverage {
		want := stat.Articles < 3 && stat.Count > 0
		require.Equal(t, want, got.UnderexploredConcepts.Has(stat.Concept), stat.Concept)
	}
	require.True(t, got.UnderexploredConcepts.Has("y"))
	require.False(t, got.UnderexploredConcepts.Has("x"))
}

func TestAnalyzeGapsIsIdempotent(t *testing.T) {
	t.Parallel()

	articles := []domain.ArticleMetadata{
		article(map[string]int{"trust": 2, "agent": 2, "feedback": 2}),
		article(map[string]int{"agent": 1}),
	}

	require.Equal(t, analysis.AnalyzeGaps(articles, fixedNow), analysis.AnalyzeGaps(articles, fixedNow))
}

func TestAnalyzeGapsEmptyCorpus(t *testing.T) {
	t.Parallel()

	got := analysis.AnalyzeGaps(nil, fixedNow)

	require.Equal(t, 0, got.TotalArticles)
	require.Equal(t, analysis.ErrNoArticles, got.Error)
	require.True(t, got.Empty())
}

func TestAnalyzeTrends(t *testing.T) {
	t.Parallel()

	papers := []domain.PaperRecord{
		{Title: "Trust in Collaboration", Summary: "We study trust and trust repair."},
		{Title: "Agents", Summary: "Collaboration between agents and people; a workflow study."},
	}

	got := analysis.AnalyzeTrends(papers, []string{"workflow", "trust", "collaboration", "agent", "absent"}, 180)

	require.Equal(t, 2, got.TotalPapers)
	require.Equal(t, domain.TermCounts{
		{Term: "trust", Count: 3},
		{Term: "collaboration", Count: 2},
		{Term: "agent", Count: 2},
		{Term: "workflow", Count: 1},
	}, got.TrendingTerms)
	require.Equal(t, []string{"trust", "collaboration", "agent", "workflow"}, got.RecentFocusAreas)
	require.Contains(t, got.AnalysisNote, "2 arXiv papers")
}

func TestAnalyzeTrendsTopFive(t *testing.T) {
	t.Parallel()

	papers := []domain.PaperRecord{{Title: "a b c d e f g", Summary: "a b c d e f"}}

	got := analysis.AnalyzeTrends(papers, []string{"a", "b", "c", "d", "e", "f", "g"}, 180)

	require.Len(t, got.TrendingTerms, 7)
	require.Len(t, got.RecentFocusAreas, 5)
}

func TestRankOpportunitiesWithoutSite(t *testing.T) {
	t.Parallel()

	trends := domain.TrendAnalysis{TrendingTerms: domain.TermCounts{
		{Term: "trust", Count: 5},
		{Term: "workflow", Count: 2},
		{Term: "collaboration", Count: 10},
	}}

	got := analysis.RankOpportunities(trends, nil)

	require.Len(t, got, 2)
	require.Equal(t, "collaboration", got[0].Topic)
	require.Equal(t, 10, got[0].ResearchFrequency)
	require.Equal(t, domain.GapHigh, got[0].GapLevel)
	require.Equal(t, "trust", got[1].Topic)
	require.Equal(t, 5, got[1].ResearchFrequency)
	require.Equal(t, domain.GapHigh, got[1].GapLevel)
}

func TestRankOpportunitiesMarksCoveredTopics(t *testing.T) {
	t.Parallel()

	trends := domain.TrendAnalysis{TrendingTerms: domain.TermCounts{
		{Term: "trust", Count: 9},
		{Term: "quantum", Count: 4},
	}}
	site := analysis.AnalyzeGaps([]domain.ArticleMetadata{article(map[string]int{"trust": 1})}, fixedNow)

	got := analysis.RankOpportunities(trends, &site)

	require.Equal(t, domain.GapCovered, got[0].GapLevel)
	require.Equal(t, domain.GapHigh, got[1].GapLevel)
	require.Equal(t, "Explore practical applications of quantum in human-AI collaboration", got[1].SuggestedFocus)
	require.Equal(t, "Appears 4 times across recent arXiv papers", got[1].ResearchBasis)
}
