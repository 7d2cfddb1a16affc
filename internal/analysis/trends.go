package analysis

import (
	"fmt"
	"sort"
	"strings"

	"ResearchScout/internal/domain"
)

const focusAreaLimit = 5

// DefaultTrendTerms is the research vocabulary counted across paper titles and summaries.
var DefaultTrendTerms = []string{
	"collaboration",
	"trust",
	"mental model",
	"communication",
	"explainability",
	"transparency",
	"workflow",
	"feedback",
	"cognitive load",
	"human-in-the-loop",
	"agent",
	"alignment",
	"co-creation",
	"prompt",
	"interaction",
	"decision making",
}

// AnalyzeTrends counts raw substring occurrences of each term over all papers.
// Terms with no occurrences are dropped; ties keep vocabulary order.
func AnalyzeTrends(papers []domain.PaperRecord, terms []string, windowDays int) domain.TrendAnalysis {
	if terms == nil {
		terms = DefaultTrendTerms
	}

	var blob strings.Builder
	for _, paper := range papers {
		blob.WriteString(paper.Title)
		blob.WriteByte(' ')
		blob.WriteString(paper.Summary)
		blob.WriteByte(' ')
	}
	text := strings.ToLower(blob.String())

	counts := make(domain.TermCounts, 0, len(terms))
	for _, term := range terms {
		if n := strings.Count(text, strings.ToLower(term)); n > 0 {
			counts = append(counts, domain.TermCount{Term: term, Count: n})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	focus := counts
	if len(focus) > focusAreaLimit {
		focus = focus[:focusAreaLimit]
	}

	return domain.TrendAnalysis{
		TrendingTerms:    counts,
		TotalPapers:      len(papers),
		RecentFocusAreas: focus.Terms(),
		AnalysisNote:     fmt.Sprintf("Term frequencies across %d arXiv papers published in the last %d days", len(papers), windowDays),
	}
}
