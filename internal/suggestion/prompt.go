// Package suggestion turns analysis results into LLM prompts, parses the
// replies, and renders markdown stubs for drafted articles.
package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"

	"ResearchScout/internal/domain"
)

const defaultCount = 5

// PromptInput is everything the generation prompt embeds.
type PromptInput struct {
	Site          *domain.CorpusGapAnalysis
	Trends        domain.TrendAnalysis
	Opportunities []domain.Opportunity
	Count         int
	// TrackedConcepts are the concept names the site analysis counts; key_concepts
	// drawn from this list line up with future gap reports.
	TrackedConcepts []string
}

// BuildPrompt renders the analysis objects as JSON inside generation instructions.
func BuildPrompt(in PromptInput) (string, error) {
	count := in.Count
	if count <= 0 {
		count = defaultCount
	}

	siteJSON := []byte("null")
	if in.Site != nil {
		var err error
		if siteJSON, err = json.MarshalIndent(in.Site, "", "  "); err != nil {
			return "", fmt.Errorf("marshal site analysis: %w", err)
		}
	}
	trendsJSON, err := json.MarshalIndent(in.Trends, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal trends: %w", err)
	}
	opportunities := in.Opportunities
	if opportunities == nil {
		opportunities = []domain.Opportunity{}
	}
	oppsJSON, err := json.MarshalIndent(opportunities, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal opportunities: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are planning new content for a documentation site about human/AI collaboration.\n\n")
	b.WriteString("## Current site coverage\n")
	if in.Site == nil {
		b.WriteString("No site analysis is available; assume nothing is covered yet.\n")
	}
	b.WriteString("```json\n")
	b.Write(siteJSON)
	b.WriteString("\n```\n\n## Recent research trends\n```json\n")
	b.Write(trendsJSON)
	b.WriteString("\n```\n\n## Ranked opportunities\n```json\n")
	b.Write(oppsJSON)
	b.WriteString("\n```\n\n")
	if len(in.TrackedConcepts) > 0 {
		fmt.Fprintf(&b, "Concepts tracked on the site: %s.\n", strings.Join(in.TrackedConcepts, ", "))
		b.WriteString("Use these names for key_concepts where they apply.\n")
	}
	fmt.Fprintf(&b, "Suggest %d new articles. Prefer opportunities with gap_level \"high\" and concepts listed as underexplored.\n", count)
	b.WriteString("Respond with a single JSON array. Each element must have the fields:\n")
	b.WriteString(`"title" (string), "description" (string), "target_section" ("docs" or "blog"), `)
	b.WriteString(`"key_concepts" (array of strings), "research_basis" (string), "outline" (array of section headings).`)
	b.WriteString("\n")
	return b.String(), nil
}
