// Package concepts pulls headings and tracked concept counts out of article text.
package concepts

import (
	"strings"

	"ResearchScout/internal/domain"
)

// Extraction is the structured signal found in one article body.
type Extraction struct {
	Headings    []domain.Heading
	KeyConcepts map[string]int
}

// Extractor matches text against a fixed vocabulary. It holds no mutable state.
type Extractor struct {
	vocabulary Vocabulary
}

// NewExtractor builds an extractor; a nil vocabulary falls back to DefaultVocabulary.
func NewExtractor(vocabulary Vocabulary) *Extractor {
	if vocabulary == nil {
		vocabulary = DefaultVocabulary
	}
	return &Extractor{vocabulary: vocabulary}
}

// Extract returns the headings and concept counts of text.
func (e *Extractor) Extract(text string) Extraction {
	return Extraction{
		Headings:    ExtractHeadings(text),
		KeyConcepts: e.countConcepts(text),
	}
}

func (e *Extractor) countConcepts(text string) map[string]int {
	lowered := strings.ToLower(text)
	counts := make(map[string]int)
	for _, concept := range e.vocabulary {
		if concept.Matcher == nil {
			continue
		}
		if n := len(concept.Matcher.FindAllStringIndex(lowered, -1)); n > 0 {
			counts[concept.Name] += n
		}
	}
	return counts
}

// ExtractHeadings returns markdown-style headings in line order.
// "#" with nothing after it is not a heading.
func ExtractHeadings(text string) []domain.Heading {
	headings := make([]domain.Heading, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}

		rest := strings.TrimLeft(line, "#")
		level := len(line) - len(rest)
		title := strings.TrimSpace(rest)
		if title == "" {
			continue
		}
		headings = append(headings, domain.Heading{Level: level, Text: title})
	}
	return headings
}
