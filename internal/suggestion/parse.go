package suggestion

import (
	"encoding/json"
	"errors"
	"strings"

	"ResearchScout/internal/domain"
)

// ErrNoJSONArray means the reply held no decodable JSON array of suggestions.
var ErrNoJSONArray = errors.New("no json array in response")

const fence = "```"

// ParseSuggestions extracts the suggestion array from free-form LLM output. The
// array may be fenced (```json ... ```) or surrounded by commentary, brackets
// included.
func ParseSuggestions(text string) ([]domain.Suggestion, error) {
	candidates := make([]string, 0, 2)
	if fenced, ok := fencedBlock(text); ok {
		candidates = append(candidates, fenced)
	}
	candidates = append(candidates, text)

	for _, candidate := range candidates {
		if suggestions, ok := firstArray(candidate); ok {
			return keepTitled(suggestions), nil
		}
	}
	return nil, ErrNoJSONArray
}

func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, fence)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(fence):]
	// Skip the info string ("json") up to the end of the fence line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, fence)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// firstArray tries every '[' in order and returns the first one that decodes
// as a suggestion array. The decoder stops at the array's closing bracket, so
// brackets in surrounding commentary do not matter. An empty array is used
// only when no non-empty one follows it.
func firstArray(text string) ([]domain.Suggestion, bool) {
	foundEmpty := false
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		var suggestions []domain.Suggestion
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&suggestions); err != nil {
			continue
		}
		if len(suggestions) > 0 {
			return suggestions, true
		}
		foundEmpty = true
	}
	if foundEmpty {
		return []domain.Suggestion{}, true
	}
	return nil, false
}

func keepTitled(in []domain.Suggestion) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(in))
	for _, s := range in {
		s.Title = strings.TrimSpace(s.Title)
		if s.Title == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
