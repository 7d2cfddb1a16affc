package concepts

import "regexp"

// Concept pairs a tracked concept name with the rule that finds it in lowercased text.
type Concept struct {
	Name    string
	Matcher *regexp.Regexp
}

// Vocabulary is an ordered, read-only set of concepts.
type Vocabulary []Concept

// Names lists concept names in vocabulary order.
func (v Vocabulary) Names() []string {
	names := make([]string, 0, len(v))
	for _, c := range v {
		names = append(names, c.Name)
	}
	return names
}

// DefaultVocabulary tracks the themes of a human/AI collaboration site.
// Names shared with the research trend terms are spelled identically so
// opportunities can be matched against site coverage.
var DefaultVocabulary = Vocabulary{
	{Name: "collaboration", Matcher: regexp.MustCompile(`collaborat(?:ion|ive|ing|e)`)},
	{Name: "trust", Matcher: regexp.MustCompile(`trust`)},
	{Name: "mental model", Matcher: regexp.MustCompile(`mental models?`)},
	{Name: "human-ai", Matcher: regexp.MustCompile(`human-ai|ai-human`)},
	{Name: "communication", Matcher: regexp.MustCompile(`communicat(?:ion|e|ing)`)},
	{Name: "prompt engineering", Matcher: regexp.MustCompile(`prompt engineering|prompting`)},
	{Name: "context", Matcher: regexp.MustCompile(`context window|shared context`)},
	{Name: "feedback", Matcher: regexp.MustCompile(`feedback`)},
	{Name: "workflow", Matcher: regexp.MustCompile(`workflows?`)},
	{Name: "experimentation", Matcher: regexp.MustCompile(`experiment(?:ation|s|ing)?`)},
	{Name: "transparency", Matcher: regexp.MustCompile(`transparen(?:cy|t)`)},
	{Name: "explainability", Matcher: regexp.MustCompile(`explainab(?:ility|le)|explanations?`)},
	{Name: "cognitive load", Matcher: regexp.MustCompile(`cognitive (?:load|overhead)`)},
	{Name: "agent", Matcher: regexp.MustCompile(`agents?\b|agentic`)},
	{Name: "pair programming", Matcher: regexp.MustCompile(`pair programming|pairing`)},
	{Name: "delegation", Matcher: regexp.MustCompile(`delegat(?:ion|e|ing)`)},
	{Name: "human-in-the-loop", Matcher: regexp.MustCompile(`human-in-the-loop|human in the loop`)},
	{Name: "alignment", Matcher: regexp.MustCompile(`alignment`)},
}
