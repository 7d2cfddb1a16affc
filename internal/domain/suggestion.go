package domain

// Suggestion is one drafted article idea returned by the LLM.
type Suggestion struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TargetSection string   `json:"target_section"`
	KeyConcepts   []string `json:"key_concepts"`
	ResearchBasis string   `json:"research_basis"`
	Outline       []string `json:"outline"`
}

// SuggestionBatch is the persisted result of one generation run.
type SuggestionBatch struct {
	RunID       string       `json:"run_id"`
	Timestamp   string       `json:"timestamp"`
	Model       string       `json:"model"`
	Suggestions []Suggestion `json:"suggestions"`
	StubPaths   []string     `json:"stub_paths"`
}
