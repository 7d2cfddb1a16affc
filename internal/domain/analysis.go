package domain

// CorpusGapAnalysis summarizes concept coverage across all crawled articles.
// It is rebuilt from scratch on every run.
type CorpusGapAnalysis struct {
	TotalArticles         int          `json:"total_articles"`
	DominantThemes        ConceptStats `json:"dominant_themes"`
	UnderexploredConcepts ConceptStats `json:"underexplored_concepts"`
	ConceptCoverage       ConceptStats `json:"concept_coverage"`
	AnalysisTimestamp     string       `json:"analysis_timestamp"`
	Error                 string       `json:"error,omitempty"`
}

// Empty reports whether the analysis was computed over zero articles.
func (a CorpusGapAnalysis) Empty() bool {
	return a.TotalArticles == 0
}
