package domain

// PaperSourceArxiv tags papers collected from the arXiv API.
const PaperSourceArxiv = "arxiv"

// PaperRecord is a normalized search-result entry from the academic feed.
type PaperRecord struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Summary    string   `json:"summary"`
	URL        string   `json:"url"`
	Published  string   `json:"published"`
	Categories []string `json:"categories"`
	Source     string   `json:"source"`
}

// TrendAnalysis captures term frequencies over the collected papers.
type TrendAnalysis struct {
	TrendingTerms    TermCounts `json:"trending_terms"`
	TotalPapers      int        `json:"total_papers"`
	RecentFocusAreas []string   `json:"recent_focus_areas"`
	AnalysisNote     string     `json:"analysis_note"`
}

// GapLevel says whether the site already covers a trending topic.
type GapLevel string

const (
	GapHigh    GapLevel = "high"
	GapCovered GapLevel = "covered"
)

// Opportunity is a trending research term annotated with site coverage.
type Opportunity struct {
	Topic             string   `json:"topic"`
	ResearchFrequency int      `json:"research_frequency"`
	GapLevel          GapLevel `json:"gap_level"`
	ResearchBasis     string   `json:"research_basis"`
	SuggestedFocus    string   `json:"suggested_focus"`
}

// ResearchSources groups collected papers by feed.
type ResearchSources struct {
	Arxiv []PaperRecord `json:"arxiv"`
}

// ResearchReport is the persisted result of one external research run.
type ResearchReport struct {
	RunID         string          `json:"run_id"`
	Timestamp     string          `json:"timestamp"`
	Depth         string          `json:"depth"`
	Sources       ResearchSources `json:"sources"`
	Trends        TrendAnalysis   `json:"trends"`
	Opportunities []Opportunity   `json:"opportunities"`
}
