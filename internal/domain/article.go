package domain

// PageRecord is the raw text pulled from one fetched site page before extraction.
type PageRecord struct {
	URL     string
	Title   string
	RawText string
}

// Heading is a markdown-style heading found in article text.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// ArticleMetadata describes a single analyzed page of the site.
type ArticleMetadata struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Authors     []string `json:"authors"`
	Date        string   `json:"date"`
	// ContentLength is in characters, the same unit the body preview is cut in.
	ContentLength int            `json:"content_length"`
	WordCount     int            `json:"word_count"`
	BodyPreview   string         `json:"body_preview"`
	Headings      []Heading      `json:"headings"`
	KeyConcepts   map[string]int `json:"key_concepts"`
}

// SiteAnalysis is the persisted result of one site crawl.
type SiteAnalysis struct {
	RunID        string            `json:"run_id"`
	Timestamp    string            `json:"timestamp"`
	BaseURL      string            `json:"base_url"`
	Articles     []ArticleMetadata `json:"articles"`
	GapsAnalysis CorpusGapAnalysis `json:"gaps_analysis"`
}
