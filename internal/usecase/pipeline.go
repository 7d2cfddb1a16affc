package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ResearchScout/internal/analysis"
	"ResearchScout/internal/domain"
	"ResearchScout/internal/ports"
	"ResearchScout/internal/suggestion"
)

const digestOpportunityLimit = 5

var (
	// ErrNoChatClient is returned by Suggest when no LLM client is configured.
	ErrNoChatClient = errors.New("chat client is not configured")
	// ErrNoResearch is returned by Suggest when external_research.json is missing.
	ErrNoResearch = errors.New("no research report found, run research first")
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Crawler    ports.SiteCrawler
	Research   ports.ResearchSource
	Store      ports.ReportStore
	ChatClient ports.ChatClient
	Notifier   ports.Notifier
	Logger     *slog.Logger

	// Model is recorded in suggestions.json.
	Model      string
	TrendTerms []string
	WindowDays int
	// TrackedConcepts is passed to the prompt so suggestions reuse site concept names.
	TrackedConcepts []string

	Now      func() time.Time
	NewRunID func() string
}

// RunOptions parameterizes one full pipeline pass.
type RunOptions struct {
	BaseURL         string
	Depth           string
	SuggestionCount int
}

// Pipeline implements the crawl, research, and suggestion workflow.
type Pipeline struct {
	crawler    ports.SiteCrawler
	research   ports.ResearchSource
	store      ports.ReportStore
	chatClient ports.ChatClient
	notifier   ports.Notifier
	logger     *slog.Logger
	model      string
	trendTerms []string
	windowDays int
	tracked    []string
	now        func() time.Time
	newRunID   func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	newRunID := deps.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}
	windowDays := deps.WindowDays
	if windowDays <= 0 {
		windowDays = 180
	}
	return &Pipeline{
		crawler:    deps.Crawler,
		research:   deps.Research,
		store:      deps.Store,
		chatClient: deps.ChatClient,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
		model:      deps.Model,
		trendTerms: deps.TrendTerms,
		windowDays: windowDays,
		tracked:    deps.TrackedConcepts,
		now:        now,
		newRunID:   newRunID,
	}
}

// AnalyzeSite crawls the site, computes the gap analysis, and persists it. An
// unreachable site still produces a report with the empty-corpus marker.
func (p *Pipeline) AnalyzeSite(ctx context.Context, baseURL string) (domain.SiteAnalysis, error) {
	if p.crawler == nil || p.store == nil {
		return domain.SiteAnalysis{}, fmt.Errorf("site analysis: crawler and store are required")
	}

	now := p.now().UTC()
	outcome := p.crawler.Crawl(ctx, baseURL)
	if !outcome.Succeeded {
		p.warn("site crawl failed", "url", baseURL, "diagnostic", outcome.Diagnostic)
	}

	gaps := analysis.AnalyzeGaps(outcome.Items, now)
	if gaps.Empty() {
		p.warn("site corpus is empty", "url", baseURL)
	}

	report := domain.SiteAnalysis{
		RunID:        p.newRunID(),
		Timestamp:    now.Format(time.RFC3339),
		BaseURL:      baseURL,
		Articles:     outcome.Items,
		GapsAnalysis: gaps,
	}
	if err := p.store.SaveSiteAnalysis(ctx, report); err != nil {
		return report, fmt.Errorf("save site analysis: %w", err)
	}

	p.info("site analysis saved",
		"run_id", report.RunID,
		"articles", len(report.Articles),
		"concepts", len(gaps.ConceptCoverage))
	return report, nil
}

// CollectResearch gathers papers, derives trends, and ranks opportunities
// against the most recent site analysis (if one was saved).
func (p *Pipeline) CollectResearch(ctx context.Context, depth string) (domain.ResearchReport, error) {
	if p.research == nil || p.store == nil {
		return domain.ResearchReport{}, fmt.Errorf("research: source and store are required")
	}

	now := p.now().UTC()
	outcome, err := p.research.Collect(ctx, depth, now)
	if err != nil {
		return domain.ResearchReport{}, fmt.Errorf("collect research: %w", err)
	}
	if !outcome.Succeeded || outcome.Diagnostic != "" {
		p.warn("research degraded", "depth", depth, "diagnostic", outcome.Diagnostic)
	}

	trends := analysis.AnalyzeTrends(outcome.Items, p.trendTerms, p.windowDays)

	var gaps *domain.CorpusGapAnalysis
	site, err := p.store.LoadSiteAnalysis(ctx)
	switch {
	case err != nil:
		p.warn("site analysis unreadable, ranking without coverage", "error", err)
	case site == nil:
		p.debug("no site analysis saved, every opportunity is a gap")
	default:
		gaps = &site.GapsAnalysis
	}

	report := domain.ResearchReport{
		RunID:         p.newRunID(),
		Timestamp:     now.Format(time.RFC3339),
		Depth:         depth,
		Sources:       domain.ResearchSources{Arxiv: outcome.Items},
		Trends:        trends,
		Opportunities: analysis.RankOpportunities(trends, gaps),
	}
	if err := p.store.SaveResearch(ctx, report); err != nil {
		return report, fmt.Errorf("save research: %w", err)
	}

	p.info("research saved",
		"run_id", report.RunID,
		"papers", trends.TotalPapers,
		"opportunities", len(report.Opportunities))
	return report, nil
}

// Suggest asks the LLM for article ideas based on the saved reports, writes
// markdown stubs, and sends a digest.
func (p *Pipeline) Suggest(ctx context.Context, count int) (domain.SuggestionBatch, error) {
	batch, research, err := p.suggest(ctx, count)
	if err != nil {
		return batch, err
	}
	p.notify(ctx, research.Opportunities, &batch)
	return batch, nil
}

// Run executes site analysis, research, and (when an LLM is configured)
// suggestion generation, then sends a single digest.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) error {
	if _, err := p.AnalyzeSite(ctx, opts.BaseURL); err != nil {
		return err
	}

	research, err := p.CollectResearch(ctx, opts.Depth)
	if err != nil {
		return err
	}

	if p.chatClient == nil {
		p.info("chat client not configured, skipping suggestions")
		p.notify(ctx, research.Opportunities, nil)
		return nil
	}

	batch, _, err := p.suggest(ctx, opts.SuggestionCount)
	if err != nil {
		return err
	}
	p.notify(ctx, research.Opportunities, &batch)
	return nil
}

func (p *Pipeline) suggest(ctx context.Context, count int) (domain.SuggestionBatch, *domain.ResearchReport, error) {
	if p.chatClient == nil {
		return domain.SuggestionBatch{}, nil, ErrNoChatClient
	}
	if p.store == nil {
		return domain.SuggestionBatch{}, nil, fmt.Errorf("suggest: store is required")
	}

	research, err := p.store.LoadResearch(ctx)
	if err != nil {
		return domain.SuggestionBatch{}, nil, fmt.Errorf("load research: %w", err)
	}
	if research == nil {
		return domain.SuggestionBatch{}, nil, ErrNoResearch
	}

	var gaps *domain.CorpusGapAnalysis
	site, err := p.store.LoadSiteAnalysis(ctx)
	if err != nil {
		return domain.SuggestionBatch{}, nil, fmt.Errorf("load site analysis: %w", err)
	}
	if site != nil {
		gaps = &site.GapsAnalysis
	}

	prompt, err := suggestion.BuildPrompt(suggestion.PromptInput{
		Site:            gaps,
		Trends:          research.Trends,
		Opportunities:   research.Opportunities,
		Count:           count,
		TrackedConcepts: p.tracked,
	})
	if err != nil {
		return domain.SuggestionBatch{}, nil, fmt.Errorf("build prompt: %w", err)
	}

	reply, err := p.chatClient.Complete(ctx, prompt)
	if err != nil {
		return domain.SuggestionBatch{}, nil, fmt.Errorf("request suggestions: %w", err)
	}

	suggestions, err := suggestion.ParseSuggestions(reply)
	if err != nil {
		p.warn("llm reply had no usable suggestions", "error", err)
		suggestions = []domain.Suggestion{}
	}

	now := p.now().UTC()
	stubs := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		content, err := suggestion.RenderStub(s, now)
		if err != nil {
			return domain.SuggestionBatch{}, nil, fmt.Errorf("render stub %q: %w", s.Title, err)
		}
		path, err := p.store.WriteStub(ctx, suggestion.StubName(s, now), content)
		if err != nil {
			return domain.SuggestionBatch{}, nil, fmt.Errorf("write stub %q: %w", s.Title, err)
		}
		stubs = append(stubs, path)
	}

	batch := domain.SuggestionBatch{
		RunID:       p.newRunID(),
		Timestamp:   now.Format(time.RFC3339),
		Model:       p.model,
		Suggestions: suggestions,
		StubPaths:   stubs,
	}
	if err := p.store.SaveSuggestions(ctx, batch); err != nil {
		return batch, nil, fmt.Errorf("save suggestions: %w", err)
	}

	p.info("suggestions saved", "run_id", batch.RunID, "count", len(suggestions))
	return batch, research, nil
}

// notify never fails the run; delivery problems are only logged.
func (p *Pipeline) notify(ctx context.Context, opportunities []domain.Opportunity, batch *domain.SuggestionBatch) {
	if p.notifier == nil {
		return
	}
	message := buildDigestMessage(opportunities, batch)
	if err := p.notifier.PublishDigest(ctx, message); err != nil {
		p.warn("digest not delivered", "error", err)
	}
}

func buildDigestMessage(opportunities []domain.Opportunity, batch *domain.SuggestionBatch) string {
	var b strings.Builder
	b.WriteString("Research opportunities\n")
	if len(opportunities) == 0 {
		b.WriteString("- none this run\n")
	}
	for i, opp := range opportunities {
		if i == digestOpportunityLimit {
			fmt.Fprintf(&b, "...and %d more\n", len(opportunities)-i)
			break
		}
		fmt.Fprintf(&b, "- %s (%d mentions, %s)\n", opp.Topic, opp.ResearchFrequency, opp.GapLevel)
	}

	if batch == nil {
		return b.String()
	}

	b.WriteString("\nDrafted suggestions\n")
	if len(batch.Suggestions) == 0 {
		b.WriteString("- none\n")
	}
	for _, s := range batch.Suggestions {
		fmt.Fprintf(&b, "- %s\n", s.Title)
	}
	return b.String()
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
