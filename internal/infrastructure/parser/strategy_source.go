package parser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ResearchScout/internal/domain"
	"ResearchScout/internal/ports"
	"ResearchScout/internal/scanner"
)

// StrategySource implements ResearchSource via a registered search strategy.
// Queries run strictly one after another with a pause between requests.
type StrategySource struct {
	registry   *scanner.Registry
	source     string
	windowDays int
	delay      time.Duration
	dedupe     bool
	sleep      func(ctx context.Context, d time.Duration) error
	logger     *slog.Logger
}

var _ ports.ResearchSource = (*StrategySource)(nil)

// StrategySourceOptions configures the collection run.
type StrategySourceOptions struct {
	Source       string
	WindowDays   int
	RequestDelay time.Duration
	Dedupe       bool
}

// NewStrategySource wires the searcher registry with research settings.
func NewStrategySource(reg *scanner.Registry, opts StrategySourceOptions, log *slog.Logger) *StrategySource {
	if opts.Source == "" {
		opts.Source = arxivSearcherKey
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 180
	}
	return &StrategySource{
		registry:   reg,
		source:     opts.Source,
		windowDays: opts.WindowDays,
		delay:      opts.RequestDelay,
		dedupe:     opts.Dedupe,
		sleep:      sleepContext,
		logger:     log,
	}
}

// WindowDays exposes the publication window used for queries.
func (s *StrategySource) WindowDays() int {
	return s.windowDays
}

// Collect runs every query of the depth profile. A failed query contributes no
// papers; the outcome only fails when no query succeeded.
func (s *StrategySource) Collect(ctx context.Context, depth string, now time.Time) (domain.Outcome[domain.PaperRecord], error) {
	if s.registry == nil {
		return domain.Outcome[domain.PaperRecord]{}, fmt.Errorf("scanner registry is not configured")
	}

	profile, err := scanner.ProfileFor(depth)
	if err != nil {
		return domain.Outcome[domain.PaperRecord]{}, err
	}

	searcher, err := s.registry.Resolve(s.source)
	if err != nil {
		return domain.Outcome[domain.PaperRecord]{}, fmt.Errorf("research source: %w", err)
	}

	s.debug("collect research", "source", s.source, "depth", profile.Depth, "queries", len(profile.Queries))

	to := now.UTC()
	from := to.AddDate(0, 0, -s.windowDays)

	papers := make([]domain.PaperRecord, 0)
	failed := 0
	attempted := 0
	for i, text := range profile.Queries {
		if i > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				s.warn("research interrupted", "error", err)
				break
			}
		}

		attempted++
		results, err := searcher.Search(ctx, scanner.Query{
			Text:       text,
			MaxResults: profile.MaxResults,
			From:       from,
			To:         to,
		})
		if err != nil {
			failed++
			s.warn("query failed", "query", text, "error", err)
			continue
		}
		s.debug("query produced papers", "query", text, "count", len(results))
		papers = append(papers, results...)
	}

	if s.dedupe {
		papers = dedupePapers(papers)
	}

	outcome := domain.Succeed(papers)
	if failed > 0 || attempted < len(profile.Queries) {
		outcome.Diagnostic = fmt.Sprintf("%d of %d queries failed, %d not attempted",
			failed, len(profile.Queries), len(profile.Queries)-attempted)
	}
	if attempted == 0 || failed == attempted {
		outcome.Succeeded = false
	}

	s.debug("strategy source done", "total_papers", len(papers), "failed_queries", failed)
	return outcome, nil
}

// dedupePapers keeps the first record per URL.
func dedupePapers(papers []domain.PaperRecord) []domain.PaperRecord {
	seen := map[string]struct{}{}
	unique := make([]domain.PaperRecord, 0, len(papers))
	for _, p := range papers {
		key := p.URL
		if key == "" {
			key = p.Title
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
