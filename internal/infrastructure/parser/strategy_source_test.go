package parser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ResearchScout/internal/domain"
	"ResearchScout/internal/scanner"
)

type recordingSearcher struct {
	mu      sync.Mutex
	queries []scanner.Query
	fail    map[string]bool
	papers  []domain.PaperRecord
}

func (r *recordingSearcher) Name() string { return "fake" }

func (r *recordingSearcher) Search(_ context.Context, q scanner.Query) ([]domain.PaperRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	if r.fail[q.Text] {
		return nil, errors.New("feed unavailable")
	}
	return r.papers, nil
}

func newTestSource(searcher scanner.Searcher, delay time.Duration) (*StrategySource, *[]time.Duration) {
	reg := scanner.NewRegistry()
	reg.Register(searcher)
	src := NewStrategySource(reg, StrategySourceOptions{Source: searcher.Name(), RequestDelay: delay}, nil)

	var pauses []time.Duration
	src.sleep = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}
	return src, &pauses
}

func TestStrategySourceLightDepth(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		requests []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.URL.Query().Get("max_results"))
		mu.Unlock()
		_, _ = w.Write([]byte(atomFixture))
	}))
	defer server.Close()

	src, pauses := newTestSource(NewArxivSearcher(server.Client(), server.URL, "", nil), 3*time.Second)

	outcome, err := src.Collect(context.Background(), "light", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}

	if len(requests) != 3 {
		t.Fatalf("expected exactly 3 requests, got %d", len(requests))
	}
	for _, maxResults := range requests {
		if maxResults != "5" {
			t.Fatalf("expected max_results=5, got %s", maxResults)
		}
	}
	if len(*pauses) != 2 {
		t.Fatalf("expected a pause between each pair of requests, got %d", len(*pauses))
	}
	if !outcome.Succeeded {
		t.Fatalf("expected success, diagnostic: %s", outcome.Diagnostic)
	}
	if len(outcome.Items) != 6 {
		t.Fatalf("expected papers from all queries without dedup, got %d", len(outcome.Items))
	}
}

func TestStrategySourceIsolatesQueryFailures(t *testing.T) {
	t.Parallel()

	searcher := &recordingSearcher{
		fail:   map[string]bool{"trust in AI assistants": true},
		papers: []domain.PaperRecord{{Title: "p", URL: "http://arxiv.org/abs/1"}},
	}
	src, _ := newTestSource(searcher, 0)

	outcome, err := src.Collect(context.Background(), "light", time.Now())
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if len(searcher.queries) != 3 {
		t.Fatalf("expected all queries to run, got %d", len(searcher.queries))
	}
	if len(outcome.Items) != 2 {
		t.Fatalf("expected 2 papers, got %d", len(outcome.Items))
	}
	if !outcome.Succeeded || outcome.Diagnostic == "" {
		t.Fatalf("expected partial success with diagnostic, got %+v", outcome)
	}
}

func TestStrategySourceAllQueriesFail(t *testing.T) {
	t.Parallel()

	searcher := &recordingSearcher{fail: map[string]bool{
		"human AI collaboration":      true,
		"trust in AI assistants":      true,
		"mental models of AI systems": true,
	}}
	src, _ := newTestSource(searcher, 0)

	outcome, err := src.Collect(context.Background(), "light", time.Now())
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if outcome.Succeeded {
		t.Fatal("expected failed outcome")
	}
	if len(outcome.Items) != 0 {
		t.Fatalf("expected no papers, got %d", len(outcome.Items))
	}
}

func TestStrategySourceDeepWindow(t *testing.T) {
	t.Parallel()

	searcher := &recordingSearcher{}
	src, _ := newTestSource(searcher, 0)
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	if _, err := src.Collect(context.Background(), "deep", now); err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if len(searcher.queries) != 8 {
		t.Fatalf("expected 8 queries, got %d", len(searcher.queries))
	}
	q := searcher.queries[0]
	if q.MaxResults != 10 || !q.To.Equal(now) || !q.From.Equal(now.AddDate(0, 0, -180)) {
		t.Fatalf("unexpected query: %+v", q)
	}
}

func TestStrategySourceDedupe(t *testing.T) {
	t.Parallel()

	searcher := &recordingSearcher{papers: []domain.PaperRecord{{Title: "p", URL: "http://arxiv.org/abs/1"}}}
	src, _ := newTestSource(searcher, 0)
	src.dedupe = true

	outcome, err := src.Collect(context.Background(), "light", time.Now())
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if len(outcome.Items) != 1 {
		t.Fatalf("expected duplicates removed, got %d", len(outcome.Items))
	}
}

func TestStrategySourceUnknownDepth(t *testing.T) {
	t.Parallel()

	src, _ := newTestSource(&recordingSearcher{}, 0)
	if _, err := src.Collect(context.Background(), "medium", time.Now()); !errors.Is(err, scanner.ErrUnknownDepth) {
		t.Fatalf("expected ErrUnknownDepth, got %v", err)
	}
}

func TestSleepContextHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
