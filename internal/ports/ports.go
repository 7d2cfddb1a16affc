package ports

import (
	"context"
	"time"

	"ResearchScout/internal/domain"
)

// SiteCrawler walks a documentation site and analyzes every discovered article.
type SiteCrawler interface {
	Crawl(ctx context.Context, baseURL string) domain.Outcome[domain.ArticleMetadata]
}

// ResearchSource collects papers for a depth setting. The error is reserved for
// misconfiguration; per-query failures only degrade the outcome.
type ResearchSource interface {
	Collect(ctx context.Context, depth string, now time.Time) (domain.Outcome[domain.PaperRecord], error)
}

// ReportStore persists run results as flat files.
type ReportStore interface {
	SaveSiteAnalysis(ctx context.Context, report domain.SiteAnalysis) error
	LoadSiteAnalysis(ctx context.Context) (*domain.SiteAnalysis, error)
	SaveResearch(ctx context.Context, report domain.ResearchReport) error
	LoadResearch(ctx context.Context) (*domain.ResearchReport, error)
	SaveSuggestions(ctx context.Context, batch domain.SuggestionBatch) error
	WriteStub(ctx context.Context, name string, content []byte) (string, error)
}

// ChatClient sends a prompt to an LLM API and returns the reply text.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Notifier streams run digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
