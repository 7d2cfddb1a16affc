package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ResearchScout/internal/concepts"
	"ResearchScout/internal/config"
	"ResearchScout/internal/infrastructure/llm"
	"ResearchScout/internal/infrastructure/parser"
	"ResearchScout/internal/infrastructure/scheduler"
	"ResearchScout/internal/infrastructure/storage"
	"ResearchScout/internal/infrastructure/telegram"
	"ResearchScout/internal/logging"
	"ResearchScout/internal/ports"
	"ResearchScout/internal/scanner"
	"ResearchScout/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
}

// New builds the application from configuration. Optional integrations (LLM,
// Telegram) are wired only when their credentials are present.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}

	vocabulary := concepts.DefaultVocabulary
	crawler := parser.NewSiteCrawler(httpClient, concepts.NewExtractor(vocabulary), parser.SiteCrawlerOptions{
		UserAgent:        cfg.HTTP.UserAgent,
		LinkPrefixes:     cfg.Site.LinkPrefixes,
		ContentSelectors: cfg.Site.ContentSelectors,
		MaxPages:         cfg.Site.MaxPages,
	}, baseLogger.With("component", "crawler"))

	registry := scanner.NewRegistry()
	registry.Register(parser.NewArxivSearcher(httpClient, cfg.Research.Endpoint, cfg.HTTP.UserAgent,
		baseLogger.With("component", "scanner.arxiv")))

	source := parser.NewStrategySource(registry, parser.StrategySourceOptions{
		Source:       cfg.Research.Source,
		WindowDays:   cfg.Research.WindowDays,
		RequestDelay: cfg.Research.RequestDelay,
		Dedupe:       cfg.Research.Dedupe,
	}, baseLogger.With("component", "source"))

	var (
		chatClient ports.ChatClient
		model      string
	)
	if cfg.ChatGPT.APIKey != "" {
		client := llm.NewChatGPTClient(cfg.ChatGPT)
		chatClient = client
		model = client.Model()
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.Enabled() {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Crawler:         crawler,
		Research:        source,
		Store:           storage.NewJSONRepository(cfg.Output.Dir, cfg.Output.DraftsDir),
		ChatClient:      chatClient,
		Notifier:        notifier,
		Logger:          baseLogger.With("component", "pipeline"),
		Model:           model,
		WindowDays:      source.WindowDays(),
		TrackedConcepts: vocabulary.Names(),
	})

	driver := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location(),
		baseLogger.With("component", "scheduler"))

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		pipeline:  pipeline,
		scheduler: usecase.NewScheduler(driver, pipeline, runOptions(cfg), baseLogger.With("component", "schedule")),
	}
}

// AnalyzeSite crawls baseURL, or the configured site when empty.
func (a *Application) AnalyzeSite(ctx context.Context, baseURL string) error {
	if baseURL == "" {
		baseURL = a.cfg.Site.BaseURL
	}
	_, err := a.pipeline.AnalyzeSite(ctx, baseURL)
	return err
}

// Research collects papers at depth, or the configured depth when empty.
func (a *Application) Research(ctx context.Context, depth string) error {
	if depth == "" {
		depth = a.cfg.Research.Depth
	}
	_, err := a.pipeline.CollectResearch(ctx, depth)
	return err
}

// Suggest generates count suggestions, or the configured count when count <= 0.
func (a *Application) Suggest(ctx context.Context, count int) error {
	if count <= 0 {
		count = a.cfg.ChatGPT.SuggestionCount
	}
	_, err := a.pipeline.Suggest(ctx, count)
	return err
}

// Run performs a single full pipeline pass.
func (a *Application) Run(ctx context.Context) error {
	return a.pipeline.Run(ctx, runOptions(a.cfg))
}

// Schedule runs the pipeline on the configured cron expression until ctx ends.
func (a *Application) Schedule(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	a.logger.Info("shutting down scheduler")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.scheduler.Stop(stopCtx)
}

func runOptions(cfg config.Config) usecase.RunOptions {
	return usecase.RunOptions{
		BaseURL:         cfg.Site.BaseURL,
		Depth:           cfg.Research.Depth,
		SuggestionCount: cfg.ChatGPT.SuggestionCount,
	}
}
