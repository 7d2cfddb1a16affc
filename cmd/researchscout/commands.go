package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newAnalyzeSiteCommand(opts *rootOptions) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "analyze-site",
		Short: "Crawl the site and write site_analysis.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.application().AnalyzeSite(cmd.Context(), baseURL)
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "site base URL (default from config)")
	return cmd
}

func newResearchCommand(opts *rootOptions) *cobra.Command {
	var depth string
	cmd := &cobra.Command{
		Use:   "research",
		Short: "Collect recent arXiv papers and write external_research.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.application().Research(cmd.Context(), depth)
		},
	}
	cmd.Flags().StringVar(&depth, "depth", "", "light or deep (default from config)")
	return cmd
}

func newSuggestCommand(opts *rootOptions) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the LLM for article ideas and write markdown drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.application().Suggest(cmd.Context(), count)
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "number of suggestions (default from config)")
	return cmd
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run site analysis, research and suggestions once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.application().Run(cmd.Context())
		},
	}
}

func newScheduleCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the full pipeline on the configured cron expression until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return opts.application().Schedule(ctx)
		},
	}
}
