package main

import (
	"github.com/spf13/cobra"

	"ResearchScout/internal/app"
	"ResearchScout/internal/config"
	"ResearchScout/internal/logging"
)

type rootOptions struct {
	configPath string
	outputDir  string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "researchscout",
		Short:         "Find content gaps by comparing a documentation site with recent research",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $RESEARCH_SCOUT_CONFIG)")
	flags.StringVar(&opts.outputDir, "output-dir", "", "directory for reports and drafts")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newAnalyzeSiteCommand(opts),
		newResearchCommand(opts),
		newSuggestCommand(opts),
		newRunCommand(opts),
		newScheduleCommand(opts),
	)
	return root
}

// load resolves configuration with command-line flags taking precedence.
func (o *rootOptions) load() config.Config {
	cfg := config.Load(o.configPath)
	if o.outputDir != "" {
		cfg.Output.Dir = o.outputDir
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg
}

func (o *rootOptions) application() *app.Application {
	cfg := o.load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	return app.New(cfg, logger)
}
