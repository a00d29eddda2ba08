package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/straja-ai/agegate/internal/analysis"
	"github.com/straja-ai/agegate/internal/config"
	"github.com/straja-ai/agegate/internal/lexical"
	"github.com/straja-ai/agegate/internal/logging"
	"github.com/straja-ai/agegate/internal/redact"
	"github.com/straja-ai/agegate/internal/telemetry"
)

type rootOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "agegate",
		Short: "Classify videos as suitable or restricted for minors",
		Long: `agegate evaluates a video's transcript, comments and platform metadata and
decides whether it should be restricted for minors. Each report carries the
matched terms, comment and transcript sentiment, and the key topics of the
transcript.`,
		SilenceUsage: true,
		Version:      version,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "agegate.yaml", "path to config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")

	cmd.AddCommand(
		newServeCmd(opts),
		newAnalyzeCmd(opts),
		newEvalCmd(opts),
		newVideoIDCmd(),
	)
	return cmd
}

// runtime is the assembled pipeline shared by subcommands.
type runtime struct {
	cfg      *config.Config
	log      zerolog.Logger
	tel      *telemetry.Provider
	analyzer *analysis.Analyzer
	matcher  *lexical.Matcher
}

func (o *rootOptions) load(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level, err := logging.LevelFromFlags(cfg.Logging.Level, o.verbose, o.quiet)
	if err != nil {
		return nil, err
	}
	cfg.Logging.Level = level

	log := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format, "agegate")
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tel, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Protocol: cfg.Telemetry.Protocol,
		Service:  cfg.Telemetry.Service,
		Version:  version,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %s", redact.String(err.Error()))
	}

	a, m, err := analysis.FromConfig(cfg, log, tel)
	if err != nil {
		tel.Shutdown(ctx)
		return nil, err
	}
	log.Debug().
		Int("patterns", m.PatternCount()).
		Str("lexicon", m.LexiconName()).
		Str("config", o.configPath).
		Msg("pipeline ready")

	return &runtime{cfg: cfg, log: log, tel: tel, analyzer: a, matcher: m}, nil
}

func (rt *runtime) close() {
	rt.tel.Shutdown(context.Background())
}
