package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/event-circulars/internal/circulars"
	"github.com/joseph-ayodele/event-circulars/internal/common"
	"github.com/joseph-ayodele/event-circulars/internal/export"
	"github.com/joseph-ayodele/event-circulars/internal/llm"
	"github.com/joseph-ayodele/event-circulars/internal/llm/provider"
	"github.com/joseph-ayodele/event-circulars/internal/metrics"
)

var (
	configPath string
	logLevel   string
	cfg        *common.Config
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "circulars",
	Short:        "Turn informal event descriptions into formal college circulars (.docx)",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = common.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		logger = common.NewLogger(cfg.Log, os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "circulars.yaml", "Path to YAML configuration file (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// pipeline is everything a command needs to generate circulars.
type pipeline struct {
	service *circulars.Service
	metrics *metrics.Metrics
	reg     *prometheus.Registry
}

func buildPipeline(ctx context.Context) (*pipeline, error) {
	completer, err := provider.New(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	extractor, err := llm.NewExtractor(completer, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	renderer := export.NewRenderer(cfg.Render.HeaderImagePath, logger)
	svc := circulars.NewService(extractor, renderer, circulars.Config{
		OutputDir:     cfg.Server.OutputDir,
		MaxInputChars: cfg.Server.MaxInputChars,
	}, m, logger)

	return &pipeline{service: svc, metrics: m, reg: reg}, nil
}
