package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/event-circulars/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the circular generation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := buildPipeline(ctx)
		if err != nil {
			return err
		}
		p.reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		srv := server.New(server.Config{
			Addr:            cfg.Server.Addr,
			MaxInputBytes:   cfg.Server.MaxInputBytes,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}, p.service, p.metrics, logger)

		logger.Info("circulars.serve.start",
			"addr", cfg.Server.Addr,
			"provider", cfg.LLM.Provider,
			"model", cfg.LLM.Model,
		)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8000", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}
