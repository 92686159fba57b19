package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/drishanroy/resume-analysis-app/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing POST /analyze and GET /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "address to listen on (overrides server.addr)")
	mustBind("server.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	a, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting server",
		zap.String("addr", a.cfg.Server.Addr),
		zap.Bool("fetch", a.cfg.Fetch.Enabled),
	)
	return server.New(a.cfg.Server, a.service, a.logger).Start(ctx)
}
