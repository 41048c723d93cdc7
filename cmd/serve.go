package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/examlens/internal/api"
	"github.com/abhisek/examlens/internal/llm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reports over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ServerAddress
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var planner api.Planner
		switch p, err := newPlanner(ctx, s); {
		case err == nil:
			planner = p
		case errors.Is(err, llm.ErrNoProvider):
			logger.Info("no LLM provider configured, study plans disabled")
		default:
			return err
		}

		srv := api.NewServer(newEngine(s), s, planner, logger, api.Config{
			CORSOrigins: cfg.CORSOrigins,
			PlanTimeout: cfg.LLM.Timeout,
		})
		server := &http.Server{
			Addr:              addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", slog.String("addr", addr))
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", slog.Any("error", err))
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides EXAMLENS_ADDR)")
}
