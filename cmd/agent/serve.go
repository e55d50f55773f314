package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/babacardot/suparaise-sub001/internal/adapter/httpapi"
	"github.com/babacardot/suparaise-sub001/internal/application/port/input"
)

var servePlanOnly bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Serves instruction planning, submissions, the specialist list, health and Prometheus metrics.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&servePlanOnly, "plan-only", false, "Skip the database and engine; only planning routes work")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container("serve")
	if err != nil {
		return err
	}
	defer c.Close()

	var runner input.SubmissionRunner
	if !servePlanOnly {
		if err := c.ConnectStorage(ctx); err != nil {
			return err
		}
		runner = c.Submissions
	}

	cfg := c.Config
	srv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: httpapi.NewRouter(httpapi.RouterConfig{
			Planner:        c.Planner,
			Runner:         runner,
			Registry:       c.Registry,
			Metrics:        c.Metrics,
			Logger:         c.Logger,
			JSONLogs:       cfg.Log.Format == "json",
			MaxRequestSize: cfg.Server.MaxRequestSize,
			RequestTimeout: cfg.Server.ReadTimeout,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("HTTP server listening", "addr", srv.Addr, "plan_only", servePlanOnly)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
