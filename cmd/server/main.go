// Command server hosts the reply suggestion service: a Temporal worker
// running the generate/rewrite workflows and the HTTP API in one process.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/contrib/envconfig"
	"go.temporal.io/sdk/worker"
	sdkworkflow "go.temporal.io/sdk/workflow"

	"github.com/dgrunert/antwort/internal/activities"
	"github.com/dgrunert/antwort/internal/api"
	"github.com/dgrunert/antwort/internal/config"
	"github.com/dgrunert/antwort/internal/llm"
	"github.com/dgrunert/antwort/internal/store"
	"github.com/dgrunert/antwort/internal/workflow"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	clientOpts, err := envconfig.LoadDefaultClientOptions()
	if err != nil {
		return fmt.Errorf("load temporal client options: %w", err)
	}
	temporalClient, err := client.Dial(clientOpts)
	if err != nil {
		return fmt.Errorf("connect to temporal: %w", err)
	}
	defer temporalClient.Close()

	cache := llm.NewCache()

	w := worker.New(temporalClient, cfg.TaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(workflow.Generate, sdkworkflow.RegisterOptions{Name: workflow.GenerateWorkflowName})
	w.RegisterWorkflowWithOptions(workflow.Rewrite, sdkworkflow.RegisterOptions{Name: workflow.RewriteWorkflowName})
	w.RegisterActivity(activities.NewCompletionActivities(cache))
	w.RegisterActivity(activities.NewHistoryActivities(db))

	if err := w.Start(); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	defer w.Stop()
	logger.Info("Worker started", "task_queue", cfg.TaskQueue)

	svc := api.NewService(temporalClient, db, cache, cfg.TaskQueue, logger)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(svc, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
