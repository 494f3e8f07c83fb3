package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrhapile/cf-diagnoser/internal/diagnosis"
	"github.com/mrhapile/cf-diagnoser/internal/metrics"
	"github.com/mrhapile/cf-diagnoser/internal/server"
	"github.com/mrhapile/cf-diagnoser/pkg/engine"
	"github.com/mrhapile/cf-diagnoser/pkg/rules"
)

var (
	serveAddr  string
	serveWatch bool
)

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inference HTTP API",
	Long: `Starts the HTTP API:

  GET  /health        liveness
  GET  /v1/symptoms   symptoms and confidence levels
  POST /v1/infer      {"facts": {"G02": 1.0}, "relabel": false}
  GET  /metrics       Prometheus metrics (when enabled)

The knowledge base is loaded once and shared read-only by all requests.
With --watch it is reloaded when the file changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the knowledge base when it changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveWatch {
		cfg.KnowledgeBase.Watch = true
	}

	kb, source, err := loadKnowledgeBase()
	if err != nil {
		return err
	}
	store := rules.NewStore(kb, source)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		m        *metrics.InferenceMetrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg)
		metrics.RegisterKnowledgeBase(reg, func() int { return len(store.Get().Rules) })
		gatherer = reg
	}

	if cfg.KnowledgeBase.Watch {
		if err := rules.Watch(ctx, source, store, logger); err != nil {
			return err
		}
		logger.Info("watching knowledge base", zap.String("path", source))
	}

	eng := engine.New(engine.WithLogger(logger), engine.WithMaxPasses(cfg.Engine.MaxPasses))
	svc := diagnosis.NewService(store, eng, m, logger)

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(logger)
	server.SetupRoutes(router, svc, gatherer, cfg.Metrics.Path)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
