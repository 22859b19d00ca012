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
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/miv-platform/miv/internal/analysis"
	"github.com/miv-platform/miv/internal/config"
	"github.com/miv-platform/miv/internal/db"
	"github.com/miv-platform/miv/internal/httpapi"
	"github.com/miv-platform/miv/internal/repository"
	"github.com/miv-platform/miv/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "miv",
		Short:         "Venture pipeline and GEDSI metrics platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newMigrateCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			database, err := db.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()
			fmt.Printf("database ready at %s\n", cfg.DBPath)
			return nil
		},
	}
}

func serve(cfg config.Config) error {
	logger := newLogger(cfg.LogFormat)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	ventureRepo := repository.NewSQLiteVentureRepo(database)
	metricRepo := repository.NewSQLiteMetricRepo(database)
	docRepo := repository.NewSQLiteDocumentRepo(database)
	capRepo := repository.NewSQLiteCapitalActivityRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	analyticsRepo := repository.NewSQLiteAnalyticsRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	actor, err := service.EnsureServiceUser(ctx, userRepo)
	if err != nil {
		return fmt.Errorf("ensuring service user: %w", err)
	}

	dispatcher := analysis.NewDispatcher(
		analysis.NewCoverageAnalyzer(metricRepo, logger),
		cfg.AnalysisQueueSize, logger)
	dispatcher.Start()
	defer dispatcher.Stop()

	svc := httpapi.Services{
		Ventures:  service.NewVentureService(uow, ventureRepo, docRepo, capRepo, activityRepo),
		Metrics:   service.NewMetricService(uow, metricRepo, dispatcher),
		Analytics: service.NewAnalyticsService(analyticsRepo, activityRepo),
	}

	var auth httpapi.AuthProvider
	if cfg.AuthRequired {
		auth = httpapi.NewStaticTokenProvider(cfg.AuthTokens, actor.ID)
	} else {
		logger.Warn("authentication disabled, all requests act as the service user")
		auth = httpapi.NopAuthProvider{ActorID: actor.ID}
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.NewRouter(svc, auth, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr, "authRequired", cfg.AuthRequired)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownTimeoutMs)*time.Millisecond)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// newLogger picks the handler format: explicit config wins, otherwise JSON
// unless stderr is an interactive terminal.
func newLogger(format string) *slog.Logger {
	var handler slog.Handler
	switch {
	case format == "json":
		handler = slog.NewJSONHandler(os.Stderr, nil)
	case format == "text":
		handler = slog.NewTextHandler(os.Stderr, nil)
	case isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()):
		handler = slog.NewTextHandler(os.Stderr, nil)
	default:
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
