package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/tutorhub/internal/config"
	"github.com/example/tutorhub/internal/database"
	"github.com/example/tutorhub/internal/handlers"
	"github.com/example/tutorhub/internal/health"
	"github.com/example/tutorhub/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	monitor := health.New(db, cfg.HealthCheckInterval, log)
	if err := monitor.Start(); err != nil {
		return err
	}
	defer monitor.Stop()

	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handlers.NewAPIHandler(
		database.NewTutorRepository(db),
		database.NewTopicRepository(db),
		monitor,
		cfg.HealthCheckResponse,
		log,
	)
	srv := &http.Server{
		Addr:    cfg.HostPort,
		Handler: handlers.NewRouter(h, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "addr", cfg.HostPort, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	// Give in-flight requests time to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
