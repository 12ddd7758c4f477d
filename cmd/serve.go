package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/core/container"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/core/routes"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
				if err := database.RunMigrations(a.cfg.Database.URL, a.cfg.Database.MigrationsDir, a.logger); err != nil {
					return fmt.Errorf("migrate database: %w", err)
				}
			}

			db, err := a.openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			redisClient, err := database.NewRedisClient(ctx, a.cfg.Redis.URL)
			if err != nil {
				return err
			}
			if redisClient != nil {
				defer redisClient.Close()
				a.logger.Info("connected to redis")
			} else {
				a.logger.Warn("REDIS_URL not set, rate limiting and last-seen throttling stay in memory")
			}

			c, err := container.NewAppContainer(ctx, a.cfg, db, redisClient, a.logger)
			if err != nil {
				return err
			}
			defer c.Close()

			server := &http.Server{
				Addr:              a.cfg.Server.Host,
				Handler:           routes.NewRouter(c),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("starting server", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		},
	}
	serveCmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")

	return serveCmd
}
