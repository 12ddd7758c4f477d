package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/core/config"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/core/logger"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once config is loaded.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &app{cfg: cfg, logger: logger.ForEnv(cfg.Server.Env)}, nil
}

func (a *app) openDatabase(ctx context.Context) (*sql.DB, error) {
	db, err := database.NewPostgresConnection(ctx, a.cfg.Database.URL, a.cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, err
	}
	a.logger.Info("connected to the database")
	return db, nil
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rezo",
		Short:         "Rezo school resource management service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("env-file", "", "Optional .env file; variables already set win")

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newProvisionCmd(),
	)

	return rootCmd
}

func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
