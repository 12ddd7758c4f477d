package cmd

import (
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = a.cfg.Database.MigrationsDir
			}

			if err := database.RunMigrations(a.cfg.Database.URL, dir, a.logger); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			return nil
		},
	}
	migrateCmd.Flags().String("dir", "", "Directory containing the migration files (default MIGRATIONS_DIR)")

	return migrateCmd
}
