package cmd

import (
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/assets"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/category"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/ledger"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the starter category and assets when missing.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			db, err := a.openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.NewRepository(db)
			categoryRepo := category.NewRepository(repo)
			assetRepo := assets.NewRepository(repo)
			assetService := assets.NewAssetService(
				assetRepo,
				categoryRepo,
				ledger.NewService(repo, ledger.NewRepository(), a.logger.Named("ledger")),
			)

			created, err := seed.NewSeeder(category.NewCategoryService(categoryRepo), assetRepo, assetService, a.logger.Named("seed")).
				Run(cmd.Context())
			if err != nil {
				return err
			}

			a.logger.Info("seed finished", zap.Int("created", created))
			return nil
		},
	}
}
