package seed

import (
	"context"
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"go.uber.org/zap"
)

const (
	CategoryName  = "gadget"
	TotalQuantity = 10
)

type Asset struct {
	SerialNumber string
	Name         string
}

// Assets is the starter catalog created by `rezo seed`.
var Assets = []Asset{
	{SerialNumber: "TV001", Name: "tv"},
	{SerialNumber: "CHAIR001", Name: "chair"},
	{SerialNumber: "CHALK001", Name: "chalk"},
	{SerialNumber: "FAN001", Name: "electricfan"},
}

type Categories interface {
	EnsureCategory(ctx context.Context, name string) (*models.Category, error)
}

type SerialChecker interface {
	SerialNumberExists(ctx context.Context, serialNumber string) (bool, error)
}

type AssetCreator interface {
	CreateAsset(ctx context.Context, req models.AssetRequest) (*models.AssetDetails, error)
}

type Seeder struct {
	categories Categories
	serials    SerialChecker
	assets     AssetCreator
	logger     *zap.Logger
}

func NewSeeder(c Categories, s SerialChecker, a AssetCreator, logger *zap.Logger) *Seeder {
	return &Seeder{categories: c, serials: s, assets: a, logger: logger}
}

// Run creates the starter category and any starter asset whose serial number
// is not taken yet. It returns the number of assets created, so running it
// twice is harmless.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	category, err := s.categories.EnsureCategory(ctx, CategoryName)
	if err != nil {
		return 0, fmt.Errorf("ensure category %s: %w", CategoryName, err)
	}

	created := 0
	for _, item := range Assets {
		exists, err := s.serials.SerialNumberExists(ctx, item.SerialNumber)
		if err != nil {
			return created, err
		}
		if exists {
			s.logger.Debug("seed asset already present", zap.String("serial_number", item.SerialNumber))
			continue
		}

		serial := item.SerialNumber
		total := TotalQuantity
		if _, err := s.assets.CreateAsset(ctx, models.AssetRequest{
			Name:          item.Name,
			SerialNumber:  &serial,
			CategoryID:    category.ID,
			TotalQuantity: &total,
		}); err != nil {
			return created, fmt.Errorf("create asset %s: %w", serial, err)
		}

		s.logger.Info("seeded asset", zap.String("serial_number", serial), zap.String("name", item.Name))
		created++
	}

	return created, nil
}
