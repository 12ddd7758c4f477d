package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/ledger"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
)

const serialAttempts = 5

type Repository interface {
	GetAssetDetails(ctx context.Context, id int) (*models.AssetDetails, error)
	GetAssetsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.AssetDetails, error)
	SearchAssets(ctx context.Context, search models.AssetSearch, page repository.Page) (*repository.PagedResult[models.AssetDetails], error)
	PersistAsset(ctx context.Context, asset *models.Asset) error
	SerialNumberExists(ctx context.Context, serialNumber string) (bool, error)
	UpdateAsset(ctx context.Context, id int, updates map[string]interface{}) error
	HasRecords(ctx context.Context, id int) (bool, error)
	RemoveAsset(ctx context.Context, id int) (string, error)
}

type CategoryLookup interface {
	GetCategory(ctx context.Context, id int) (*models.Category, error)
}

type Restocker interface {
	Restock(ctx context.Context, assetID, quantity int) (*models.Asset, models.StockLevel, error)
}

type AssetService struct {
	repo       Repository
	categories CategoryLookup
	ledger     Restocker
	newSerial  func(categoryName string) string
}

func NewAssetService(repo Repository, categories CategoryLookup, ledger Restocker) *AssetService {
	return &AssetService{
		repo:       repo,
		categories: categories,
		ledger:     ledger,
		newSerial: func(categoryName string) string {
			return metadata.NewSerialNumber(categoryName).String()
		},
	}
}

func (s *AssetService) GetAsset(ctx context.Context, id int) (*models.AssetDetails, error) {
	return s.repo.GetAssetDetails(ctx, id)
}

// Catalog lists the assets a user can currently request.
func (s *AssetService) Catalog(ctx context.Context, categoryID int) ([]models.AssetDetails, error) {
	conditions := repository.NewQueryBuilder()
	conditions.AddCondition("status", metadata.AssetStatusAvailable.String())
	if categoryID > 0 {
		conditions.AddCondition("category_id", categoryID)
	}

	return s.repo.GetAssetsBy(ctx, conditions)
}

func (s *AssetService) Search(ctx context.Context, search models.AssetSearch) (*repository.PagedResult[models.AssetDetails], error) {
	search.Query = strings.TrimSpace(search.Query)
	if search.Status != "" {
		status, err := metadata.NewAssetStatus(search.Status)
		if err != nil {
			return nil, custom_error.NewValidation("status", err.Error())
		}
		search.Status = status.String()
	}

	return s.repo.SearchAssets(ctx, search, repository.NewPage(search.Page, search.Size))
}

func (s *AssetService) CreateAsset(ctx context.Context, req models.AssetRequest) (*models.AssetDetails, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, custom_error.NewValidation("name", "is required")
	}

	total := 1
	if req.TotalQuantity != nil {
		total = *req.TotalQuantity
	}
	if total < 0 {
		return nil, custom_error.NewValidation("total_quantity", "must not be negative")
	}

	category, err := s.categories.GetCategory(ctx, req.CategoryID)
	if err != nil {
		var notFound *custom_error.NotFoundError
		if errors.As(err, &notFound) {
			return nil, custom_error.NewValidation("category_id", "category does not exist")
		}
		return nil, err
	}

	serialNumber := ""
	if req.SerialNumber != nil {
		serialNumber = strings.TrimSpace(*req.SerialNumber)
	}
	if serialNumber == "" {
		if serialNumber, err = s.generateSerialNumber(ctx, category.Name); err != nil {
			return nil, err
		}
	}

	asset := models.Asset{
		Name:          name,
		SerialNumber:  serialNumber,
		CategoryID:    category.ID,
		TotalQuantity: total,
		Status:        ledger.DeriveAssetStatus(total, total, false),
	}
	if err := s.repo.PersistAsset(ctx, &asset); err != nil {
		return nil, err
	}

	return &models.AssetDetails{
		Asset:    asset,
		Category: *category,
		Stock:    ledger.NewStockLevel(total, 0, 0),
	}, nil
}

func (s *AssetService) generateSerialNumber(ctx context.Context, categoryName string) (string, error) {
	for i := 0; i < serialAttempts; i++ {
		candidate := s.newSerial(categoryName)

		exists, err := s.repo.SerialNumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("unable to generate a unique serial number after %d attempts", serialAttempts)
}

func (s *AssetService) UpdateAsset(ctx context.Context, req models.PatchAssetRequest) (*models.AssetDetails, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, custom_error.NewValidation("name", "must not be empty")
		}
		updates["name"] = name
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetCategory(ctx, *req.CategoryID); err != nil {
			var notFound *custom_error.NotFoundError
			if errors.As(err, &notFound) {
				return nil, custom_error.NewValidation("category_id", "category does not exist")
			}
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) == 0 {
		return nil, custom_error.NewValidation("body", "no fields to update")
	}

	if err := s.repo.UpdateAsset(ctx, req.ID, updates); err != nil {
		return nil, err
	}

	return s.repo.GetAssetDetails(ctx, req.ID)
}

// RemoveAsset deletes an asset that has never been borrowed, disposed of or
// maintained. Anything with history must be disposed of instead.
func (s *AssetService) RemoveAsset(ctx context.Context, id int) (string, error) {
	hasRecords, err := s.repo.HasRecords(ctx, id)
	if err != nil {
		return "", err
	}
	if hasRecords {
		return "", custom_error.NewInUse(fmt.Sprintf("asset %d has ledger records", id))
	}

	return s.repo.RemoveAsset(ctx, id)
}

func (s *AssetService) Restock(ctx context.Context, id, quantity int) (*models.Asset, models.StockLevel, error) {
	return s.ledger.Restock(ctx, id, quantity)
}
