package disposal

import (
	"context"
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type DisposalRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *DisposalRepository {
	return &DisposalRepository{repository: r}
}

func (r *DisposalRepository) GetAssetDisposals(ctx context.Context, assetID int) ([]models.DisposalRecord, error) {
	records := []models.DisposalRecord{}

	query := r.repository.GoquDBWrapper.
		From("disposal_records").
		Select("id", "asset_id", "quantity", "reason", "notes", "disposed_by", "disposal_date").
		Where(goqu.Ex{"asset_id": assetID}).
		Order(goqu.I("disposal_date").Desc(), goqu.I("id").Desc())

	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return records, nil
}
