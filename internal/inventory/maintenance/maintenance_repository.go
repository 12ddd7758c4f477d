package maintenance

import (
	"context"
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type MaintenanceRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *MaintenanceRepository {
	return &MaintenanceRepository{repository: r}
}

func (r *MaintenanceRepository) viewQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("maintenance_records").As("m")).
		Join(goqu.T("assets").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("m.asset_id")))).
		Select(
			goqu.I("m.id").As("id"),
			goqu.I("m.asset_id").As("asset_id"),
			goqu.I("m.maintenance_type").As("maintenance_type"),
			goqu.I("m.status").As("status"),
			goqu.I("m.description").As("description"),
			goqu.I("m.requested_by").As("requested_by"),
			goqu.I("m.assigned_to").As("assigned_to"),
			goqu.I("m.requested_date").As("requested_date"),
			goqu.I("m.started_date").As("started_date"),
			goqu.I("m.completed_date").As("completed_date"),
			goqu.I("m.cost").As("cost"),
			goqu.I("m.notes").As("notes"),
			goqu.I("a.name").As("asset_name"),
			goqu.I("a.serial_number").As("asset_serial_number"),
		)
}

// GetMaintenanceRecords lists records newest first, optionally narrowed to
// one status.
func (r *MaintenanceRepository) GetMaintenanceRecords(ctx context.Context, status *metadata.MaintenanceStatus) ([]models.MaintenanceRecordView, error) {
	records := []models.MaintenanceRecordView{}

	query := r.viewQuery().Order(goqu.I("m.requested_date").Desc(), goqu.I("m.id").Desc())
	if status != nil {
		query = query.Where(goqu.Ex{"m.status": status.String()})
	}

	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return records, nil
}

func (r *MaintenanceRepository) GetMaintenanceRecord(ctx context.Context, id int) (*models.MaintenanceRecordView, error) {
	var record models.MaintenanceRecordView

	found, err := r.viewQuery().Where(goqu.Ex{"m.id": id}).Executor().ScanStructContext(ctx, &record)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("maintenance record", id)
	}

	return &record, nil
}
