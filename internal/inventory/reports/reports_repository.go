package reports

import (
	"context"
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ReportsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ReportsRepository {
	return &ReportsRepository{repository: r}
}

func (r *ReportsRepository) count(table string, where goqu.Ex) *goqu.SelectDataset {
	query := goqu.From(table).Select(goqu.COUNT("*"))
	if where != nil {
		query = query.Where(where)
	}
	return query
}

func (r *ReportsRepository) sum(table, column string, where goqu.Ex) *goqu.SelectDataset {
	query := goqu.From(table).Select(goqu.COALESCE(goqu.SUM(column), 0))
	if where != nil {
		query = query.Where(where)
	}
	return query
}

// GetDashboard reads every counter in a single round trip.
func (r *ReportsRepository) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	var dashboard models.Dashboard

	openMaintenance := goqu.Ex{"status": []string{
		metadata.MaintenanceStatusPending.String(),
		metadata.MaintenanceStatusInProgress.String(),
	}}
	outstanding := goqu.Ex{"status": metadata.BorrowStatusApproved.String(), "is_returned": false}

	query := r.repository.GoquDBWrapper.Select(
		r.count("assets", nil).As("total_assets"),
		r.count("categories", nil).As("total_categories"),
		r.sum("assets", "total_quantity", nil).As("total_units"),
		r.count("borrow_records", goqu.Ex{"status": metadata.BorrowStatusPending.String()}).As("pending_requests"),
		r.count("borrow_records", outstanding).As("active_borrows"),
		r.sum("borrow_records", "quantity", outstanding).As("borrowed_units"),
		r.count("maintenance_records", openMaintenance).As("open_maintenance"),
		r.sum("disposal_records", "quantity", nil).As("disposed_units"),
		r.count("assets", goqu.Ex{"status": metadata.AssetStatusRepair.String()}).As("assets_under_repair"),
		r.count("assets", goqu.Ex{"status": metadata.AssetStatusBorrowed.String()}).As("assets_out_of_stock"),
	)

	if _, err := query.Executor().ScanStructContext(ctx, &dashboard); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return &dashboard, nil
}
