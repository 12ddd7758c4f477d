package ledger

import (
	"context"
	"fmt"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Repository is the storage the ledger needs. Every method runs on the
// caller's transaction so reads and writes of one operation share a snapshot
// and the row locks taken by the Lock* methods.
type Repository interface {
	GetAsset(ctx context.Context, tx *goqu.TxDatabase, assetID int) (*models.Asset, error)
	LockAsset(ctx context.Context, tx *goqu.TxDatabase, assetID int) (*models.Asset, error)
	UpdateAssetStatus(ctx context.Context, tx *goqu.TxDatabase, assetID int, status metadata.AssetStatus) error
	UpdateAssetTotal(ctx context.Context, tx *goqu.TxDatabase, assetID int, totalQuantity int) error
	GetOpenBorrowRecords(ctx context.Context, tx *goqu.TxDatabase, assetID int) ([]models.BorrowRecord, error)
	LockBorrowRecord(ctx context.Context, tx *goqu.TxDatabase, recordID int) (*models.BorrowRecord, error)
	InsertBorrowRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.BorrowRecord) error
	UpdateBorrowRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.BorrowRecord) error
	InsertDisposalRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.DisposalRecord) error
	CountOpenMaintenance(ctx context.Context, tx *goqu.TxDatabase, assetID int) (int, error)
	LockMaintenanceRecord(ctx context.Context, tx *goqu.TxDatabase, recordID int) (*models.MaintenanceRecord, error)
	InsertMaintenanceRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.MaintenanceRecord) error
	UpdateMaintenanceRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.MaintenanceRecord) error
}

var (
	assetColumns = []interface{}{
		"id", "name", "serial_number", "category_id", "total_quantity", "status", "created_at",
	}
	borrowColumns = []interface{}{
		"id", "user_id", "asset_id", "quantity", "status", "is_returned", "borrow_date",
		"approved_date", "return_date", "approved_by", "rejection_reason", "return_condition",
	}
	maintenanceColumns = []interface{}{
		"id", "asset_id", "maintenance_type", "status", "description", "requested_by", "assigned_to",
		"requested_date", "started_date", "completed_date", "cost", "notes",
	}
)

type ledgerRepository struct{}

func NewRepository() Repository {
	return &ledgerRepository{}
}

func (r *ledgerRepository) GetAsset(ctx context.Context, tx *goqu.TxDatabase, assetID int) (*models.Asset, error) {
	return r.findAsset(ctx, tx.From("assets").Select(assetColumns...).Where(goqu.Ex{"id": assetID}), assetID)
}

func (r *ledgerRepository) LockAsset(ctx context.Context, tx *goqu.TxDatabase, assetID int) (*models.Asset, error) {
	query := tx.From("assets").Select(assetColumns...).Where(goqu.Ex{"id": assetID}).ForUpdate(exp.Wait)
	return r.findAsset(ctx, query, assetID)
}

func (r *ledgerRepository) findAsset(ctx context.Context, query *goqu.SelectDataset, assetID int) (*models.Asset, error) {
	var asset models.Asset

	found, err := query.Executor().ScanStructContext(ctx, &asset)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("asset", assetID)
	}

	return &asset, nil
}

func (r *ledgerRepository) UpdateAssetStatus(ctx context.Context, tx *goqu.TxDatabase, assetID int, status metadata.AssetStatus) error {
	query := tx.Update("assets").
		Set(goqu.Record{"status": status.String()}).
		Where(goqu.Ex{"id": assetID})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

func (r *ledgerRepository) UpdateAssetTotal(ctx context.Context, tx *goqu.TxDatabase, assetID int, totalQuantity int) error {
	query := tx.Update("assets").
		Set(goqu.Record{"total_quantity": totalQuantity}).
		Where(goqu.Ex{"id": assetID})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

// GetOpenBorrowRecords returns the records that count towards stock math:
// pending requests and approved records not yet returned.
func (r *ledgerRepository) GetOpenBorrowRecords(ctx context.Context, tx *goqu.TxDatabase, assetID int) ([]models.BorrowRecord, error) {
	var records []models.BorrowRecord

	query := tx.From("borrow_records").
		Select(borrowColumns...).
		Where(
			goqu.Ex{"asset_id": assetID},
			goqu.Or(
				goqu.Ex{"status": metadata.BorrowStatusPending.String()},
				goqu.Ex{"status": metadata.BorrowStatusApproved.String(), "is_returned": false},
			),
		).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return records, nil
}

func (r *ledgerRepository) LockBorrowRecord(ctx context.Context, tx *goqu.TxDatabase, recordID int) (*models.BorrowRecord, error) {
	var record models.BorrowRecord

	query := tx.From("borrow_records").
		Select(borrowColumns...).
		Where(goqu.Ex{"id": recordID}).
		ForUpdate(exp.Wait)

	found, err := query.Executor().ScanStructContext(ctx, &record)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound(borrowResource, recordID)
	}

	return &record, nil
}

func (r *ledgerRepository) InsertBorrowRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.BorrowRecord) error {
	query := tx.Insert("borrow_records").
		Rows(goqu.Record{
			"user_id":     record.UserID,
			"asset_id":    record.AssetID,
			"quantity":    record.Quantity,
			"status":      record.Status.String(),
			"is_returned": record.IsReturned,
			"borrow_date": record.BorrowDate,
		}).
		Returning("id")

	if _, err := query.Executor().ScanValContext(ctx, &record.ID); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", custom_error.TranslateDBError(err))
	}

	return nil
}

func (r *ledgerRepository) UpdateBorrowRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.BorrowRecord) error {
	query := tx.Update("borrow_records").
		Set(goqu.Record{
			"status":           record.Status.String(),
			"is_returned":      record.IsReturned,
			"approved_date":    record.ApprovedDate,
			"return_date":      record.ReturnDate,
			"approved_by":      record.ApprovedBy,
			"rejection_reason": record.RejectionReason,
			"return_condition": record.ReturnCondition,
		}).
		Where(goqu.Ex{"id": record.ID})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}

func (r *ledgerRepository) InsertDisposalRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.DisposalRecord) error {
	query := tx.Insert("disposal_records").
		Rows(goqu.Record{
			"asset_id":      record.AssetID,
			"quantity":      record.Quantity,
			"reason":        string(record.Reason),
			"notes":         record.Notes,
			"disposed_by":   record.DisposedBy,
			"disposal_date": record.DisposalDate,
		}).
		Returning("id")

	if _, err := query.Executor().ScanValContext(ctx, &record.ID); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", custom_error.TranslateDBError(err))
	}

	return nil
}

func (r *ledgerRepository) CountOpenMaintenance(ctx context.Context, tx *goqu.TxDatabase, assetID int) (int, error) {
	var count int

	query := tx.From("maintenance_records").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{
			"asset_id": assetID,
			"status": []string{
				metadata.MaintenanceStatusPending.String(),
				metadata.MaintenanceStatusInProgress.String(),
			},
		})

	if _, err := query.Executor().ScanValContext(ctx, &count); err != nil {
		return 0, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return count, nil
}

func (r *ledgerRepository) LockMaintenanceRecord(ctx context.Context, tx *goqu.TxDatabase, recordID int) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord

	query := tx.From("maintenance_records").
		Select(maintenanceColumns...).
		Where(goqu.Ex{"id": recordID}).
		ForUpdate(exp.Wait)

	found, err := query.Executor().ScanStructContext(ctx, &record)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound(maintenanceResource, recordID)
	}

	return &record, nil
}

func (r *ledgerRepository) InsertMaintenanceRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.MaintenanceRecord) error {
	query := tx.Insert("maintenance_records").
		Rows(goqu.Record{
			"asset_id":         record.AssetID,
			"maintenance_type": string(record.Type),
			"status":           record.Status.String(),
			"description":      record.Description,
			"requested_by":     record.RequestedBy,
			"requested_date":   record.RequestedDate,
		}).
		Returning("id")

	if _, err := query.Executor().ScanValContext(ctx, &record.ID); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", custom_error.TranslateDBError(err))
	}

	return nil
}

func (r *ledgerRepository) UpdateMaintenanceRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.MaintenanceRecord) error {
	query := tx.Update("maintenance_records").
		Set(goqu.Record{
			"status":         record.Status.String(),
			"assigned_to":    record.AssignedTo,
			"started_date":   record.StartedDate,
			"completed_date": record.CompletedDate,
			"cost":           record.Cost,
			"notes":          record.Notes,
		}).
		Where(goqu.Ex{"id": record.ID})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", err)
	}

	return nil
}
