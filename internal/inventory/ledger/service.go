package ledger

import (
	"context"
	"strings"
	"time"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Transactor opens the transaction every ledger operation runs in.
// *repository.Repository satisfies it.
type Transactor interface {
	Transact(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error
}

type DisposeInput struct {
	AssetID    int
	Quantity   int
	Reason     string
	Notes      string
	DisposedBy int
}

type OpenMaintenanceInput struct {
	AssetID     int
	Type        string
	Description string
	RequestedBy int
}

type MaintenanceTransition struct {
	Action     string
	ActorID    int
	AssignedTo *int
	Cost       *decimal.Decimal
	Notes      string
	Reason     string
}

// Service owns every change to stock counts and to the borrow, disposal and
// maintenance record lifecycles. Each method is one transaction: the asset
// row is locked and its open records re-read before anything is validated.
type Service struct {
	tx     Transactor
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(tx Transactor, repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		tx:     tx,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) StockLevel(ctx context.Context, assetID int) (models.StockLevel, error) {
	var level models.StockLevel

	err := s.tx.Transact(ctx, func(tx *goqu.TxDatabase) error {
		asset, err := s.repo.GetAsset(ctx, tx, assetID)
		if err != nil {
			return err
		}

		records, err := s.repo.GetOpenBorrowRecords(ctx, tx, assetID)
		if err != nil {
			return err
		}

		level = Compute(asset.TotalQuantity, records)
		return nil
	})

	return level, err
}

func (s *Service) SubmitRequest(ctx context.Context, userID, assetID, quantity int) (*models.BorrowRecord, error) {
	var record *models.BorrowRecord

	err := s.tx.Transact(ctx, func(tx *goqu.TxDatabase) error {
		asset, err := s.repo.LockAsset(ctx, tx, assetID)
		if err != nil {
			return err
		}

		level, err := s.stockLevel(ctx, tx, asset)
		if err != nil {
			return err
		}

		if quantity < 1 || quantity > level.Available {
			return &custom_error.InsufficientStockError{AssetID: assetID, Requested: quantity, Available: level.Available}
		}

		record = &models.BorrowRecord{
			UserID:     userID,
			AssetID:    assetID,
			Quantity:   quantity,
			Status:     metadata.BorrowStatusPending,
			BorrowDate: s.now(),
		}

		return s.repo.InsertBorrowRecord(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("borrow request submitted",
		zap.Int("borrow_record_id", record.ID),
		zap.Int("asset_id", assetID),
		zap.Int("user_id", userID),
		zap.Int("quantity", quantity),
	)

	return record, nil
}

// Approve re-checks availability inside the approval transaction. Requests
// reserve nothing at submission, so when two pending requests compete for the
// same units the one approved first wins.
func (s *Service) Approve(ctx context.Context, recordID, approverID int) (*models.BorrowRecord, error) {
	var record *models.BorrowRecord

	err := s.tx.Transact(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		if record, err = s.repo.LockBorrowRecord(ctx, tx, recordID); err != nil {
			return err
		}
		if record.Status != metadata.BorrowStatusPending {
			return invalidBorrowState(record, "approve")
		}

		asset, err := s.repo.LockAsset(ctx, tx, record.AssetID)
		if err != nil {
			return err
		}

		level, err := s.stockLevel(ctx, tx, asset)
		if err != nil {
			return err
		}

		if record.Quantity > level.Available {
			return &custom_error.InsufficientStockError{AssetID: asset.ID, Requested: record.Quantity, Available: level.Available}
		}

		if err := approveRecord(record, approverID, s.now()); err != nil {
			return err
		}
		if err := s.repo.UpdateBorrowRecord(ctx, tx, record); err != nil {
			return err
		}

		_, err = s.refreshAssetStatus(ctx, tx, asset)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("borrow request approved",
		zap.Int("borrow_record_id", record.ID),
		zap.Int("asset_id", record.AssetID),
		zap.Int("approver_id", approverID),
	)

	return record, nil
}

func (s *Service) Reject(ctx context.Context, recordID, approverID int, reason string) (*models.BorrowRecord, error) {
	var record *models.BorrowRecord

	err := s.tx.Transact(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		if record, err = s.repo.LockBorrowRecord(ctx, tx, recordID); err != nil {
			return err
		}
		if err := rejectRecord(record, approverID, reason); err != nil {
			return err
		}

		return s.repo.UpdateBorrowRecord(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("borrow request rejected",
		zap.Int("borrow_record_id", record.ID),
		zap.Int("approver_id", approverID),
	)

	return record, nil
}

func (s *Service) Return(ctx context.Context, recordID int, condition string) (*models.BorrowRecord, error) {
	var record *models.BorrowRecord

	err := s.tx.Transact(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		if record, err = s.repo.LockBorrowRecord(ctx, tx, recordID); err != nil {
			return err
		}

		asset, err := s.repo.LockAsset(ctx, tx, record.AssetID)
		if err != nil {
			return err
		}

		if err := returnRecord(record, condition, s.now()); err != nil {
			return err
		}
		if err := s.repo.UpdateBorrowRecord(ctx, tx, record); err != nil {
			return err
		}

		_, err = s.refreshAssetStatus(ctx, tx, asset)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("borrowed stock returned",
		zap.Int("borrow_record_id", record.ID),
		zap.Int("asset_id", record.AssetID),
		zap.Int("quantity", record.Quantity),
	)

	return record, nil
}

func (s *Service) Dispose(ctx context.Context, in DisposeInput) (*models.DisposalRecord, error) {
	if in.Quantity < 1 {
		return nil, custom_error.NewValidation("quantity", "must be at least 1")
	}
	reason, err := metadata.NewDisposalReason(in.Reason)
	if err != nil {
		return nil, custom_error.NewValidation("reason", err.Error())
	}

	var record *models.DisposalRecord

	err = s.tx.Transact(ctx, func(tx *goqu.TxDatabase) error {
		asset, err := s.repo.LockAsset(ctx, tx, in.AssetID)
		if err != nil {
			return err
		}

		level, err := s.stockLevel(ctx, tx, asset)
		if err != nil {
			return err
		}

		if in.Quantity > level.Available {
			return &custom_error.InsufficientStockError{AssetID: asset.ID, Requested: in.Quantity, Available: level.Available}
		}

		record = &models.DisposalRecord{
			AssetID:      asset.ID,
			Quantity:     in.Quantity,
			Reason:       reason,
			Notes:        optionalText(in.Notes),
			DisposedBy:   in.DisposedBy,
			DisposalDate: s.now(),
		}
		if err := s.repo.InsertDisposalRecord(ctx, tx, record); err != nil {
			return err
		}

		asset.TotalQuantity -= in.Quantity
		if err := s.repo.UpdateAssetTotal(ctx, tx, asset.ID, asset.TotalQuantity); err != nil {
			return err
		}

		_, err = s.refreshAssetStatus(ctx, tx, asset)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock disposed",
		zap.Int("disposal_record_id", record.ID),
		zap.Int("asset_id", record.AssetID),
		zap.Int("quantity", record.Quantity),
		zap.String("reason", string(record.Reason)),
	)

	return record, nil
}

// Restock adds units to an asset's total.
func (s *Service) Restock(ctx context.Context, assetID, quantity int) (*models.Asset, models.StockLevel, error) {
	if quantity < 1 {
		return nil, models.StockLevel{}, custom_error.NewValidation("quantity", "must be at least 1")
	}

	var (
		asset *models.Asset
		level models.StockLevel
	)

	err := s.tx.Transact(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		if asset, err = s.repo.LockAsset(ctx, tx, assetID); err != nil {
			return err
		}

		asset.TotalQuantity += quantity
		if err := s.repo.UpdateAssetTotal(ctx, tx, asset.ID, asset.TotalQuantity); err != nil {
			return err
		}

		level, err = s.refreshAssetStatus(ctx, tx, asset)
		return err
	})
	if err != nil {
		return nil, models.StockLevel{}, err
	}

	s.logger.Info("asset restocked", zap.Int("asset_id", assetID), zap.Int("quantity", quantity))

	return asset, level, nil
}

func (s *Service) OpenMaintenance(ctx context.Context, in OpenMaintenanceInput) (*models.MaintenanceRecord, error) {
	maintenanceType, err := metadata.NewMaintenanceType(in.Type)
	if err != nil {
		return nil, custom_error.NewValidation("maintenance_type", err.Error())
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, custom_error.NewValidation("description", "is required")
	}

	var record *models.MaintenanceRecord

	err = s.tx.Transact(ctx, func(tx *goqu.TxDatabase) error {
		asset, err := s.repo.LockAsset(ctx, tx, in.AssetID)
		if err != nil {
			return err
		}

		record = &models.MaintenanceRecord{
			AssetID:       asset.ID,
			Type:          maintenanceType,
			Status:        metadata.MaintenanceStatusPending,
			Description:   strings.TrimSpace(in.Description),
			RequestedBy:   in.RequestedBy,
			RequestedDate: s.now(),
		}
		if err := s.repo.InsertMaintenanceRecord(ctx, tx, record); err != nil {
			return err
		}

		_, err = s.refreshAssetStatus(ctx, tx, asset)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("maintenance opened",
		zap.Int("maintenance_record_id", record.ID),
		zap.Int("asset_id", record.AssetID),
		zap.String("type", string(record.Type)),
	)

	return record, nil
}

func (s *Service) TransitionMaintenance(ctx context.Context, recordID int, in MaintenanceTransition) (*models.MaintenanceRecord, error) {
	action, err := metadata.NewMaintenanceAction(in.Action)
	if err != nil {
		return nil, custom_error.NewValidation("action", err.Error())
	}

	var record *models.MaintenanceRecord

	err = s.tx.Transact(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		if record, err = s.repo.LockMaintenanceRecord(ctx, tx, recordID); err != nil {
			return err
		}

		asset, err := s.repo.LockAsset(ctx, tx, record.AssetID)
		if err != nil {
			return err
		}

		now := s.now()
		switch action {
		case metadata.MaintenanceActionStart:
			assignee := in.ActorID
			if in.AssignedTo != nil {
				assignee = *in.AssignedTo
			}
			err = startMaintenance(record, assignee, now)
		case metadata.MaintenanceActionComplete:
			err = completeMaintenance(record, in.Cost, in.Notes, now)
		case metadata.MaintenanceActionCancel:
			reason := in.Reason
			if reason == "" {
				reason = in.Notes
			}
			err = cancelMaintenance(record, reason, now)
		}
		if err != nil {
			return err
		}

		if err := s.repo.UpdateMaintenanceRecord(ctx, tx, record); err != nil {
			return err
		}

		_, err = s.refreshAssetStatus(ctx, tx, asset)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("maintenance transitioned",
		zap.Int("maintenance_record_id", record.ID),
		zap.String("action", string(action)),
		zap.String("status", record.Status.String()),
	)

	return record, nil
}

func (s *Service) stockLevel(ctx context.Context, tx *goqu.TxDatabase, asset *models.Asset) (models.StockLevel, error) {
	records, err := s.repo.GetOpenBorrowRecords(ctx, tx, asset.ID)
	if err != nil {
		return models.StockLevel{}, err
	}

	return Compute(asset.TotalQuantity, records), nil
}

// refreshAssetStatus rewrites the cached status column from the records as
// they stand inside the current transaction.
func (s *Service) refreshAssetStatus(ctx context.Context, tx *goqu.TxDatabase, asset *models.Asset) (models.StockLevel, error) {
	level, err := s.stockLevel(ctx, tx, asset)
	if err != nil {
		return models.StockLevel{}, err
	}

	openMaintenance, err := s.repo.CountOpenMaintenance(ctx, tx, asset.ID)
	if err != nil {
		return models.StockLevel{}, err
	}

	status := DeriveAssetStatus(asset.TotalQuantity, level.Available, openMaintenance > 0)
	if status != asset.Status {
		if err := s.repo.UpdateAssetStatus(ctx, tx, asset.ID, status); err != nil {
			return models.StockLevel{}, err
		}
		asset.Status = status
	}

	return level, nil
}
