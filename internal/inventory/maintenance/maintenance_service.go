package maintenance

import (
	"context"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/ledger"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"go.uber.org/zap"
)

type Ledger interface {
	OpenMaintenance(ctx context.Context, in ledger.OpenMaintenanceInput) (*models.MaintenanceRecord, error)
	TransitionMaintenance(ctx context.Context, recordID int, in ledger.MaintenanceTransition) (*models.MaintenanceRecord, error)
}

type Repository interface {
	GetMaintenanceRecords(ctx context.Context, status *metadata.MaintenanceStatus) ([]models.MaintenanceRecordView, error)
	GetMaintenanceRecord(ctx context.Context, id int) (*models.MaintenanceRecordView, error)
}

// Ticketer files an external ticket for newly opened maintenance.
type Ticketer interface {
	FileMaintenanceTicket(ctx context.Context, record models.MaintenanceRecordView) (string, error)
}

type MaintenanceService struct {
	ledger     Ledger
	repository Repository
	ticketer   Ticketer
	logger     *zap.Logger
}

// NewMaintenanceService accepts a nil ticketer when no ticketing system is
// configured.
func NewMaintenanceService(l Ledger, r Repository, t Ticketer, logger *zap.Logger) *MaintenanceService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MaintenanceService{
		ledger:     l,
		repository: r,
		ticketer:   t,
		logger:     logger,
	}
}

type OpenedMaintenance struct {
	*models.MaintenanceRecord
	TicketKey string `json:"ticket_key,omitempty"`
}

// Open records the maintenance through the ledger. The ticket is filed after
// the commit and a failure there never undoes the record.
func (s *MaintenanceService) Open(ctx context.Context, in ledger.OpenMaintenanceInput) (*OpenedMaintenance, error) {
	record, err := s.ledger.OpenMaintenance(ctx, in)
	if err != nil {
		return nil, err
	}

	opened := &OpenedMaintenance{MaintenanceRecord: record}
	if s.ticketer == nil {
		return opened, nil
	}

	view, err := s.repository.GetMaintenanceRecord(ctx, record.ID)
	if err != nil {
		s.logger.Warn("unable to load maintenance record for ticket", zap.Int("maintenance_record_id", record.ID), zap.Error(err))
		return opened, nil
	}

	key, err := s.ticketer.FileMaintenanceTicket(ctx, *view)
	if err != nil {
		s.logger.Warn("maintenance ticket not filed", zap.Int("maintenance_record_id", record.ID), zap.Error(err))
		return opened, nil
	}

	s.logger.Info("maintenance ticket filed", zap.Int("maintenance_record_id", record.ID), zap.String("ticket", key))
	opened.TicketKey = key

	return opened, nil
}

func (s *MaintenanceService) Transition(ctx context.Context, recordID int, in ledger.MaintenanceTransition) (*models.MaintenanceRecord, error) {
	return s.ledger.TransitionMaintenance(ctx, recordID, in)
}

func (s *MaintenanceService) List(ctx context.Context, status string) ([]models.MaintenanceRecordView, error) {
	if status == "" {
		return s.repository.GetMaintenanceRecords(ctx, nil)
	}

	parsed, err := metadata.NewMaintenanceStatus(status)
	if err != nil {
		return nil, custom_error.NewValidation("status", err.Error())
	}

	return s.repository.GetMaintenanceRecords(ctx, &parsed)
}

func (s *MaintenanceService) Get(ctx context.Context, id int) (*models.MaintenanceRecordView, error) {
	return s.repository.GetMaintenanceRecord(ctx, id)
}
