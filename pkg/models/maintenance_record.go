package models

import (
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/shopspring/decimal"
)

type MaintenanceRecord struct {
	ID            int                        `json:"id" db:"id"`
	AssetID       int                        `json:"asset_id" db:"asset_id"`
	Type          metadata.MaintenanceType   `json:"maintenance_type" db:"maintenance_type"`
	Status        metadata.MaintenanceStatus `json:"status" db:"status"`
	Description   string                     `json:"description" db:"description"`
	RequestedBy   int                        `json:"requested_by" db:"requested_by"`
	AssignedTo    *int                       `json:"assigned_to,omitempty" db:"assigned_to"`
	RequestedDate time.Time                  `json:"requested_date" db:"requested_date"`
	StartedDate   *time.Time                 `json:"started_date,omitempty" db:"started_date"`
	CompletedDate *time.Time                 `json:"completed_date,omitempty" db:"completed_date"`
	Cost          decimal.NullDecimal        `json:"cost" db:"cost"`
	Notes         *string                    `json:"notes,omitempty" db:"notes"`
}

type MaintenanceRecordView struct {
	MaintenanceRecord
	AssetName   string `json:"asset_name" db:"asset_name"`
	AssetSerial string `json:"asset_serial_number" db:"asset_serial_number"`
}

type OpenMaintenanceRequest struct {
	MaintenanceType string `json:"maintenance_type" binding:"required"`
	Description     string `json:"description" binding:"required,max=2000"`
}

// MaintenanceTransitionRequest carries the form fields of every action; each
// action reads only the ones it needs.
type MaintenanceTransitionRequest struct {
	Action     string           `json:"action" binding:"required"`
	AssignedTo *int             `json:"assigned_to"`
	Cost       *decimal.Decimal `json:"cost"`
	Notes      string           `json:"notes" binding:"max=2000"`
	Reason     string           `json:"reason" binding:"max=1000"`
}

func (m *MaintenanceRecord) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   m.ID,
		ResourceType: "maintenance_record",
	}
}
