package models

import (
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
)

type DisposalRecord struct {
	ID           int                     `json:"id" db:"id"`
	AssetID      int                     `json:"asset_id" db:"asset_id"`
	Quantity     int                     `json:"quantity" db:"quantity"`
	Reason       metadata.DisposalReason `json:"reason" db:"reason"`
	Notes        *string                 `json:"notes,omitempty" db:"notes"`
	DisposedBy   int                     `json:"disposed_by" db:"disposed_by"`
	DisposalDate time.Time               `json:"disposal_date" db:"disposal_date"`
}

type DisposalRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	Notes    string `json:"notes" binding:"max=1000"`
}

func (d *DisposalRecord) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   d.ID,
		ResourceType: "disposal_record",
	}
}
