package models

import (
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
)

type BorrowRecord struct {
	ID              int                   `json:"id" db:"id"`
	UserID          int                   `json:"user_id" db:"user_id"`
	AssetID         int                   `json:"asset_id" db:"asset_id"`
	Quantity        int                   `json:"quantity" db:"quantity"`
	Status          metadata.BorrowStatus `json:"status" db:"status"`
	IsReturned      bool                  `json:"is_returned" db:"is_returned"`
	BorrowDate      time.Time             `json:"borrow_date" db:"borrow_date"`
	ApprovedDate    *time.Time            `json:"approved_date,omitempty" db:"approved_date"`
	ReturnDate      *time.Time            `json:"return_date,omitempty" db:"return_date"`
	ApprovedBy      *int                  `json:"approved_by,omitempty" db:"approved_by"`
	RejectionReason *string               `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ReturnCondition *string               `json:"return_condition,omitempty" db:"return_condition"`
}

// IsOutstanding reports whether the record currently holds stock.
func (b *BorrowRecord) IsOutstanding() bool {
	return b.Status == metadata.BorrowStatusApproved && !b.IsReturned
}

// BorrowRecordView is a record joined with the names shown in listings.
type BorrowRecordView struct {
	BorrowRecord
	AssetName    string  `json:"asset_name" db:"asset_name"`
	AssetSerial  string  `json:"asset_serial_number" db:"asset_serial_number"`
	Username     string  `json:"username" db:"username"`
	ApproverName *string `json:"approved_by_username,omitempty" db:"approver_username"`
}

type BorrowRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type RejectBorrowRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type ReturnBorrowRequest struct {
	Condition string `json:"condition" binding:"max=255"`
}

// BorrowingSummary backs the profile page: a user's records split by
// whether they have been returned.
type BorrowingSummary struct {
	Active        []BorrowRecordView `json:"active"`
	Returned      []BorrowRecordView `json:"returned"`
	ActiveCount   int                `json:"active_count"`
	ReturnedCount int                `json:"returned_count"`
	TotalCount    int                `json:"total_count"`
}

func (b *BorrowRecord) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   b.ID,
		ResourceType: "borrow_record",
	}
}
