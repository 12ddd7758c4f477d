package ledger

import (
	"strings"
	"time"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
	"github.com/shopspring/decimal"
)

const (
	borrowResource      = "borrow record"
	maintenanceResource = "maintenance record"
)

func invalidBorrowState(record *models.BorrowRecord, action string) error {
	state := record.Status.String()
	if record.IsReturned {
		state = "RETURNED"
	}
	return &custom_error.InvalidStateError{Resource: borrowResource, ID: record.ID, State: state, Action: action}
}

func approveRecord(record *models.BorrowRecord, approverID int, at time.Time) error {
	if record.Status != metadata.BorrowStatusPending {
		return invalidBorrowState(record, "approve")
	}
	record.Status = metadata.BorrowStatusApproved
	record.ApprovedBy = &approverID
	record.ApprovedDate = &at
	return nil
}

func rejectRecord(record *models.BorrowRecord, approverID int, reason string) error {
	if record.Status != metadata.BorrowStatusPending {
		return invalidBorrowState(record, "reject")
	}
	record.Status = metadata.BorrowStatusRejected
	record.ApprovedBy = &approverID
	record.RejectionReason = optionalText(reason)
	return nil
}

func returnRecord(record *models.BorrowRecord, condition string, at time.Time) error {
	if !record.IsOutstanding() {
		return invalidBorrowState(record, "return")
	}
	record.IsReturned = true
	record.ReturnDate = &at
	record.ReturnCondition = optionalText(condition)
	return nil
}

func closedMaintenance(record *models.MaintenanceRecord, action metadata.MaintenanceAction) error {
	if record.Status.IsOpen() {
		return nil
	}
	return &custom_error.InvalidStateError{
		Resource: maintenanceResource,
		ID:       record.ID,
		State:    record.Status.String(),
		Action:   string(action),
	}
}

func startMaintenance(record *models.MaintenanceRecord, assigneeID int, at time.Time) error {
	if err := closedMaintenance(record, metadata.MaintenanceActionStart); err != nil {
		return err
	}
	if record.Status != metadata.MaintenanceStatusPending {
		return &custom_error.InvalidStateError{
			Resource: maintenanceResource,
			ID:       record.ID,
			State:    record.Status.String(),
			Action:   string(metadata.MaintenanceActionStart),
		}
	}
	record.Status = metadata.MaintenanceStatusInProgress
	record.AssignedTo = &assigneeID
	record.StartedDate = &at
	return nil
}

func completeMaintenance(record *models.MaintenanceRecord, cost *decimal.Decimal, notes string, at time.Time) error {
	if err := closedMaintenance(record, metadata.MaintenanceActionComplete); err != nil {
		return err
	}
	if cost != nil && cost.IsNegative() {
		return custom_error.NewValidation("cost", "must not be negative")
	}
	record.Status = metadata.MaintenanceStatusCompleted
	record.CompletedDate = &at
	if cost != nil {
		record.Cost = decimal.NewNullDecimal(*cost)
	}
	if text := optionalText(notes); text != nil {
		record.Notes = text
	}
	return nil
}

func cancelMaintenance(record *models.MaintenanceRecord, reason string, at time.Time) error {
	if err := closedMaintenance(record, metadata.MaintenanceActionCancel); err != nil {
		return err
	}
	record.Status = metadata.MaintenanceStatusCancelled
	record.CompletedDate = &at
	record.Notes = optionalText(reason)
	return nil
}

func optionalText(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
