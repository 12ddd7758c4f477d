package ledger

import (
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
)

// BorrowedQuantity sums the quantity held by approved records that have not
// been returned.
func BorrowedQuantity(records []models.BorrowRecord) int {
	total := 0
	for _, record := range records {
		if record.IsOutstanding() {
			total += record.Quantity
		}
	}
	return total
}

// PendingQuantity sums the quantity of requests still awaiting a decision.
func PendingQuantity(records []models.BorrowRecord) int {
	total := 0
	for _, record := range records {
		if record.Status == metadata.BorrowStatusPending {
			total += record.Quantity
		}
	}
	return total
}

// AvailableQuantity is the total minus what is currently borrowed. Pending
// requests do not reduce it; only approval does.
func AvailableQuantity(totalQuantity int, records []models.BorrowRecord) int {
	return totalQuantity - BorrowedQuantity(records)
}

func IsStockAvailable(totalQuantity int, records []models.BorrowRecord) bool {
	return AvailableQuantity(totalQuantity, records) > 0
}

// Compute returns the full stock picture for one asset's record set.
func Compute(totalQuantity int, records []models.BorrowRecord) models.StockLevel {
	return NewStockLevel(totalQuantity, BorrowedQuantity(records), PendingQuantity(records))
}

// NewStockLevel builds a StockLevel from sums computed elsewhere, e.g. by an
// aggregate query over many assets.
func NewStockLevel(totalQuantity, borrowed, pending int) models.StockLevel {
	available := totalQuantity - borrowed
	return models.StockLevel{
		Total:            totalQuantity,
		Borrowed:         borrowed,
		Pending:          pending,
		Available:        available,
		IsStockAvailable: available > 0,
	}
}

// DeriveAssetStatus recomputes the cached status column. A spent asset is
// DISPOSED, an asset with open maintenance is in REPAIR, an asset with
// nothing left to lend is BORROWED and anything else is AVAILABLE.
func DeriveAssetStatus(totalQuantity, available int, maintenanceOpen bool) metadata.AssetStatus {
	switch {
	case totalQuantity <= 0:
		return metadata.AssetStatusDisposed
	case maintenanceOpen:
		return metadata.AssetStatusRepair
	case available <= 0:
		return metadata.AssetStatusBorrowed
	default:
		return metadata.AssetStatusAvailable
	}
}
