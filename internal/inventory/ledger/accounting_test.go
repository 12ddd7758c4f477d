package ledger

import (
	"testing"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/stretchr/testify/assert"
)

func borrowRecord(quantity int, status metadata.BorrowStatus, returned bool) models.BorrowRecord {
	return models.BorrowRecord{Quantity: quantity, Status: status, IsReturned: returned}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		records  []models.BorrowRecord
		expected models.StockLevel
	}{
		{
			name:     "No records",
			total:    10,
			expected: models.StockLevel{Total: 10, Available: 10, IsStockAvailable: true},
		},
		{
			name:  "Pending does not reduce availability",
			total: 10,
			records: []models.BorrowRecord{
				borrowRecord(5, metadata.BorrowStatusPending, false),
			},
			expected: models.StockLevel{Total: 10, Pending: 5, Available: 10, IsStockAvailable: true},
		},
		{
			name:  "Approved and outstanding",
			total: 10,
			records: []models.BorrowRecord{
				borrowRecord(4, metadata.BorrowStatusApproved, false),
				borrowRecord(3, metadata.BorrowStatusApproved, false),
				borrowRecord(2, metadata.BorrowStatusPending, false),
			},
			expected: models.StockLevel{Total: 10, Borrowed: 7, Pending: 2, Available: 3, IsStockAvailable: true},
		},
		{
			name:  "Returned and rejected records are ignored",
			total: 10,
			records: []models.BorrowRecord{
				borrowRecord(4, metadata.BorrowStatusApproved, true),
				borrowRecord(6, metadata.BorrowStatusRejected, false),
			},
			expected: models.StockLevel{Total: 10, Available: 10, IsStockAvailable: true},
		},
		{
			name:  "Fully borrowed",
			total: 3,
			records: []models.BorrowRecord{
				borrowRecord(3, metadata.BorrowStatusApproved, false),
			},
			expected: models.StockLevel{Total: 3, Borrowed: 3, Available: 0, IsStockAvailable: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := Compute(tt.total, tt.records)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.expected.Available, AvailableQuantity(tt.total, tt.records))
			assert.Equal(t, tt.expected.IsStockAvailable, IsStockAvailable(tt.total, tt.records))
		})
	}
}

func TestDeriveAssetStatus(t *testing.T) {
	tests := []struct {
		name            string
		total           int
		available       int
		maintenanceOpen bool
		expected        metadata.AssetStatus
	}{
		{"Available", 10, 4, false, metadata.AssetStatusAvailable},
		{"Everything lent out", 10, 0, false, metadata.AssetStatusBorrowed},
		{"Open maintenance wins over borrowed", 10, 0, true, metadata.AssetStatusRepair},
		{"Open maintenance", 10, 10, true, metadata.AssetStatusRepair},
		{"Nothing left", 0, 0, false, metadata.AssetStatusDisposed},
		{"Nothing left wins over maintenance", 0, 0, true, metadata.AssetStatusDisposed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveAssetStatus(tt.total, tt.available, tt.maintenanceOpen))
		})
	}
}
