package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	borrower = 11
	approver = 2
)

var serviceTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestService(store *memoryStore) *Service {
	service := NewService(store, store, zap.NewNop())
	service.now = func() time.Time { return serviceTime }
	return service
}

func TestBorrowLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(10)

	record, err := service.SubmitRequest(ctx, borrower, assetID, 5)
	require.NoError(t, err)
	assert.Equal(t, metadata.BorrowStatusPending, record.Status)
	assert.Equal(t, serviceTime, record.BorrowDate)

	level, err := service.StockLevel(ctx, assetID)
	require.NoError(t, err)
	assert.Equal(t, 10, level.Available)
	assert.Equal(t, 5, level.Pending)

	_, err = service.Approve(ctx, record.ID, approver)
	require.NoError(t, err)

	level, err = service.StockLevel(ctx, assetID)
	require.NoError(t, err)
	assert.Equal(t, 5, level.Available)
	assert.Equal(t, 5, level.Borrowed)
	assert.Equal(t, metadata.AssetStatusAvailable, store.asset(assetID).Status)

	_, err = service.SubmitRequest(ctx, borrower, assetID, 6)
	var stockErr *custom_error.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	returned, err := service.Return(ctx, record.ID, "good")
	require.NoError(t, err)
	assert.True(t, returned.IsReturned)
	assert.Equal(t, "good", *returned.ReturnCondition)

	level, err = service.StockLevel(ctx, assetID)
	require.NoError(t, err)
	assert.Equal(t, 10, level.Available)
	assert.Equal(t, 0, level.Borrowed)
}

func TestSubmitRequestRejectsBadQuantities(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(3)

	for _, quantity := range []int{0, -2, 4} {
		_, err := service.SubmitRequest(ctx, borrower, assetID, quantity)
		var stockErr *custom_error.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr, "quantity %d", quantity)
	}

	_, err := service.SubmitRequest(ctx, borrower, 999, 1)
	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Empty(t, store.borrows)
}

func TestApproveFullyBorrowsAsset(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(4)

	record, err := service.SubmitRequest(ctx, borrower, assetID, 4)
	require.NoError(t, err)

	approved, err := service.Approve(ctx, record.ID, approver)
	require.NoError(t, err)
	assert.Equal(t, approver, *approved.ApprovedBy)
	assert.Equal(t, serviceTime, *approved.ApprovedDate)
	assert.Equal(t, metadata.AssetStatusBorrowed, store.asset(assetID).Status)

	_, err = service.Return(ctx, record.ID, "")
	require.NoError(t, err)
	assert.Equal(t, metadata.AssetStatusAvailable, store.asset(assetID).Status)
}

func TestApproveRechecksAvailability(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(10)

	first, err := service.SubmitRequest(ctx, borrower, assetID, 6)
	require.NoError(t, err)
	second, err := service.SubmitRequest(ctx, borrower+1, assetID, 6)
	require.NoError(t, err)

	_, err = service.Approve(ctx, first.ID, approver)
	require.NoError(t, err)

	_, err = service.Approve(ctx, second.ID, approver)
	var stockErr *custom_error.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, stockErr.Available)
	assert.Equal(t, metadata.BorrowStatusPending, store.borrow(second.ID).Status)
}

func TestConcurrentApprovalsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(10)

	var ids []int
	for i := 0; i < 5; i++ {
		record, err := service.SubmitRequest(ctx, borrower+i, assetID, 3)
		require.NoError(t, err)
		ids = append(ids, record.ID)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		approved int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := service.Approve(ctx, id, approver); err == nil {
				mu.Lock()
				approved++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 3, approved)

	level, err := service.StockLevel(ctx, assetID)
	require.NoError(t, err)
	assert.Equal(t, 9, level.Borrowed)
	assert.Equal(t, 1, level.Available)
}

func TestDecisionsAreFinal(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(10)

	approved, err := service.SubmitRequest(ctx, borrower, assetID, 2)
	require.NoError(t, err)
	_, err = service.Approve(ctx, approved.ID, approver)
	require.NoError(t, err)

	rejected, err := service.SubmitRequest(ctx, borrower, assetID, 2)
	require.NoError(t, err)
	record, err := service.Reject(ctx, rejected.ID, approver, "duplicate")
	require.NoError(t, err)
	assert.Equal(t, "duplicate", *record.RejectionReason)
	assert.Nil(t, record.ApprovedDate)

	var stateErr *custom_error.InvalidStateError

	_, err = service.Approve(ctx, approved.ID, approver)
	assert.ErrorAs(t, err, &stateErr)
	_, err = service.Reject(ctx, approved.ID, approver, "")
	assert.ErrorAs(t, err, &stateErr)
	_, err = service.Approve(ctx, rejected.ID, approver)
	assert.ErrorAs(t, err, &stateErr)
	_, err = service.Return(ctx, rejected.ID, "")
	assert.ErrorAs(t, err, &stateErr)

	_, err = service.Return(ctx, approved.ID, "")
	require.NoError(t, err)
	_, err = service.Return(ctx, approved.ID, "")
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "RETURNED", stateErr.State)

	_, err = service.Approve(ctx, 404, approver)
	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDispose(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(5)

	record, err := service.SubmitRequest(ctx, borrower, assetID, 2)
	require.NoError(t, err)
	_, err = service.Approve(ctx, record.ID, approver)
	require.NoError(t, err)

	_, err = service.Dispose(ctx, DisposeInput{AssetID: assetID, Quantity: 4, Reason: "damaged", DisposedBy: approver})
	var stockErr *custom_error.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 5, store.asset(assetID).TotalQuantity)

	disposal, err := service.Dispose(ctx, DisposeInput{AssetID: assetID, Quantity: 3, Reason: "damaged", Notes: "water", DisposedBy: approver})
	require.NoError(t, err)
	assert.Equal(t, metadata.DisposalReasonDamaged, disposal.Reason)
	assert.Equal(t, "water", *disposal.Notes)
	assert.Equal(t, 2, store.asset(assetID).TotalQuantity)
	assert.Equal(t, metadata.AssetStatusBorrowed, store.asset(assetID).Status)

	_, err = service.Return(ctx, record.ID, "")
	require.NoError(t, err)
	_, err = service.Dispose(ctx, DisposeInput{AssetID: assetID, Quantity: 2, Reason: "LOST", DisposedBy: approver})
	require.NoError(t, err)
	assert.Equal(t, 0, store.asset(assetID).TotalQuantity)
	assert.Equal(t, metadata.AssetStatusDisposed, store.asset(assetID).Status)
}

func TestDisposeValidation(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(5)

	tests := []struct {
		name  string
		input DisposeInput
		field string
	}{
		{"Zero quantity", DisposeInput{AssetID: assetID, Quantity: 0, Reason: "LOST"}, "quantity"},
		{"Negative quantity", DisposeInput{AssetID: assetID, Quantity: -1, Reason: "LOST"}, "quantity"},
		{"Unknown reason", DisposeInput{AssetID: assetID, Quantity: 1, Reason: "STOLEN_BY_ALIENS"}, "reason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Dispose(ctx, tt.input)
			var validationErr *custom_error.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	assert.Equal(t, 5, store.asset(assetID).TotalQuantity)
	assert.Empty(t, store.disposals)
}

func TestRestock(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(1)

	record, err := service.SubmitRequest(ctx, borrower, assetID, 1)
	require.NoError(t, err)
	_, err = service.Approve(ctx, record.ID, approver)
	require.NoError(t, err)
	assert.Equal(t, metadata.AssetStatusBorrowed, store.asset(assetID).Status)

	asset, level, err := service.Restock(ctx, assetID, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, asset.TotalQuantity)
	assert.Equal(t, 4, level.Available)
	assert.Equal(t, metadata.AssetStatusAvailable, store.asset(assetID).Status)

	_, _, err = service.Restock(ctx, assetID, 0)
	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestMaintenanceLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(2)

	record, err := service.OpenMaintenance(ctx, OpenMaintenanceInput{
		AssetID:     assetID,
		Type:        "corrective",
		Description: "lamp flickers",
		RequestedBy: approver,
	})
	require.NoError(t, err)
	assert.Equal(t, metadata.MaintenanceStatusPending, record.Status)
	assert.Equal(t, metadata.MaintenanceTypeCorrective, record.Type)
	assert.Equal(t, metadata.AssetStatusRepair, store.asset(assetID).Status)

	record, err = service.TransitionMaintenance(ctx, record.ID, MaintenanceTransition{Action: "start", ActorID: approver})
	require.NoError(t, err)
	assert.Equal(t, metadata.MaintenanceStatusInProgress, record.Status)
	assert.Equal(t, approver, *record.AssignedTo)
	assert.Equal(t, metadata.AssetStatusRepair, store.asset(assetID).Status)

	cost := decimal.RequireFromString("49.99")
	record, err = service.TransitionMaintenance(ctx, record.ID, MaintenanceTransition{Action: "complete", Cost: &cost, Notes: "new lamp"})
	require.NoError(t, err)
	assert.Equal(t, metadata.MaintenanceStatusCompleted, record.Status)
	assert.Equal(t, serviceTime, *record.CompletedDate)
	assert.Equal(t, metadata.AssetStatusAvailable, store.asset(assetID).Status)

	_, err = service.TransitionMaintenance(ctx, record.ID, MaintenanceTransition{Action: "cancel"})
	var stateErr *custom_error.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestMaintenanceCancelAndOverlap(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(2)

	first, err := service.OpenMaintenance(ctx, OpenMaintenanceInput{AssetID: assetID, Type: "INSPECTION", Description: "yearly"})
	require.NoError(t, err)
	second, err := service.OpenMaintenance(ctx, OpenMaintenanceInput{AssetID: assetID, Type: "UPGRADE", Description: "firmware"})
	require.NoError(t, err)

	cancelled, err := service.TransitionMaintenance(ctx, first.ID, MaintenanceTransition{Action: "cancel", Notes: "merged into upgrade"})
	require.NoError(t, err)
	assert.Equal(t, metadata.MaintenanceStatusCancelled, cancelled.Status)
	assert.Equal(t, "merged into upgrade", *cancelled.Notes)
	assert.Equal(t, metadata.AssetStatusRepair, store.asset(assetID).Status)

	_, err = service.TransitionMaintenance(ctx, second.ID, MaintenanceTransition{Action: "cancel", Reason: "vendor delay"})
	require.NoError(t, err)
	assert.Equal(t, metadata.AssetStatusAvailable, store.asset(assetID).Status)
}

func TestMaintenanceValidation(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(2)

	var validationErr *custom_error.ValidationError

	_, err := service.OpenMaintenance(ctx, OpenMaintenanceInput{AssetID: assetID, Type: "paint", Description: "x"})
	assert.ErrorAs(t, err, &validationErr)
	_, err = service.OpenMaintenance(ctx, OpenMaintenanceInput{AssetID: assetID, Type: "UPGRADE", Description: "  "})
	assert.ErrorAs(t, err, &validationErr)
	assert.Empty(t, store.maintenance)

	record, err := service.OpenMaintenance(ctx, OpenMaintenanceInput{AssetID: assetID, Type: "UPGRADE", Description: "ram"})
	require.NoError(t, err)

	_, err = service.TransitionMaintenance(ctx, record.ID, MaintenanceTransition{Action: "explode"})
	assert.ErrorAs(t, err, &validationErr)

	negative := decimal.NewFromInt(-5)
	_, err = service.TransitionMaintenance(ctx, record.ID, MaintenanceTransition{Action: "complete", Cost: &negative})
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, metadata.MaintenanceStatusPending, store.maintenance[record.ID].Status)
}

func TestFailedWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := newTestService(store)
	assetID := store.addAsset(5)

	store.failOn["UpdateAssetTotal"] = true

	_, err := service.Dispose(ctx, DisposeInput{AssetID: assetID, Quantity: 1, Reason: "OBSOLETE"})
	assert.ErrorIs(t, err, errStoreFailure)
	assert.Empty(t, store.disposals)
	assert.Equal(t, 5, store.asset(assetID).TotalQuantity)

	record, err := service.SubmitRequest(ctx, borrower, assetID, 2)
	require.NoError(t, err)

	store.failOn["LockAsset"] = true
	_, err = service.Approve(ctx, record.ID, approver)
	assert.ErrorIs(t, err, errStoreFailure)
	assert.Equal(t, metadata.BorrowStatusPending, store.borrow(record.ID).Status)
}
