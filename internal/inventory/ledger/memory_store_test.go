package ledger

import (
	"context"
	"errors"
	"sync"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var errStoreFailure = errors.New("store failure")

// memoryStore is an in-memory Transactor and Repository. Transact holds a
// single mutex for the whole callback, which gives the same serialisation
// the row locks give in Postgres, and restores a snapshot on error.
type memoryStore struct {
	mu          sync.Mutex
	nextID      int
	assets      map[int]models.Asset
	borrows     map[int]models.BorrowRecord
	disposals   map[int]models.DisposalRecord
	maintenance map[int]models.MaintenanceRecord
	failOn      map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		assets:      map[int]models.Asset{},
		borrows:     map[int]models.BorrowRecord{},
		disposals:   map[int]models.DisposalRecord{},
		maintenance: map[int]models.MaintenanceRecord{},
		failOn:      map[string]bool{},
	}
}

func (m *memoryStore) addAsset(total int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.assets[m.nextID] = models.Asset{
		ID:            m.nextID,
		Name:          "projector",
		SerialNumber:  "PRJ-0001",
		CategoryID:    1,
		TotalQuantity: total,
		Status:        metadata.AssetStatusAvailable,
	}
	return m.nextID
}

func (m *memoryStore) asset(id int) models.Asset {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assets[id]
}

func (m *memoryStore) borrow(id int) models.BorrowRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.borrows[id]
}

func (m *memoryStore) Transact(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.clone()
	if err := fn(nil); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

func (m *memoryStore) clone() *memoryStore {
	c := newMemoryStore()
	c.nextID = m.nextID
	for k, v := range m.assets {
		c.assets[k] = v
	}
	for k, v := range m.borrows {
		c.borrows[k] = v
	}
	for k, v := range m.disposals {
		c.disposals[k] = v
	}
	for k, v := range m.maintenance {
		c.maintenance[k] = v
	}
	return c
}

func (m *memoryStore) restore(s *memoryStore) {
	m.nextID = s.nextID
	m.assets = s.assets
	m.borrows = s.borrows
	m.disposals = s.disposals
	m.maintenance = s.maintenance
}

func (m *memoryStore) fail(method string) error {
	if m.failOn[method] {
		return errStoreFailure
	}
	return nil
}

func (m *memoryStore) GetAsset(ctx context.Context, tx *goqu.TxDatabase, assetID int) (*models.Asset, error) {
	asset, ok := m.assets[assetID]
	if !ok {
		return nil, custom_error.NewNotFound("asset", assetID)
	}
	return &asset, nil
}

func (m *memoryStore) LockAsset(ctx context.Context, tx *goqu.TxDatabase, assetID int) (*models.Asset, error) {
	if err := m.fail("LockAsset"); err != nil {
		return nil, err
	}
	return m.GetAsset(ctx, tx, assetID)
}

func (m *memoryStore) UpdateAssetStatus(ctx context.Context, tx *goqu.TxDatabase, assetID int, status metadata.AssetStatus) error {
	asset := m.assets[assetID]
	asset.Status = status
	m.assets[assetID] = asset
	return nil
}

func (m *memoryStore) UpdateAssetTotal(ctx context.Context, tx *goqu.TxDatabase, assetID int, totalQuantity int) error {
	if err := m.fail("UpdateAssetTotal"); err != nil {
		return err
	}
	asset := m.assets[assetID]
	asset.TotalQuantity = totalQuantity
	m.assets[assetID] = asset
	return nil
}

func (m *memoryStore) GetOpenBorrowRecords(ctx context.Context, tx *goqu.TxDatabase, assetID int) ([]models.BorrowRecord, error) {
	var records []models.BorrowRecord
	for _, record := range m.borrows {
		if record.AssetID != assetID {
			continue
		}
		if record.Status == metadata.BorrowStatusPending || record.IsOutstanding() {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *memoryStore) LockBorrowRecord(ctx context.Context, tx *goqu.TxDatabase, recordID int) (*models.BorrowRecord, error) {
	record, ok := m.borrows[recordID]
	if !ok {
		return nil, custom_error.NewNotFound(borrowResource, recordID)
	}
	return &record, nil
}

func (m *memoryStore) InsertBorrowRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.BorrowRecord) error {
	m.nextID++
	record.ID = m.nextID
	m.borrows[record.ID] = *record
	return nil
}

func (m *memoryStore) UpdateBorrowRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.BorrowRecord) error {
	m.borrows[record.ID] = *record
	return nil
}

func (m *memoryStore) InsertDisposalRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.DisposalRecord) error {
	m.nextID++
	record.ID = m.nextID
	m.disposals[record.ID] = *record
	return nil
}

func (m *memoryStore) CountOpenMaintenance(ctx context.Context, tx *goqu.TxDatabase, assetID int) (int, error) {
	count := 0
	for _, record := range m.maintenance {
		if record.AssetID == assetID && record.Status.IsOpen() {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) LockMaintenanceRecord(ctx context.Context, tx *goqu.TxDatabase, recordID int) (*models.MaintenanceRecord, error) {
	record, ok := m.maintenance[recordID]
	if !ok {
		return nil, custom_error.NewNotFound(maintenanceResource, recordID)
	}
	return &record, nil
}

func (m *memoryStore) InsertMaintenanceRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.MaintenanceRecord) error {
	m.nextID++
	record.ID = m.nextID
	m.maintenance[record.ID] = *record
	return nil
}

func (m *memoryStore) UpdateMaintenanceRecord(ctx context.Context, tx *goqu.TxDatabase, record *models.MaintenanceRecord) error {
	m.maintenance[record.ID] = *record
	return nil
}
