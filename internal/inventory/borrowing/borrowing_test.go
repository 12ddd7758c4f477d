package borrowing

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/auditlog"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/roles"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) record(args mock.Arguments) (*models.BorrowRecord, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BorrowRecord), args.Error(1)
}

func (m *MockLedger) SubmitRequest(ctx context.Context, userID, assetID, quantity int) (*models.BorrowRecord, error) {
	return m.record(m.Called(ctx, userID, assetID, quantity))
}

func (m *MockLedger) Approve(ctx context.Context, recordID, approverID int) (*models.BorrowRecord, error) {
	return m.record(m.Called(ctx, recordID, approverID))
}

func (m *MockLedger) Reject(ctx context.Context, recordID, approverID int, reason string) (*models.BorrowRecord, error) {
	return m.record(m.Called(ctx, recordID, approverID, reason))
}

func (m *MockLedger) Return(ctx context.Context, recordID int, condition string) (*models.BorrowRecord, error) {
	return m.record(m.Called(ctx, recordID, condition))
}

type MockViews struct {
	mock.Mock
}

func (m *MockViews) GetPendingRequests(ctx context.Context) ([]models.BorrowRecordView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BorrowRecordView), args.Error(1)
}

func (m *MockViews) GetOutstandingRecords(ctx context.Context) ([]models.BorrowRecordView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BorrowRecordView), args.Error(1)
}

func (m *MockViews) GetUserRecords(ctx context.Context, userID int) ([]models.BorrowRecordView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.BorrowRecordView), args.Error(1)
}

func (m *MockViews) GetRecordView(ctx context.Context, id int) (*models.BorrowRecordView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BorrowRecordView), args.Error(1)
}

type noopAuditLog struct{}

func (noopAuditLog) LogAs(int, string, interface{}, auditlog.Auditable) {}

func newRouter(ledger *MockLedger, views *MockViews, userID int, role roles.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("", func(c *gin.Context) { security.SetIdentity(c, userID, role) })
	NewBorrowingHandler(NewBorrowingService(ledger, views), noopAuditLog{}).RegisterRoutes(group)
	return router
}

func view(id int, status metadata.BorrowStatus, returned bool) models.BorrowRecordView {
	return models.BorrowRecordView{BorrowRecord: models.BorrowRecord{ID: id, Status: status, IsReturned: returned}}
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]models.BorrowRecordView{
		view(1, metadata.BorrowStatusPending, false),
		view(2, metadata.BorrowStatusApproved, false),
		view(3, metadata.BorrowStatusApproved, true),
		view(4, metadata.BorrowStatusRejected, false),
	})

	assert.Equal(t, 2, summary.ActiveCount)
	assert.Equal(t, 1, summary.ReturnedCount)
	assert.Equal(t, 4, summary.TotalCount)
	assert.Equal(t, 1, summary.Active[0].ID)
	assert.Equal(t, 3, summary.Returned[0].ID)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.NotNil(t, summary.Active)
	assert.NotNil(t, summary.Returned)
	assert.Zero(t, summary.TotalCount)
}

func TestBorrowAssetUsesCallerIdentity(t *testing.T) {
	ledger, views := new(MockLedger), new(MockViews)
	ledger.On("SubmitRequest", mock.Anything, 11, 3, 2).
		Return(&models.BorrowRecord{ID: 5, UserID: 11, AssetID: 3, Quantity: 2, Status: metadata.BorrowStatusPending}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assets/3/borrow", bytes.NewBufferString(`{"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(ledger, views, 11, roles.User).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
	ledger.AssertExpectations(t)
}

func TestBorrowAssetInsufficientStock(t *testing.T) {
	ledger, views := new(MockLedger), new(MockViews)
	ledger.On("SubmitRequest", mock.Anything, 11, 3, 20).
		Return(nil, &custom_error.InsufficientStockError{AssetID: 3, Requested: 20, Available: 4})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assets/3/borrow", bytes.NewBufferString(`{"quantity":20}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(ledger, views, 11, roles.User).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_stock")
}

func TestStaffRoutesRequireStaff(t *testing.T) {
	ledger, views := new(MockLedger), new(MockViews)
	router := newRouter(ledger, views, 11, roles.User)

	for _, path := range []string{"/staff/requests/1/approve", "/staff/requests/1/reject", "/staff/returns/1"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
	ledger.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveRequestInvalidState(t *testing.T) {
	ledger, views := new(MockLedger), new(MockViews)
	ledger.On("Approve", mock.Anything, 8, 2).
		Return(nil, &custom_error.InvalidStateError{Resource: "borrow record", ID: 8, State: "REJECTED", Action: "approve"})

	w := httptest.NewRecorder()
	newRouter(ledger, views, 2, roles.Staff).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/staff/requests/8/approve", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")
}

func TestRejectRequestWithoutBody(t *testing.T) {
	ledger, views := new(MockLedger), new(MockViews)
	ledger.On("Reject", mock.Anything, 8, 2, "").
		Return(&models.BorrowRecord{ID: 8, Status: metadata.BorrowStatusRejected}, nil)

	w := httptest.NewRecorder()
	newRouter(ledger, views, 2, roles.Staff).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/staff/requests/8/reject", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	ledger.AssertExpectations(t)
}

func TestReturnRecordPassesCondition(t *testing.T) {
	ledger, views := new(MockLedger), new(MockViews)
	ledger.On("Return", mock.Anything, 9, "scratched").
		Return(&models.BorrowRecord{ID: 9, Status: metadata.BorrowStatusApproved, IsReturned: true}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/staff/returns/9", bytes.NewBufferString(`{"condition":"scratched"}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(ledger, views, 2, roles.Staff).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_returned":true`)
}

func TestGetMyBorrowings(t *testing.T) {
	ledger, views := new(MockLedger), new(MockViews)
	views.On("GetUserRecords", mock.Anything, 11).Return([]models.BorrowRecordView{
		view(1, metadata.BorrowStatusApproved, false),
		view(2, metadata.BorrowStatusApproved, true),
	}, nil)

	w := httptest.NewRecorder()
	newRouter(ledger, views, 11, roles.User).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/borrowings/mine", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active_count":1`)
	assert.Contains(t, w.Body.String(), `"returned_count":1`)
}

func TestGetPendingRequestsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM "borrow_records" AS "b" INNER JOIN "assets" AS "a" .* LEFT JOIN "users" AS "ap" .* WHERE \("b"\."status" = 'PENDING'\) ORDER BY "b"\."borrow_date" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "asset_id", "quantity", "status", "is_returned", "asset_name", "username"}).
			AddRow(1, 4, 2, 3, "PENDING", false, "TV", "alice"))

	records, err := NewRepository(repository.NewRepository(db)).GetPendingRequests(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "TV", records[0].AssetName)
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, 3, records[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecordViewNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM "borrow_records"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewRepository(repository.NewRepository(db)).GetRecordView(context.Background(), 77)

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
