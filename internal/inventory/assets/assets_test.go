package assets

import (
	"bytes"
	"context"
	"errors"
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

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAssetDetails(ctx context.Context, id int) (*models.AssetDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetDetails), args.Error(1)
}

func (m *MockRepository) GetAssetsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.AssetDetails, error) {
	args := m.Called(ctx, conditions)
	return args.Get(0).([]models.AssetDetails), args.Error(1)
}

func (m *MockRepository) SearchAssets(ctx context.Context, search models.AssetSearch, page repository.Page) (*repository.PagedResult[models.AssetDetails], error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PagedResult[models.AssetDetails]), args.Error(1)
}

func (m *MockRepository) PersistAsset(ctx context.Context, asset *models.Asset) error {
	args := m.Called(ctx, asset)
	if args.Error(0) == nil {
		asset.ID = 42
	}
	return args.Error(0)
}

func (m *MockRepository) SerialNumberExists(ctx context.Context, serialNumber string) (bool, error) {
	args := m.Called(ctx, serialNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) UpdateAsset(ctx context.Context, id int, updates map[string]interface{}) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *MockRepository) HasRecords(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) RemoveAsset(ctx context.Context, id int) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockCategories struct {
	mock.Mock
}

func (m *MockCategories) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

type MockRestocker struct {
	mock.Mock
}

func (m *MockRestocker) Restock(ctx context.Context, assetID, quantity int) (*models.Asset, models.StockLevel, error) {
	args := m.Called(ctx, assetID, quantity)
	if args.Get(0) == nil {
		return nil, models.StockLevel{}, args.Error(2)
	}
	return args.Get(0).(*models.Asset), args.Get(1).(models.StockLevel), args.Error(2)
}

type noopAuditLog struct{}

func (noopAuditLog) LogAs(int, string, interface{}, auditlog.Auditable) {}

func newTestService() (*AssetService, *MockRepository, *MockCategories, *MockRestocker) {
	repo := new(MockRepository)
	categories := new(MockCategories)
	restocker := new(MockRestocker)
	return NewAssetService(repo, categories, restocker), repo, categories, restocker
}

func newRouter(service *AssetService, role roles.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("", func(c *gin.Context) { security.SetIdentity(c, 7, role) })
	NewAssetHandler(service, noopAuditLog{}).RegisterRoutes(group)
	return router
}

func intPtr(v int) *int { return &v }

func TestCreateAssetGeneratesSerialNumber(t *testing.T) {
	service, repo, categories, _ := newTestService()
	ctx := context.Background()

	serials := []string{"ELE-00000001", "ELE-00000002"}
	service.newSerial = func(categoryName string) string {
		assert.Equal(t, "Electronics", categoryName)
		next := serials[0]
		serials = serials[1:]
		return next
	}

	categories.On("GetCategory", ctx, 3).Return(&models.Category{ID: 3, Name: "Electronics"}, nil)
	repo.On("SerialNumberExists", ctx, "ELE-00000001").Return(true, nil)
	repo.On("SerialNumberExists", ctx, "ELE-00000002").Return(false, nil)
	repo.On("PersistAsset", ctx, mock.MatchedBy(func(a *models.Asset) bool {
		return a.SerialNumber == "ELE-00000002" && a.TotalQuantity == 4 && a.Status == metadata.AssetStatusAvailable
	})).Return(nil)

	asset, err := service.CreateAsset(ctx, models.AssetRequest{Name: " Projector ", CategoryID: 3, TotalQuantity: intPtr(4)})

	require.NoError(t, err)
	assert.Equal(t, 42, asset.ID)
	assert.Equal(t, "Projector", asset.Name)
	assert.Equal(t, 4, asset.Stock.Available)
	assert.Equal(t, "Electronics", asset.Category.Name)
	repo.AssertExpectations(t)
}

func TestCreateAssetDefaults(t *testing.T) {
	service, repo, categories, _ := newTestService()
	ctx := context.Background()
	serial := "CUSTOM-1"

	categories.On("GetCategory", ctx, 1).Return(&models.Category{ID: 1, Name: "Furniture"}, nil)
	repo.On("PersistAsset", ctx, mock.MatchedBy(func(a *models.Asset) bool {
		return a.SerialNumber == "CUSTOM-1" && a.TotalQuantity == 1
	})).Return(nil)

	asset, err := service.CreateAsset(ctx, models.AssetRequest{Name: "Chair", CategoryID: 1, SerialNumber: &serial})

	require.NoError(t, err)
	assert.Equal(t, 1, asset.TotalQuantity)
	repo.AssertNotCalled(t, "SerialNumberExists", mock.Anything, mock.Anything)
}

func TestCreateAssetWithoutUnitsIsDisposed(t *testing.T) {
	service, repo, categories, _ := newTestService()
	ctx := context.Background()
	service.newSerial = func(string) string { return "AST-1" }

	categories.On("GetCategory", ctx, 1).Return(&models.Category{ID: 1, Name: "Misc"}, nil)
	repo.On("SerialNumberExists", ctx, "AST-1").Return(false, nil)
	repo.On("PersistAsset", ctx, mock.Anything).Return(nil)

	asset, err := service.CreateAsset(ctx, models.AssetRequest{Name: "Old", CategoryID: 1, TotalQuantity: intPtr(0)})

	require.NoError(t, err)
	assert.Equal(t, metadata.AssetStatusDisposed, asset.Status)
}

func TestCreateAssetValidation(t *testing.T) {
	service, _, categories, _ := newTestService()
	ctx := context.Background()

	_, err := service.CreateAsset(ctx, models.AssetRequest{Name: "  ", CategoryID: 1})
	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = service.CreateAsset(ctx, models.AssetRequest{Name: "X", CategoryID: 1, TotalQuantity: intPtr(-1)})
	assert.ErrorAs(t, err, &validationErr)

	categories.On("GetCategory", ctx, 9).Return(nil, custom_error.NewNotFound("category", 9))
	_, err = service.CreateAsset(ctx, models.AssetRequest{Name: "X", CategoryID: 9})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "category_id", validationErr.Field)
}

func TestCreateAssetGivesUpOnSerialCollisions(t *testing.T) {
	service, repo, categories, _ := newTestService()
	ctx := context.Background()
	service.newSerial = func(string) string { return "AST-SAME" }

	categories.On("GetCategory", ctx, 1).Return(&models.Category{ID: 1, Name: "Misc"}, nil)
	repo.On("SerialNumberExists", ctx, "AST-SAME").Return(true, nil)

	_, err := service.CreateAsset(ctx, models.AssetRequest{Name: "X", CategoryID: 1})

	assert.ErrorContains(t, err, "unique serial number")
	repo.AssertNumberOfCalls(t, "SerialNumberExists", serialAttempts)
}

func TestUpdateAssetRequiresChanges(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.UpdateAsset(context.Background(), models.PatchAssetRequest{ID: 1})

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRemoveAssetWithHistory(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()
	repo.On("HasRecords", ctx, 5).Return(true, nil)

	_, err := service.RemoveAsset(ctx, 5)

	var inUse *custom_error.ForeignKeyViolationError
	assert.ErrorAs(t, err, &inUse)
	repo.AssertNotCalled(t, "RemoveAsset", mock.Anything, mock.Anything)
}

func TestSearchRejectsUnknownStatus(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Search(context.Background(), models.AssetSearch{Status: "lost"})

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCatalogHandler(t *testing.T) {
	service, repo, _, _ := newTestService()
	repo.On("GetAssetsBy", mock.Anything, mock.MatchedBy(func(qb repository.QueryBuilder) bool {
		conditions := qb.BuildConditions(nil)
		return conditions["status"] == "AVAILABLE" && conditions["category_id"] == 2
	})).Return([]models.AssetDetails{{Asset: models.Asset{ID: 1, Name: "TV"}}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/assets?category_id=2", nil)
	newRouter(service, roles.User).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"TV"`)
}

func TestCreateAssetHandlerRequiresStaff(t *testing.T) {
	service, _, _, _ := newTestService()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assets", bytes.NewBufferString(`{"name":"TV","category_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(service, roles.User).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetAssetHandlerNotFound(t *testing.T) {
	service, repo, _, _ := newTestService()
	repo.On("GetAssetDetails", mock.Anything, 99).Return(nil, custom_error.NewNotFound("asset", 99))

	w := httptest.NewRecorder()
	newRouter(service, roles.User).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestRestockHandler(t *testing.T) {
	service, _, _, restocker := newTestService()
	restocker.On("Restock", mock.Anything, 3, 5).Return(
		&models.Asset{ID: 3, TotalQuantity: 15, Status: metadata.AssetStatusAvailable},
		models.StockLevel{Total: 15, Available: 15, IsStockAvailable: true},
		nil,
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assets/3/restock", bytes.NewBufferString(`{"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(service, roles.Staff).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available_quantity":15`)
}

func TestRemoveAssetHandlerInUse(t *testing.T) {
	service, repo, _, _ := newTestService()
	repo.On("HasRecords", mock.Anything, 4).Return(true, nil)

	w := httptest.NewRecorder()
	newRouter(service, roles.Admin).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/assets/4", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "in_use")
}

func TestRestockHandlerPropagatesErrors(t *testing.T) {
	service, _, _, restocker := newTestService()
	restocker.On("Restock", mock.Anything, 3, 1).Return(nil, nil, errors.New("db down"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assets/3/restock", bytes.NewBufferString(`{"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(service, roles.Staff).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
