package assets

import (
	"context"
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/ledger"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{repository: r}
}

var (
	borrowedSum = goqu.COALESCE(goqu.SUM(goqu.L(
		"CASE WHEN b.status = 'APPROVED' AND NOT b.is_returned THEN b.quantity ELSE 0 END",
	)), 0)
	pendingSum = goqu.COALESCE(goqu.SUM(goqu.L(
		"CASE WHEN b.status = 'PENDING' THEN b.quantity ELSE 0 END",
	)), 0)
	searchAliases = map[string]string{
		"status":      "a.status",
		"category_id": "a.category_id",
	}
)

// detailsQuery joins each asset with its category and the borrowed and
// pending sums over its borrow records.
func (r *AssetsRepository) detailsQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("assets").As("a")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("a.category_id")))).
		LeftJoin(goqu.T("borrow_records").As("b"), goqu.On(goqu.I("b.asset_id").Eq(goqu.I("a.id")))).
		Select(
			goqu.I("a.id").As("asset_id"),
			goqu.I("a.name").As("asset_name"),
			goqu.I("a.serial_number").As("serial_number"),
			goqu.I("a.total_quantity").As("total_quantity"),
			goqu.I("a.status").As("status"),
			goqu.I("a.created_at").As("created_at"),
			goqu.I("c.id").As("category_id"),
			goqu.I("c.name").As("category_name"),
			borrowedSum.As("borrowed_quantity"),
			pendingSum.As("pending_quantity"),
		).
		GroupBy(goqu.I("a.id"), goqu.I("c.id"))
}

func toDetails(records []models.FlatAssetRecord) []models.AssetDetails {
	details := make([]models.AssetDetails, 0, len(records))
	for _, record := range records {
		detail := record.TransformToAssetDetails()
		detail.Stock = ledger.NewStockLevel(record.TotalQuantity, record.BorrowedQuantity, record.PendingQuantity)
		details = append(details, detail)
	}
	return details
}

func (r *AssetsRepository) GetAssetDetails(ctx context.Context, id int) (*models.AssetDetails, error) {
	var records []models.FlatAssetRecord

	query := r.detailsQuery().Where(goqu.Ex{"a.id": id})
	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if len(records) == 0 {
		return nil, custom_error.NewNotFound("asset", id)
	}

	details := toDetails(records)
	return &details[0], nil
}

// GetAssetsBy lists assets matching the conditions, ordered by name.
func (r *AssetsRepository) GetAssetsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.AssetDetails, error) {
	var records []models.FlatAssetRecord

	query := r.detailsQuery().
		Where(conditions.BuildConditions(searchAliases)).
		Order(goqu.I("a.name").Asc(), goqu.I("a.id").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return toDetails(records), nil
}

func searchExpression(search models.AssetSearch) []exp.Expression {
	qb := repository.NewQueryBuilder()
	if search.Status != "" {
		qb.AddCondition("status", search.Status)
	}
	if search.CategoryID > 0 {
		qb.AddCondition("category_id", search.CategoryID)
	}

	expressions := []exp.Expression{qb.BuildConditions(searchAliases)}
	if search.Query != "" {
		pattern := "%" + search.Query + "%"
		expressions = append(expressions, goqu.Or(
			goqu.I("a.name").ILike(pattern),
			goqu.I("a.serial_number").ILike(pattern),
		))
	}
	return expressions
}

func (r *AssetsRepository) SearchAssets(ctx context.Context, search models.AssetSearch, page repository.Page) (*repository.PagedResult[models.AssetDetails], error) {
	where := searchExpression(search)

	var total int
	_, err := r.repository.GoquDBWrapper.
		From(goqu.T("assets").As("a")).
		Select(goqu.COUNT("*")).
		Where(where...).
		Executor().ScanValContext(ctx, &total)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	var records []models.FlatAssetRecord
	query := r.detailsQuery().
		Where(where...).
		Order(goqu.I("a.name").Asc(), goqu.I("a.id").Asc()).
		Offset(page.Offset()).
		Limit(page.Limit())

	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return &repository.PagedResult[models.AssetDetails]{
		Items: toDetails(records),
		Total: total,
		Page:  page,
	}, nil
}

func (r *AssetsRepository) PersistAsset(ctx context.Context, asset *models.Asset) error {
	query := r.repository.GoquDBWrapper.Insert("assets").
		Rows(goqu.Record{
			"name":           asset.Name,
			"serial_number":  asset.SerialNumber,
			"category_id":    asset.CategoryID,
			"total_quantity": asset.TotalQuantity,
			"status":         asset.Status.String(),
		}).
		Returning("id", "created_at")

	found, err := query.Executor().ScanStructContext(ctx, asset)
	if err != nil {
		return custom_error.TranslateDBError(err)
	}
	if !found {
		return fmt.Errorf("insert into assets returned no row")
	}

	return nil
}

func (r *AssetsRepository) SerialNumberExists(ctx context.Context, serialNumber string) (bool, error) {
	var count int

	_, err := r.repository.GoquDBWrapper.From("assets").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"serial_number": serialNumber}).
		Executor().ScanValContext(ctx, &count)
	if err != nil {
		return false, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return count > 0, nil
}

func (r *AssetsRepository) UpdateAsset(ctx context.Context, id int, updates map[string]interface{}) error {
	result, err := r.repository.GoquDBWrapper.Update("assets").
		Set(goqu.Record(updates)).
		Where(goqu.Ex{"id": id}).
		Executor().ExecContext(ctx)
	if err != nil {
		return custom_error.TranslateDBError(err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return custom_error.NewNotFound("asset", id)
	}

	return nil
}

// HasRecords reports whether any borrow, disposal or maintenance record
// references the asset.
func (r *AssetsRepository) HasRecords(ctx context.Context, id int) (bool, error) {
	var exists bool

	query := r.repository.GoquDBWrapper.Select(goqu.L(
		"EXISTS (SELECT 1 FROM borrow_records WHERE asset_id = ?) "+
			"OR EXISTS (SELECT 1 FROM disposal_records WHERE asset_id = ?) "+
			"OR EXISTS (SELECT 1 FROM maintenance_records WHERE asset_id = ?)",
		id, id, id,
	))

	if _, err := query.Executor().ScanValContext(ctx, &exists); err != nil {
		return false, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return exists, nil
}

func (r *AssetsRepository) RemoveAsset(ctx context.Context, id int) (string, error) {
	var serialNumber string

	found, err := r.repository.GoquDBWrapper.Delete("assets").
		Where(goqu.Ex{"id": id}).
		Returning("serial_number").
		Executor().ScanValContext(ctx, &serialNumber)
	if err != nil {
		return "", custom_error.TranslateDBError(err)
	}
	if !found {
		return "", custom_error.NewNotFound("asset", id)
	}

	return serialNumber, nil
}
