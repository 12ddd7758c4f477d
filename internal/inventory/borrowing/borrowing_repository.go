package borrowing

import (
	"context"
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type BorrowingRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *BorrowingRepository {
	return &BorrowingRepository{repository: r}
}

func (r *BorrowingRepository) viewQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("borrow_records").As("b")).
		Join(goqu.T("assets").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("b.asset_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.user_id")))).
		LeftJoin(goqu.T("users").As("ap"), goqu.On(goqu.I("ap.id").Eq(goqu.I("b.approved_by")))).
		Select(
			goqu.I("b.id").As("id"),
			goqu.I("b.user_id").As("user_id"),
			goqu.I("b.asset_id").As("asset_id"),
			goqu.I("b.quantity").As("quantity"),
			goqu.I("b.status").As("status"),
			goqu.I("b.is_returned").As("is_returned"),
			goqu.I("b.borrow_date").As("borrow_date"),
			goqu.I("b.approved_date").As("approved_date"),
			goqu.I("b.return_date").As("return_date"),
			goqu.I("b.approved_by").As("approved_by"),
			goqu.I("b.rejection_reason").As("rejection_reason"),
			goqu.I("b.return_condition").As("return_condition"),
			goqu.I("a.name").As("asset_name"),
			goqu.I("a.serial_number").As("asset_serial_number"),
			goqu.I("u.username").As("username"),
			goqu.I("ap.username").As("approver_username"),
		)
}

func (r *BorrowingRepository) findViews(ctx context.Context, where exp.Expression, order exp.OrderedExpression) ([]models.BorrowRecordView, error) {
	var records []models.BorrowRecordView

	query := r.viewQuery().Where(where).Order(order, goqu.I("b.id").Asc())
	if err := query.Executor().ScanStructsContext(ctx, &records); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return records, nil
}

// GetPendingRequests lists requests waiting for a decision, oldest first.
func (r *BorrowingRepository) GetPendingRequests(ctx context.Context) ([]models.BorrowRecordView, error) {
	return r.findViews(ctx,
		goqu.Ex{"b.status": metadata.BorrowStatusPending.String()},
		goqu.I("b.borrow_date").Asc(),
	)
}

// GetOutstandingRecords lists approved records whose units are still out.
func (r *BorrowingRepository) GetOutstandingRecords(ctx context.Context) ([]models.BorrowRecordView, error) {
	return r.findViews(ctx,
		goqu.Ex{"b.status": metadata.BorrowStatusApproved.String(), "b.is_returned": false},
		goqu.I("b.approved_date").Asc(),
	)
}

func (r *BorrowingRepository) GetUserRecords(ctx context.Context, userID int) ([]models.BorrowRecordView, error) {
	return r.findViews(ctx,
		goqu.Ex{"b.user_id": userID},
		goqu.I("b.borrow_date").Desc(),
	)
}

func (r *BorrowingRepository) GetRecordView(ctx context.Context, id int) (*models.BorrowRecordView, error) {
	records, err := r.findViews(ctx, goqu.Ex{"b.id": id}, goqu.I("b.id").Asc())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, custom_error.NewNotFound("borrow record", id)
	}

	return &records[0], nil
}
