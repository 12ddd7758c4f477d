package borrowing

import (
	"context"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
)

// Ledger is the subset of the inventory ledger that moves borrow records
// through their lifecycle.
type Ledger interface {
	SubmitRequest(ctx context.Context, userID, assetID, quantity int) (*models.BorrowRecord, error)
	Approve(ctx context.Context, recordID, approverID int) (*models.BorrowRecord, error)
	Reject(ctx context.Context, recordID, approverID int, reason string) (*models.BorrowRecord, error)
	Return(ctx context.Context, recordID int, condition string) (*models.BorrowRecord, error)
}

type Views interface {
	GetPendingRequests(ctx context.Context) ([]models.BorrowRecordView, error)
	GetOutstandingRecords(ctx context.Context) ([]models.BorrowRecordView, error)
	GetUserRecords(ctx context.Context, userID int) ([]models.BorrowRecordView, error)
	GetRecordView(ctx context.Context, id int) (*models.BorrowRecordView, error)
}

type BorrowingService struct {
	ledger Ledger
	views  Views
}

func NewBorrowingService(ledger Ledger, views Views) *BorrowingService {
	return &BorrowingService{ledger: ledger, views: views}
}

func (s *BorrowingService) Borrow(ctx context.Context, userID, assetID, quantity int) (*models.BorrowRecord, error) {
	return s.ledger.SubmitRequest(ctx, userID, assetID, quantity)
}

func (s *BorrowingService) Approve(ctx context.Context, recordID, approverID int) (*models.BorrowRecord, error) {
	return s.ledger.Approve(ctx, recordID, approverID)
}

func (s *BorrowingService) Reject(ctx context.Context, recordID, approverID int, reason string) (*models.BorrowRecord, error) {
	return s.ledger.Reject(ctx, recordID, approverID, reason)
}

func (s *BorrowingService) Return(ctx context.Context, recordID int, condition string) (*models.BorrowRecord, error) {
	return s.ledger.Return(ctx, recordID, condition)
}

func (s *BorrowingService) PendingRequests(ctx context.Context) ([]models.BorrowRecordView, error) {
	return s.views.GetPendingRequests(ctx)
}

func (s *BorrowingService) OutstandingRecords(ctx context.Context) ([]models.BorrowRecordView, error) {
	return s.views.GetOutstandingRecords(ctx)
}

func (s *BorrowingService) GetRecord(ctx context.Context, id int) (*models.BorrowRecordView, error) {
	return s.views.GetRecordView(ctx, id)
}

func (s *BorrowingService) UserSummary(ctx context.Context, userID int) (*models.BorrowingSummary, error) {
	records, err := s.views.GetUserRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(records)
	return &summary, nil
}

// Summarize splits a user's records into active and returned ones. Rejected
// requests only count towards the total.
func Summarize(records []models.BorrowRecordView) models.BorrowingSummary {
	summary := models.BorrowingSummary{
		Active:     []models.BorrowRecordView{},
		Returned:   []models.BorrowRecordView{},
		TotalCount: len(records),
	}

	for _, record := range records {
		switch {
		case record.IsReturned:
			summary.Returned = append(summary.Returned, record)
		case record.Status != metadata.BorrowStatusRejected:
			summary.Active = append(summary.Active, record)
		}
	}

	summary.ActiveCount = len(summary.Active)
	summary.ReturnedCount = len(summary.Returned)

	return summary
}
