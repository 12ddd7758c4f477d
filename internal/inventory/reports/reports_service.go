package reports

import (
	"context"
	"errors"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
)

// ErrExportNotConfigured is returned by Export when no spreadsheet is set up.
var ErrExportNotConfigured = errors.New("stock report export is not configured")

type Repository interface {
	GetDashboard(ctx context.Context) (*models.Dashboard, error)
}

type AssetLister interface {
	GetAssetsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.AssetDetails, error)
}

type Exporter interface {
	ExportStockReport(ctx context.Context, report models.StockReport) (string, error)
}

type ReportsService struct {
	repository Repository
	assets     AssetLister
	exporter   Exporter
}

// NewReportsService accepts a nil exporter; Export then fails with
// ErrExportNotConfigured.
func NewReportsService(r Repository, a AssetLister, e Exporter) *ReportsService {
	return &ReportsService{
		repository: r,
		assets:     a,
		exporter:   e,
	}
}

func (s *ReportsService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	return s.repository.GetDashboard(ctx)
}

func (s *ReportsService) StockReport(ctx context.Context) (*models.StockReport, error) {
	assets, err := s.assets.GetAssetsBy(ctx, repository.NewQueryBuilder())
	if err != nil {
		return nil, err
	}

	report := &models.StockReport{Rows: make([]models.StockReportRow, 0, len(assets))}
	for _, asset := range assets {
		report.Rows = append(report.Rows, models.StockReportRow{
			AssetID:      asset.ID,
			Name:         asset.Name,
			SerialNumber: asset.SerialNumber,
			Category:     asset.Category.Name,
			Status:       asset.Status.String(),
			StockLevel:   asset.Stock,
		})
	}

	return report, nil
}

func (s *ReportsService) Export(ctx context.Context) (string, int, error) {
	if s.exporter == nil {
		return "", 0, ErrExportNotConfigured
	}

	report, err := s.StockReport(ctx)
	if err != nil {
		return "", 0, err
	}

	updatedRange, err := s.exporter.ExportStockReport(ctx, *report)
	if err != nil {
		return "", 0, err
	}

	return updatedRange, len(report.Rows), nil
}
