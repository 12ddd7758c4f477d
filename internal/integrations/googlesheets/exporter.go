package googlesheets

import (
	"context"
	"fmt"
	"os"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/core/config"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// StockExporter writes the stock report into one sheet of a spreadsheet,
// replacing whatever the sheet held before.
type StockExporter struct {
	sheetsService *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *zap.Logger
}

func NewStockExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*StockExporter, error) {
	credentialsJSON, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read Google credentials: %w", err)
	}

	credentials, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to load Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets client: %w", err)
	}

	return NewStockExporterWithService(sheetsService, cfg, logger), nil
}

func NewStockExporterWithService(sheetsService *sheets.Service, cfg config.SheetsConfig, logger *zap.Logger) *StockExporter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &StockExporter{
		sheetsService: sheetsService,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger,
	}
}

// ExportStockReport returns the range the report was written to.
func (e *StockExporter) ExportStockReport(ctx context.Context, report models.StockReport) (string, error) {
	sheetRange := fmt.Sprintf("%s!A1", e.sheetName)

	_, err := e.sheetsService.Spreadsheets.Values.
		Clear(e.spreadsheetID, e.sheetName, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to clear sheet %s: %w", e.sheetName, err)
	}

	resp, err := e.sheetsService.Spreadsheets.Values.
		Update(e.spreadsheetID, sheetRange, &sheets.ValueRange{Values: ReportValues(report)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to write sheet %s: %w", e.sheetName, err)
	}

	e.logger.Info("stock report exported",
		zap.String("range", resp.UpdatedRange),
		zap.Int64("rows", resp.UpdatedRows),
	)

	return resp.UpdatedRange, nil
}
