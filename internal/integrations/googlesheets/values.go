package googlesheets

import "github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

var reportHeader = []interface{}{
	"Asset ID", "Name", "Serial number", "Category", "Status",
	"Total", "Borrowed", "Pending", "Available",
}

// ReportValues lays the report out as sheet rows under a header row.
func ReportValues(report models.StockReport) [][]interface{} {
	values := make([][]interface{}, 0, len(report.Rows)+1)
	values = append(values, reportHeader)

	for _, row := range report.Rows {
		values = append(values, []interface{}{
			row.AssetID,
			row.Name,
			row.SerialNumber,
			row.Category,
			row.Status,
			row.Total,
			row.Borrowed,
			row.Pending,
			row.Available,
		})
	}

	return values
}
