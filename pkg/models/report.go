package models

type Dashboard struct {
	TotalAssets       int `json:"total_assets" db:"total_assets"`
	TotalCategories   int `json:"total_categories" db:"total_categories"`
	TotalUnits        int `json:"total_units" db:"total_units"`
	PendingRequests   int `json:"pending_requests" db:"pending_requests"`
	ActiveBorrows     int `json:"active_borrows" db:"active_borrows"`
	BorrowedUnits     int `json:"borrowed_units" db:"borrowed_units"`
	OpenMaintenance   int `json:"open_maintenance" db:"open_maintenance"`
	DisposedUnits     int `json:"disposed_units" db:"disposed_units"`
	AssetsUnderRepair int `json:"assets_under_repair" db:"assets_under_repair"`
	AssetsOutOfStock  int `json:"assets_out_of_stock" db:"assets_out_of_stock"`
}

type StockReportRow struct {
	AssetID      int    `json:"asset_id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	StockLevel
}

type StockReport struct {
	Rows []StockReportRow `json:"rows"`
}
