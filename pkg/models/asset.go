package models

import (
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
)

type Asset struct {
	ID            int                  `json:"id" db:"id"`
	Name          string               `json:"name" db:"name"`
	SerialNumber  string               `json:"serial_number" db:"serial_number"`
	CategoryID    int                  `json:"category_id" db:"category_id"`
	TotalQuantity int                  `json:"total_quantity" db:"total_quantity"`
	Status        metadata.AssetStatus `json:"status" db:"status"`
	CreatedAt     time.Time            `json:"created_at" db:"created_at"`
}

// StockLevel is the computed view of an asset's quantities. Available never
// accounts for pending requests.
type StockLevel struct {
	Total            int  `json:"total_quantity"`
	Borrowed         int  `json:"borrowed_quantity"`
	Pending          int  `json:"pending_quantity"`
	Available        int  `json:"available_quantity"`
	IsStockAvailable bool `json:"is_stock_available"`
}

type AssetDetails struct {
	Asset
	Category Category   `json:"category"`
	Stock    StockLevel `json:"stock"`
}

type FlatAssetRecord struct {
	ID               int       `db:"asset_id"`
	Name             string    `db:"asset_name"`
	SerialNumber     string    `db:"serial_number"`
	TotalQuantity    int       `db:"total_quantity"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	CategoryID       int       `db:"category_id"`
	CategoryName     string    `db:"category_name"`
	BorrowedQuantity int       `db:"borrowed_quantity"`
	PendingQuantity  int       `db:"pending_quantity"`
}

// TransformToAssetDetails copies the joined row; the caller fills Stock from
// the borrowed and pending sums.
func (fa *FlatAssetRecord) TransformToAssetDetails() AssetDetails {
	return AssetDetails{
		Asset: Asset{
			ID:            fa.ID,
			Name:          fa.Name,
			SerialNumber:  fa.SerialNumber,
			CategoryID:    fa.CategoryID,
			TotalQuantity: fa.TotalQuantity,
			Status:        metadata.AssetStatus(fa.Status),
			CreatedAt:     fa.CreatedAt,
		},
		Category: Category{
			ID:   fa.CategoryID,
			Name: fa.CategoryName,
		},
	}
}

type AssetRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	SerialNumber  *string `json:"serial_number" binding:"omitempty,max=50"`
	CategoryID    int     `json:"category_id" binding:"required"`
	TotalQuantity *int    `json:"total_quantity" binding:"omitempty,min=0"`
}

type PatchAssetRequest struct {
	ID         int     `uri:"id" binding:"required"`
	Name       *string `json:"name" binding:"omitempty,max=100"`
	CategoryID *int    `json:"category_id"`
}

type AssetSearch struct {
	Query      string `form:"q"`
	Status     string `form:"status"`
	CategoryID int    `form:"category_id"`
	Page       int    `form:"page"`
	Size       int    `form:"size"`
}

func (a *Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}
