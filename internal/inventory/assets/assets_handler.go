package assets

import (
	"net/http"
	"strconv"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/auditlog"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/roles"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuditLogger interface {
	LogAs(userID int, action string, data interface{}, item auditlog.Auditable)
}

type AssetHandler struct {
	service  *AssetService
	AuditLog AuditLogger
}

func NewAssetHandler(s *AssetService, a AuditLogger) *AssetHandler {
	return &AssetHandler{
		service:  s,
		AuditLog: a,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assets", security.Authorize(roles.User), h.GetCatalog)
	router.GET("/assets/:id", security.Authorize(roles.User), h.GetAsset)
	router.POST("/assets", security.Authorize(roles.Staff), h.CreateAsset)
	router.PATCH("/assets/:id", security.Authorize(roles.Staff), h.UpdateAsset)
	router.DELETE("/assets/:id", security.Authorize(roles.Admin), h.RemoveAsset)
	router.POST("/assets/:id/restock", security.Authorize(roles.Staff), h.RestockAsset)
	router.GET("/staff/assets", security.Authorize(roles.Staff), h.SearchAssets)
}

func assetID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return 0, false
	}
	return id, true
}

func (h *AssetHandler) GetCatalog(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("category_id"))

	assets, err := h.service.Catalog(c.Request.Context(), categoryID)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	asset, err := h.service.GetAsset(c.Request.Context(), id)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) SearchAssets(c *gin.Context) {
	var search models.AssetSearch
	if err := c.ShouldBindQuery(&search); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	result, err := h.service.Search(c.Request.Context(), search)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.CreateAsset(c.Request.Context(), req)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	userID, _ := security.UserID(c)
	go h.AuditLog.LogAs(userID, "create", map[string]interface{}{
		"serial_number":  asset.SerialNumber,
		"total_quantity": asset.TotalQuantity,
		"category_id":    asset.CategoryID,
		"msg":            "Asset created",
	}, &asset.Asset)

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req models.PatchAssetRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters", "details": err.Error()})
		return
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.UpdateAsset(c.Request.Context(), req)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	userID, _ := security.UserID(c)
	go h.AuditLog.LogAs(userID, "update", map[string]interface{}{
		"name":        asset.Name,
		"category_id": asset.CategoryID,
		"msg":         "Asset updated",
	}, &asset.Asset)

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) RemoveAsset(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	serialNumber, err := h.service.RemoveAsset(c.Request.Context(), id)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	userID, _ := security.UserID(c)
	go h.AuditLog.LogAs(userID, "remove", map[string]interface{}{
		"serial_number": serialNumber,
		"msg":           "Asset removed",
	}, &models.Asset{ID: id})

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

type restockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *AssetHandler) RestockAsset(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, level, err := h.service.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	userID, _ := security.UserID(c)
	go h.AuditLog.LogAs(userID, "restock", map[string]interface{}{
		"quantity":       req.Quantity,
		"total_quantity": asset.TotalQuantity,
		"msg":            "Asset restocked",
	}, asset)

	c.JSON(http.StatusOK, gin.H{"asset": asset, "stock": level})
}
