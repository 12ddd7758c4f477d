package disposal

import (
	"context"
	"net/http"
	"strconv"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/inventory/ledger"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/auditlog"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/roles"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"

	"github.com/gin-gonic/gin"
)

type Disposer interface {
	Dispose(ctx context.Context, in ledger.DisposeInput) (*models.DisposalRecord, error)
}

type Repository interface {
	GetAssetDisposals(ctx context.Context, assetID int) ([]models.DisposalRecord, error)
}

type AuditLogger interface {
	LogAs(userID int, action string, data interface{}, item auditlog.Auditable)
}

type DisposalHandler struct {
	ledger     Disposer
	repository Repository
	AuditLog   AuditLogger
}

func NewDisposalHandler(l Disposer, r Repository, a AuditLogger) *DisposalHandler {
	return &DisposalHandler{
		ledger:     l,
		repository: r,
		AuditLog:   a,
	}
}

func (h *DisposalHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assets/:id/disposals", security.Authorize(roles.Staff), h.DisposeAsset)
	router.GET("/assets/:id/disposals", security.Authorize(roles.Staff), h.GetDisposals)
}

func (h *DisposalHandler) DisposeAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var req models.DisposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, _ := security.UserID(c)
	record, err := h.ledger.Dispose(c.Request.Context(), ledger.DisposeInput{
		AssetID:    assetID,
		Quantity:   req.Quantity,
		Reason:     req.Reason,
		Notes:      req.Notes,
		DisposedBy: userID,
	})
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	go h.AuditLog.LogAs(userID, "dispose", map[string]interface{}{
		"asset_id": assetID,
		"quantity": record.Quantity,
		"reason":   record.Reason,
		"msg":      "Stock disposed",
	}, record)

	c.JSON(http.StatusCreated, record)
}

func (h *DisposalHandler) GetDisposals(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	records, err := h.repository.GetAssetDisposals(c.Request.Context(), assetID)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
