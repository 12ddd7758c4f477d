package reports

import (
	"errors"
	"net/http"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/roles"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportsHandler struct {
	service *ReportsService
	logger  *zap.Logger
}

func NewReportsHandler(s *ReportsService, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ReportsHandler{
		service: s,
		logger:  logger,
	}
}

func (h *ReportsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/staff/dashboard", security.Authorize(roles.Staff), h.GetDashboard)
	router.GET("/staff/reports", security.Authorize(roles.Staff), h.GetStockReport)
	router.POST("/staff/reports/export", security.Authorize(roles.Admin), h.ExportStockReport)
}

func (h *ReportsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *ReportsHandler) GetStockReport(c *gin.Context) {
	report, err := h.service.StockReport(c.Request.Context())
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportsHandler) ExportStockReport(c *gin.Context) {
	updatedRange, rows, err := h.service.Export(c.Request.Context())
	if errors.Is(err, ErrExportNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "code": "export_unavailable"})
		return
	}
	if err != nil {
		h.logger.Error("stock report export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Export to Google Sheets failed", "code": "export_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"range": updatedRange, "rows": rows})
}
