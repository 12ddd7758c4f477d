package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/roles"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var resourceTypes = map[string]bool{
	"asset":              true,
	"category":           true,
	"borrow_record":      true,
	"disposal_record":    true,
	"maintenance_record": true,
	"staff":              true,
	"user":               true,
}

type Reader interface {
	GetResourceLog(ctx context.Context, resourceType string, id int) ([]models.AuditLog, error)
}

type AuditLogHandler struct {
	reader Reader
	logger *zap.Logger
}

func NewHandler(reader Reader, logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{reader: reader, logger: logger}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit/:type/:id", security.Authorize(roles.Staff), h.GetResourceLog)
}

func (h *AuditLogHandler) GetResourceLog(c *gin.Context) {
	resourceType := c.Param("type")
	if !resourceTypes[resourceType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown resource type"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	logs, err := h.reader.GetResourceLog(c.Request.Context(), resourceType, id)
	if err != nil {
		h.logger.Error("failed to read audit log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit log"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
