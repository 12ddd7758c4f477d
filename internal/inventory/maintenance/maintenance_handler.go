package maintenance

import (
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

type AuditLogger interface {
	LogAs(userID int, action string, data interface{}, item auditlog.Auditable)
}

type MaintenanceHandler struct {
	service  *MaintenanceService
	AuditLog AuditLogger
}

func NewMaintenanceHandler(s *MaintenanceService, a AuditLogger) *MaintenanceHandler {
	return &MaintenanceHandler{
		service:  s,
		AuditLog: a,
	}
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assets/:id/maintenance", security.Authorize(roles.Staff), h.OpenMaintenance)
	router.GET("/maintenance", security.Authorize(roles.Staff), h.GetMaintenanceRecords)
	router.GET("/maintenance/:id", security.Authorize(roles.Staff), h.GetMaintenanceRecord)
	router.POST("/maintenance/:id/transition", security.Authorize(roles.Staff), h.TransitionMaintenance)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

func (h *MaintenanceHandler) OpenMaintenance(c *gin.Context) {
	assetID, ok := pathID(c)
	if !ok {
		return
	}

	var req models.OpenMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, _ := security.UserID(c)
	opened, err := h.service.Open(c.Request.Context(), ledger.OpenMaintenanceInput{
		AssetID:     assetID,
		Type:        req.MaintenanceType,
		Description: req.Description,
		RequestedBy: userID,
	})
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	go h.AuditLog.LogAs(userID, "open", map[string]interface{}{
		"asset_id":         assetID,
		"maintenance_type": opened.Type,
		"ticket":           opened.TicketKey,
		"msg":              "Maintenance opened",
	}, opened.MaintenanceRecord)

	c.JSON(http.StatusCreated, opened)
}

func (h *MaintenanceHandler) GetMaintenanceRecords(c *gin.Context) {
	records, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *MaintenanceHandler) GetMaintenanceRecord(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *MaintenanceHandler) TransitionMaintenance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.MaintenanceTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, _ := security.UserID(c)
	record, err := h.service.Transition(c.Request.Context(), id, ledger.MaintenanceTransition{
		Action:     req.Action,
		ActorID:    userID,
		AssignedTo: req.AssignedTo,
		Cost:       req.Cost,
		Notes:      req.Notes,
		Reason:     req.Reason,
	})
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	go h.AuditLog.LogAs(userID, req.Action, map[string]interface{}{
		"status": record.Status,
		"msg":    "Maintenance " + record.Status.String(),
	}, record)

	c.JSON(http.StatusOK, record)
}
