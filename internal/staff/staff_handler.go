package staff

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

type StaffHandler struct {
	service  *StaffService
	AuditLog AuditLogger
}

func NewStaffHandler(s *StaffService, a AuditLogger) *StaffHandler {
	return &StaffHandler{
		service:  s,
		AuditLog: a,
	}
}

func (h *StaffHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/staff/members", security.Authorize(roles.Staff), h.GetStaffMembers)
	router.GET("/staff/members/:id", security.Authorize(roles.Staff), h.GetStaffMember)
	router.POST("/staff/members", security.Authorize(roles.Admin), h.CreateStaffMember)
	router.PATCH("/staff/members/:id", security.Authorize(roles.Admin), h.UpdateStaffMember)
}

func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	members, err := h.service.GetStaffMembers(c.Request.Context())
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

func (h *StaffHandler) GetStaffMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID", "details": err.Error()})
		return
	}

	member, err := h.service.GetStaff(c.Request.Context(), id)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req models.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	provisioned, err := h.service.CreateStaff(c.Request.Context(), req)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	adminID, _ := security.UserID(c)
	go h.AuditLog.LogAs(adminID, "create", map[string]interface{}{
		"employee_id": provisioned.Staff.EmployeeID,
		"role":        provisioned.Staff.Role,
		"username":    provisioned.Username,
		"msg":         "Staff member created",
	}, provisioned.Staff)

	c.JSON(http.StatusCreated, provisioned)
}

func (h *StaffHandler) UpdateStaffMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID", "details": err.Error()})
		return
	}

	var req models.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	provisioned, err := h.service.UpdateStaff(c.Request.Context(), id, req)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	adminID, _ := security.UserID(c)
	go h.AuditLog.LogAs(adminID, "update", map[string]interface{}{
		"role":      provisioned.Staff.Role,
		"is_active": provisioned.Staff.IsActive,
		"msg":       "Staff member updated",
	}, provisioned.Staff)

	c.JSON(http.StatusOK, provisioned)
}
