package users

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

type UsersHandler struct {
	service  *UserService
	AuditLog AuditLogger
}

func NewHandler(s *UserService, a AuditLogger) *UsersHandler {
	return &UsersHandler{
		service:  s,
		AuditLog: a,
	}
}

// RegisterPublicRoutes mounts the routes reachable without a token.
func (h *UsersHandler) RegisterPublicRoutes(router gin.IRoutes) {
	router.POST("/register", h.RegisterUser)
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users/me", security.Authorize(roles.User), h.GetCurrentUser)
	router.GET("/users", security.Authorize(roles.Staff), h.GetUserList)
	router.GET("/users/:id", security.Authorize(roles.User), h.GetUser)
	router.PATCH("/users/:id", security.Authorize(roles.Admin), h.UpdateUser)
}

func (h *UsersHandler) RegisterUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	go h.AuditLog.LogAs(user.ID, "register", map[string]interface{}{
		"username": user.Username,
		"msg":      "User registered",
	}, user)

	c.JSON(http.StatusCreated, user)
}

func (h *UsersHandler) GetCurrentUser(c *gin.Context) {
	userID, _ := security.UserID(c)

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	if !isAllowed(c, userID, roles.Staff) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "details": "You are not allowed to access this resource"})
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.service.GetUsers(c.Request.Context())
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	adminID, _ := security.UserID(c)
	go h.AuditLog.LogAs(adminID, "update", map[string]interface{}{
		"role":      user.Role,
		"is_active": user.IsActive,
		"msg":       "User updated",
	}, user)

	c.JSON(http.StatusOK, user)
}

// isAllowed lets users read their own record and anyone at or above
// requiredRole read any record.
func isAllowed(c *gin.Context, userID int, requiredRole roles.Role) bool {
	authID, ok := security.UserID(c)
	if !ok || authID == 0 {
		return false
	}

	return authID == userID || security.CurrentRole(c).HasPermission(requiredRole)
}
