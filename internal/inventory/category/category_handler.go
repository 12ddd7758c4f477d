package category

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

type CategoryHandler struct {
	service  *CategoryService
	AuditLog AuditLogger
}

func NewCategoryHandler(s *CategoryService, a AuditLogger) *CategoryHandler {
	return &CategoryHandler{
		service:  s,
		AuditLog: a,
	}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assets/categories", security.Authorize(roles.User), h.GetCategories)
	router.POST("/assets/categories", security.Authorize(roles.Staff), h.CreateCategory)
	router.PATCH("/assets/categories/:id", security.Authorize(roles.Staff), h.UpdateCategory)
	router.DELETE("/assets/categories/:id", security.Authorize(roles.Admin), h.RemoveCategory)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.GetCategories(c.Request.Context())
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	userID, _ := security.UserID(c)
	go h.AuditLog.LogAs(userID, "create", map[string]interface{}{
		"name": category.Name,
		"msg":  "Category created",
	}, category)

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req models.PatchCategoryRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters", "details": err.Error()})
		return
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	if req.Name == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	category, err := h.service.RenameCategory(c.Request.Context(), req.ID, *req.Name)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	userID, _ := security.UserID(c)
	go h.AuditLog.LogAs(userID, "update", map[string]interface{}{
		"name": category.Name,
		"msg":  "Category renamed",
	}, category)

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) RemoveCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id parameter, must be an integer"})
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	userID, _ := security.UserID(c)
	go h.AuditLog.LogAs(userID, "remove", map[string]interface{}{"msg": "Category deleted"}, &models.Category{ID: id})

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
