package borrowing

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

type BorrowingHandler struct {
	service  *BorrowingService
	AuditLog AuditLogger
}

func NewBorrowingHandler(s *BorrowingService, a AuditLogger) *BorrowingHandler {
	return &BorrowingHandler{
		service:  s,
		AuditLog: a,
	}
}

func (h *BorrowingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assets/:id/borrow", security.Authorize(roles.User), h.BorrowAsset)
	router.GET("/borrowings/mine", security.Authorize(roles.User), h.GetMyBorrowings)

	router.GET("/staff/requests", security.Authorize(roles.Staff), h.GetPendingRequests)
	router.POST("/staff/requests/:id/approve", security.Authorize(roles.Staff), h.ApproveRequest)
	router.POST("/staff/requests/:id/reject", security.Authorize(roles.Staff), h.RejectRequest)
	router.GET("/staff/returns", security.Authorize(roles.Staff), h.GetOutstandingRecords)
	router.POST("/staff/returns/:id", security.Authorize(roles.Staff), h.ReturnRecord)
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " ID"})
		return 0, false
	}
	return id, true
}

func (h *BorrowingHandler) BorrowAsset(c *gin.Context) {
	assetID, ok := pathID(c, "asset")
	if !ok {
		return
	}

	var req models.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, _ := security.UserID(c)
	record, err := h.service.Borrow(c.Request.Context(), userID, assetID, req.Quantity)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	go h.AuditLog.LogAs(userID, "submit", map[string]interface{}{
		"asset_id": assetID,
		"quantity": record.Quantity,
		"msg":      "Borrow request submitted",
	}, record)

	c.JSON(http.StatusCreated, record)
}

func (h *BorrowingHandler) GetMyBorrowings(c *gin.Context) {
	userID, _ := security.UserID(c)

	summary, err := h.service.UserSummary(c.Request.Context(), userID)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *BorrowingHandler) GetPendingRequests(c *gin.Context) {
	records, err := h.service.PendingRequests(c.Request.Context())
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *BorrowingHandler) GetOutstandingRecords(c *gin.Context) {
	records, err := h.service.OutstandingRecords(c.Request.Context())
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *BorrowingHandler) ApproveRequest(c *gin.Context) {
	recordID, ok := pathID(c, "borrow record")
	if !ok {
		return
	}

	approverID, _ := security.UserID(c)
	record, err := h.service.Approve(c.Request.Context(), recordID, approverID)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	go h.AuditLog.LogAs(approverID, "approve", map[string]interface{}{
		"asset_id": record.AssetID,
		"quantity": record.Quantity,
		"msg":      "Borrow request approved",
	}, record)

	c.JSON(http.StatusOK, record)
}

func (h *BorrowingHandler) RejectRequest(c *gin.Context) {
	recordID, ok := pathID(c, "borrow record")
	if !ok {
		return
	}

	var req models.RejectBorrowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}
	}

	approverID, _ := security.UserID(c)
	record, err := h.service.Reject(c.Request.Context(), recordID, approverID, req.Reason)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	go h.AuditLog.LogAs(approverID, "reject", map[string]interface{}{
		"reason": req.Reason,
		"msg":    "Borrow request rejected",
	}, record)

	c.JSON(http.StatusOK, record)
}

func (h *BorrowingHandler) ReturnRecord(c *gin.Context) {
	recordID, ok := pathID(c, "borrow record")
	if !ok {
		return
	}

	var req models.ReturnBorrowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}
	}

	record, err := h.service.Return(c.Request.Context(), recordID, req.Condition)
	if err != nil {
		custom_error.AbortWithError(c, err)
		return
	}

	staffID, _ := security.UserID(c)
	go h.AuditLog.LogAs(staffID, "return", map[string]interface{}{
		"asset_id":  record.AssetID,
		"quantity":  record.Quantity,
		"condition": req.Condition,
		"msg":       "Borrowed stock returned",
	}, record)

	c.JSON(http.StatusOK, record)
}
