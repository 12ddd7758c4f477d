package security

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/rate_limiter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginHandler struct {
	store       CredentialStore
	jwt         *JWTManager
	rateLimiter rate_limiter.Limiter
	logger      *zap.Logger
}

func NewLoginHandler(store CredentialStore, jwt *JWTManager, limiter rate_limiter.Limiter, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{
		store:       store,
		jwt:         jwt,
		rateLimiter: limiter,
		logger:      logger,
	}
}

func (l *LoginHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/auth", l.LoginHandler())
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (l *LoginHandler) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := clientKey(c)

		allowed, err := l.rateLimiter.Allow(c.Request.Context(), clientKey)
		if err != nil {
			l.logger.Warn("rate limiter unavailable, allowing login", zap.Error(err))
			allowed = true
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
			return
		}

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		user, err := AuthenticateUser(c.Request.Context(), l.store, req.Username, req.Password)
		switch {
		case errors.Is(err, ErrInactiveUser):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is disabled"})
			return
		case err != nil:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		token, err := l.jwt.GenerateJWT(user.ID, user.Role, user.Username)
		if err != nil {
			l.logger.Error("failed to sign token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		if resetter, ok := l.rateLimiter.(interface {
			Reset(ctx context.Context, key string) error
		}); ok {
			_ = resetter.Reset(c.Request.Context(), clientKey)
		}

		l.logger.Info("user logged in", zap.Int("user_id", user.ID))
		c.JSON(http.StatusOK, gin.H{"token": token, "role": user.Role})
	}
}

// clientKey identifies a login client. Behind a proxy the first forwarded
// address is used; private addresses are combined with the user agent so a
// shared NAT does not lock everyone out.
func clientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}
	clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])

	if isPrivateIP(clientIP) {
		return clientIP + ":" + c.GetHeader("User-Agent")
	}
	return clientIP
}

func isPrivateIP(ip string) bool {
	privatePrefixes := []string{
		"10.", "192.168.", "127.", "169.254.", "::1", "fc00::", "fe80::",
	}
	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}

	for second := 16; second <= 31; second++ {
		if strings.HasPrefix(ip, "172."+strconv.Itoa(second)+".") {
			return true
		}
	}
	return false
}
