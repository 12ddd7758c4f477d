package custom_error

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AbortWithError writes the classified status and code. Internal errors are
// not echoed to the client.
func AbortWithError(c *gin.Context, err error) {
	status, code := Classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}
