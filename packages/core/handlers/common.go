package handlers

import (
	"log"
	"net/http"
	"strconv"

	"core/apperrors"

	"github.com/gin-gonic/gin"
)

// Context keys populated by the auth middleware.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// respondError renders a domain error with its HTTP status and stable code.
// Unknown errors are logged and masked as a plain 500.
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": apperrors.CodeInternal})
}

func currentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func currentUsername(c *gin.Context) string {
	v, exists := c.Get(ContextUsername)
	if !exists {
		return ""
	}
	username, _ := v.(string)
	return username
}

func pathUint(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(value), true
}

func pathInt64(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return value, true
}
