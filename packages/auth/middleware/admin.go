package middleware

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	adminOnce sync.Once
	adminIDs  map[int64]bool
)

// adminAllowlist parses ADMIN_IDS, a comma-separated list of Telegram IDs.
func adminAllowlist() map[int64]bool {
	adminOnce.Do(func() {
		adminIDs = make(map[int64]bool)
		for _, part := range strings.Split(os.Getenv("ADMIN_IDS"), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if id, err := strconv.ParseInt(part, 10, 64); err == nil {
				adminIDs[id] = true
			}
		}
	})
	return adminIDs
}

// RequireAdmin rejects requests from users outside the admin allowlist.
// Must run after JWTMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !adminAllowlist()[userID] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
