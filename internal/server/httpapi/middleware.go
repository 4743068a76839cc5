package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkorotkov/clipstream/internal/common"
	"github.com/mkorotkov/clipstream/internal/server/auth"
)

const userIDKey = "userID"

// authMiddleware validates the Bearer token and stores the caller identity
// in the request context. Expired tokens keep their distinct error type so
// clients know to refresh.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthHeaderName)

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(c, common.ErrorUnauthorized)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// callerID returns the authenticated identity, or "" when the request was
// not authenticated.
func callerID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
