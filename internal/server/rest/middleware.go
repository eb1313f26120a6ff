package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/datacleaner-ai/datacleaner/internal/server/auth"
	"github.com/datacleaner-ai/datacleaner/internal/server/models"
)

const userKey = "currentUser"

// authRequired validates the bearer token and loads the caller's account.
// The account is re-read on every request, so a role change takes effect on
// the next call, not at the next login.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			detail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := auth.GetUserIDFromToken(parts[1], s.jwtSecret)
		if err != nil {
			detail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		user, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			detail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// adminRequired gates the administrative surface. Runs after authRequired.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).Role != models.RoleAdmin {
			detail(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}
