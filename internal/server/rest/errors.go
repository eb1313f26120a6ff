package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datacleaner-ai/datacleaner/internal/common"
)

// detail writes the API error body: {"detail": "..."}.
func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// respondError maps a service failure to its HTTP status. Conflict and
// validation errors carry their exact message as the detail text.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorEmailTaken),
		errors.Is(err, common.ErrorUsernameTaken),
		errors.Is(err, common.ErrorNotImage):
		detail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorInvalidCredentials):
		detail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorQuotaExceeded):
		detail(c, http.StatusForbidden, "Upload limit reached. Upgrade to Pro for unlimited uploads.")
	case errors.Is(err, common.ErrorValidation):
		detail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		detail(c, http.StatusNotFound, "Not found")
	default:
		detail(c, http.StatusInternalServerError, "Internal server error")
	}
}
