package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"complaint-backend/internal/apperr"
)

// respondError translates a service error into the {status, message} response
// shape. Domain errors keep their own status; anything unexpected becomes a
// generic 500 so internals never leak to the caller.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"status": appErr.Status, "message": appErr.Message})
		return
	}

	log.Errorf("Unexpected error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "message": "internal server error"})
}
