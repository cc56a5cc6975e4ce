package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whitesgr03/local-inventory/internal/service"
)

// respondError maps the service error taxonomy to HTTP responses. A
// draft rejection is a redirect back to the record's read view, never
// an error page; validation failures carry the offending field so the
// client can render them inline.
func respondError(c *gin.Context, err error, recordPath string, id int64) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, service.ErrDraft):
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/%s/%d", recordPath, id))
	case errors.Is(err, service.ErrNameConflict):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"name": "name already in use"},
		})
	case errors.Is(err, service.ErrInvalidCategory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"category_id": "category does not exist"},
		})
	case errors.Is(err, service.ErrInvalidImage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"image": err.Error()},
		})
	case errors.Is(err, service.ErrHasDependents):
		c.JSON(http.StatusConflict, gin.H{
			"error": "category still has products",
		})
	default:
		serverError(c, err, "request failed")
	}
}

func serverError(c *gin.Context, err error, msg string) {
	slog.Error(msg,
		slog.Any("err", err),
		slog.String("path", c.Request.URL.Path),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
