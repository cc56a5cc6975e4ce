package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/whitesgr03/local-inventory/internal/service"
)

// Controller handles general HTTP requests.
type Controller struct {
	catalogService *service.CatalogService
}

// New creates a new Controller with the given catalog service.
func New(catalogService *service.CatalogService) *Controller {
	return &Controller{
		catalogService: catalogService,
	}
}

// Ping handles the HTTP GET request for health check endpoint.
func (con *Controller) Ping(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

// Counts handles the HTTP GET request for the catalog index totals.
func (con *Controller) Counts(c *gin.Context) {
	counts, err := con.catalogService.ResolveCounts(c.Request.Context(), time.Now())
	if err != nil {
		serverError(c, err, "failed to resolve counts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": counts.Categories,
		"products":   counts.Products,
	})
}
