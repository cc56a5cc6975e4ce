package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/whitesgr03/local-inventory/internal/model"
	"github.com/whitesgr03/local-inventory/internal/service"
)

// CategoryController handles HTTP requests for category operations.
type CategoryController struct {
	catalogService *service.CatalogService
}

// NewCategoryController creates a new CategoryController with the given catalog service.
func NewCategoryController(catalogService *service.CatalogService) *CategoryController {
	return &CategoryController{
		catalogService: catalogService,
	}
}

// CategoryRequest represents the request body for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=30"`
	Description string `json:"description" binding:"max=200"`
}

// CategoryResponse represents the response body for a category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Phase       string `json:"phase"`
}

// CategoryViewResponse is a category with its non-retired products.
type CategoryViewResponse struct {
	CategoryResponse
	Products []ProductResponse `json:"products"`
}

// CreateCategory handles the HTTP POST request for creating a new category.
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	fields := service.CategoryFields{Name: req.Name, Description: req.Description}

	created, err := cc.catalogService.CreateCategory(c.Request.Context(), fields, now)
	if err != nil {
		respondError(c, err, "categories", 0)
		return
	}

	c.JSON(http.StatusCreated, toCategoryResponse(created, now))
}

// GetCategory handles the HTTP GET request for a category with its products.
func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	now := time.Now()
	view, err := cc.catalogService.ResolveCategoryView(c.Request.Context(), id, now)
	if err != nil {
		respondError(c, err, "categories", id)
		return
	}

	resp := CategoryViewResponse{
		CategoryResponse: toCategoryResponse(view.Category, now),
		Products:         make([]ProductResponse, 0, len(view.Products)),
	}
	for _, product := range view.Products {
		resp.Products = append(resp.Products, toProductResponse(product, now))
	}

	c.JSON(http.StatusOK, resp)
}

// ListCategories handles the HTTP GET request for listing non-retired categories.
func (cc *CategoryController) ListCategories(c *gin.Context) {
	now := time.Now()
	categories, err := cc.catalogService.ListCategories(c.Request.Context(), now)
	if err != nil {
		serverError(c, err, "failed to list categories")
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toCategoryResponse(category, now))
	}

	c.JSON(http.StatusOK, gin.H{"categories": responses})
}

// UpdateCategory handles the HTTP PUT request for updating a category.
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	fields := service.CategoryFields{Name: req.Name, Description: req.Description}

	updated, err := cc.catalogService.UpdateCategory(c.Request.Context(), id, fields, now)
	if err != nil {
		respondError(c, err, "categories", id)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponse(updated, now))
}

// DeleteCategory handles the HTTP DELETE request for deleting a category by ID.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := cc.catalogService.DeleteCategory(c.Request.Context(), id, time.Now()); err != nil {
		respondError(c, err, "categories", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

// pathID parses the :id path parameter, answering 400 itself when the
// value is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record ID"})
		return 0, false
	}
	return id, true
}

func toCategoryResponse(category *model.Category, now time.Time) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Phase:       string(model.PhaseOf(category, now)),
	}
}
