package controller

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/whitesgr03/local-inventory/internal/asset"
	"github.com/whitesgr03/local-inventory/internal/model"
	"github.com/whitesgr03/local-inventory/internal/service"
)

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ProductRequest represents the multipart form fields for creating or
// updating a product. The image arrives as the "image" file part.
type ProductRequest struct {
	Name        string  `form:"name" binding:"required,max=100"`
	Description string  `form:"description" binding:"max=500"`
	Price       float64 `form:"price" binding:"required,gte=1"`
	Quantity    int     `form:"quantity" binding:"required,gte=1,lte=999"`
	CategoryID  int64   `form:"category_id" binding:"required"`
}

// ProductResponse represents the response body for a product.
type ProductResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	Modified     string  `json:"modified"`
	Phase        string  `json:"phase"`
}

// ProductViewResponse is a product with its resolved image URLs.
type ProductViewResponse struct {
	ProductResponse
	Images asset.ImageURLs `json:"images"`
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, err := imageUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	created, err := pc.productService.CreateProduct(c.Request.Context(), toProductFields(req), upload, now)
	if err != nil {
		respondError(c, err, "products", 0)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(created, now))
}

// GetProduct handles the HTTP GET request for a product with its image URLs.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	now := time.Now()
	view, err := pc.productService.ResolveProductView(c.Request.Context(), id, now)
	if err != nil {
		respondError(c, err, "products", id)
		return
	}

	c.JSON(http.StatusOK, ProductViewResponse{
		ProductResponse: toProductResponse(view.Product, now),
		Images:          view.ImageURLs,
	})
}

// ListProducts handles the HTTP GET request for listing non-retired products.
func (pc *ProductController) ListProducts(c *gin.Context) {
	now := time.Now()
	products, err := pc.productService.ListProducts(c.Request.Context(), now)
	if err != nil {
		serverError(c, err, "failed to list products")
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toProductResponse(product, now))
	}

	c.JSON(http.StatusOK, gin.H{"products": responses})
}

// UpdateProduct handles the HTTP PUT request for updating a product.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, err := imageUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	updated, err := pc.productService.UpdateProduct(c.Request.Context(), id, toProductFields(req), upload, now)
	if err != nil {
		respondError(c, err, "products", id)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(updated, now))
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := pc.productService.DeleteProduct(c.Request.Context(), id, time.Now()); err != nil {
		respondError(c, err, "products", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
}

// imageUpload reads the optional "image" multipart file part. A
// missing part means no image was submitted; the service decides
// whether that is acceptable.
func imageUpload(c *gin.Context) (*service.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err == http.ErrMissingFile || fileHeader == nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &service.ImageUpload{
		Data:     data,
		MIMEType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

func toProductFields(req ProductRequest) service.ProductFields {
	return service.ProductFields{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
	}
}

func toProductResponse(product *model.Product, now time.Time) ProductResponse {
	return ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		Quantity:     product.Quantity,
		CategoryID:   product.CategoryID,
		CategoryName: product.CategoryName,
		Modified:     product.Modified.Format(time.RFC3339),
		Phase:        string(model.PhaseOf(product, now)),
	}
}
