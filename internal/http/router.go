package http

import (
	"github.com/gin-gonic/gin"

	"github.com/whitesgr03/local-inventory/internal/http/controller"
	"github.com/whitesgr03/local-inventory/internal/http/middleware"
)

// InitRouter wires the catalog routes onto the given engine.
func InitRouter(server *gin.Engine, ctr *controller.Controller, categoryCtr *controller.CategoryController, productCtr *controller.ProductController) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())
	server.Use(middleware.CORS())
	server.Use(middleware.Logger())

	server.GET("/ping", ctr.Ping)
	server.GET("/counts", ctr.Counts)

	// Category endpoints
	categories := server.Group("/categories")
	{
		categories.POST("", categoryCtr.CreateCategory)
		categories.GET("", categoryCtr.ListCategories)
		categories.GET("/:id", categoryCtr.GetCategory)
		categories.PUT("/:id", categoryCtr.UpdateCategory)
		categories.DELETE("/:id", categoryCtr.DeleteCategory)
	}

	// Product endpoints
	products := server.Group("/products")
	{
		products.POST("", productCtr.CreateProduct)
		products.GET("", productCtr.ListProducts)
		products.GET("/:id", productCtr.GetProduct)
		products.PUT("/:id", productCtr.UpdateProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	return server
}
