package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/limat-tech/voicebot/controllers/cart"
	orderControllers "github.com/limat-tech/voicebot/controllers/order"
	productControllers "github.com/limat-tech/voicebot/controllers/product"
	"github.com/limat-tech/voicebot/middleware"
)

// SetupAPIRoutes registers the customer-facing shop endpoints.
func SetupAPIRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	// ──────────────── Browse Products & Categories (public) ────────────────
	products := r.Group("/api/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/search", productControllers.SearchProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))
	}
	categories := r.Group("/api/categories")
	{
		categories.GET("", productControllers.GetAllCategoriesWithProducts(db))
		categories.GET("/:id", productControllers.GetCategoryByID(db))
	}

	// ──────────────── Shopping Cart (JWT) ────────────────
	cart := r.Group("/api/cart")
	cart.Use(middleware.RequireAuth)
	{
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.GET("", cartControllers.GetCart(db))
		cart.PUT("/items/:id", cartControllers.UpdateCartItem(db))
		cart.DELETE("/items/:id", cartControllers.RemoveCartItem(db))
		cart.POST("/checkout", cartControllers.Checkout(db, deps.Publisher))
	}

	// ──────────────── Orders (JWT) ────────────────
	orders := r.Group("/api/orders")
	orders.Use(middleware.RequireAuth)
	{
		orders.GET("", orderControllers.GetOrders(db))
		orders.GET("/:id", orderControllers.GetOrderDetails(db))
	}
}
