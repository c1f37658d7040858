package productControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/limat-tech/voicebot/config"
	"github.com/limat-tech/voicebot/models"
)

const (
	productCacheTTL = 5 * time.Minute
)

// GetProducts returns all active products with both language versions, so the
// client can render title and subtitle without a second request.
// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Where("is_active = ?", true).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while fetching products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// GetProductByID returns a single active product, served from the Redis
// read-through cache when possible.
// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		id, err := strconv.Atoi(idParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		cacheKey := "product:" + idParam
		if config.RedisClient != nil {
			if cached, err := config.RedisClient.Get(c.Request.Context(), cacheKey).Result(); err == nil {
				var product models.Product
				if err := json.Unmarshal([]byte(cached), &product); err == nil {
					c.JSON(http.StatusOK, product)
					return
				}
			}
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		if !product.IsActive {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or is not active"})
			return
		}

		if config.RedisClient != nil {
			if data, err := json.Marshal(product); err == nil {
				config.RedisClient.Set(c.Request.Context(), cacheKey, data, productCacheTTL)
			}
		}

		c.JSON(http.StatusOK, product)
	}
}
