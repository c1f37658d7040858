package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/limat-tech/voicebot/config"
	"github.com/limat-tech/voicebot/models"
)

type ProductInput struct {
	NameEN        string          `json:"name_en" binding:"required"`
	NameAR        string          `json:"name_ar"`
	DescriptionEN string          `json:"description_en"`
	DescriptionAR string          `json:"description_ar"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	CategoryID    uint            `json:"category_id" binding:"required"`
	Brand         string          `json:"brand"`
	StockQuantity int             `json:"stock_quantity"`
	UnitType      string          `json:"unit_type"`
	ImageURL      string          `json:"image_url"`
}

type ProductUpdateInput struct {
	NameEN        *string          `json:"name_en"`
	NameAR        *string          `json:"name_ar"`
	DescriptionEN *string          `json:"description_en"`
	DescriptionAR *string          `json:"description_ar"`
	Price         *decimal.Decimal `json:"price"`
	Brand         *string          `json:"brand"`
	StockQuantity *int             `json:"stock_quantity"`
	UnitType      *string          `json:"unit_type"`
	ImageURL      *string          `json:"image_url"`
	IsActive      *bool            `json:"is_active"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category does not exist"})
			return
		}

		product := models.Product{
			NameEN:        input.NameEN,
			NameAR:        input.NameAR,
			DescriptionEN: input.DescriptionEN,
			DescriptionAR: input.DescriptionAR,
			Price:         input.Price,
			CategoryID:    input.CategoryID,
			Brand:         input.Brand,
			StockQuantity: input.StockQuantity,
			UnitType:      input.UnitType,
			ImageURL:      input.ImageURL,
			IsActive:      true,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.NameEN != nil {
			updates["name_en"] = *input.NameEN
		}
		if input.NameAR != nil {
			updates["name_ar"] = *input.NameAR
		}
		if input.DescriptionEN != nil {
			updates["description_en"] = *input.DescriptionEN
		}
		if input.DescriptionAR != nil {
			updates["description_ar"] = *input.DescriptionAR
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
				return
			}
			updates["price"] = *input.Price
		}
		if input.Brand != nil {
			updates["brand"] = *input.Brand
		}
		if input.StockQuantity != nil {
			if *input.StockQuantity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock_quantity cannot be negative"})
				return
			}
			updates["stock_quantity"] = *input.StockQuantity
		}
		if input.UnitType != nil {
			updates["unit_type"] = *input.UnitType
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
			invalidateProductCache(c, product.ID)
		}

		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products/:id — deactivates rather than deletes, so order
// history keeps its product references.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}

		if err := db.Model(&product).Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
			return
		}
		invalidateProductCache(c, product.ID)

		c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
	}
}

func invalidateProductCache(c *gin.Context, productID uint) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(c.Request.Context(), "product:"+strconv.FormatUint(uint64(productID), 10))
}
