package productControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/limat-tech/voicebot/models"
)

// SearchProducts searches active products in the requested language's name
// and description fields, returning bilingual results either way.
// GET /api/products/search?q=term&lang=en|ar
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search query parameter 'q' is required"})
			return
		}
		lang := strings.ToLower(c.DefaultQuery("lang", "en"))
		pattern := "%" + q + "%"

		query := db.Where("is_active = ?", true)
		if lang == "ar" {
			query = query.Where("name_ar ILIKE ? OR description_ar ILIKE ?", pattern, pattern)
		} else {
			query = query.Where("name_en ILIKE ? OR description_en ILIKE ?", pattern, pattern)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during product search"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}
