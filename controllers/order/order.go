package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/limat-tech/voicebot/middleware"
	"github.com/limat-tech/voicebot/models"
)

type orderSummary struct {
	OrderID     uint               `json:"order_id"`
	OrderDate   time.Time          `json:"order_date"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      models.OrderStatus `json:"status"`
}

type orderLine struct {
	ProductName     string          `json:"product_name"`
	ProductNameAR   string          `json:"product_name_ar"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// GET /api/orders — newest first.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.Where("customer_id = ?", customerID).
			Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		summaries := make([]orderSummary, 0, len(orders))
		for _, o := range orders {
			summaries = append(summaries, orderSummary{
				OrderID:     o.ID,
				OrderDate:   o.CreatedAt,
				TotalAmount: o.TotalAmount,
				Status:      o.Status,
			})
		}
		c.JSON(http.StatusOK, summaries)
	}
}

// GET /api/orders/:id — detail with bilingual product names and the price
// snapshots taken at checkout time.
func GetOrderDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var order models.Order
		err := db.Preload("Items").
			Where("id = ? AND customer_id = ?", c.Param("id"), customerID).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		lines := make([]orderLine, 0, len(order.Items))
		for _, item := range order.Items {
			line := orderLine{
				Quantity:        item.Quantity,
				PriceAtPurchase: item.PriceAtPurchase,
				Subtotal:        item.Subtotal(),
			}

			var product models.Product
			if err := db.First(&product, item.ProductID).Error; err == nil {
				line.ProductName = product.NameEN
				line.ProductNameAR = product.NameAR
			} else {
				line.ProductName = "Unknown Product"
				line.ProductNameAR = "منتج غير معروف"
			}
			lines = append(lines, line)
		}

		c.JSON(http.StatusOK, gin.H{
			"order_id":     order.ID,
			"order_date":   order.CreatedAt,
			"total_amount": order.TotalAmount,
			"status":       order.Status,
			"items":        lines,
		})
	}
}
