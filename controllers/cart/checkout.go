package cartControllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/limat-tech/voicebot/events"
	"github.com/limat-tech/voicebot/middleware"
	"github.com/limat-tech/voicebot/services/checkout"
)

// POST /api/cart/checkout
func Checkout(db *gorm.DB, publisher *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result, err := checkout.Process(db, customerID)
		if err != nil {
			status := checkoutErrorStatus(err)
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		go publishOrderCreated(publisher, customerID, result)

		c.JSON(http.StatusCreated, gin.H{
			"message":      "Order placed successfully",
			"order_id":     result.OrderID,
			"total_amount": result.TotalAmount,
			"status":       result.Status,
		})
	}
}

func checkoutErrorStatus(err error) int {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrInsufficientStock),
		errors.Is(err, checkout.ErrProductUnavailable),
		errors.Is(err, checkout.ErrProductNotFound):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func publishOrderCreated(publisher *events.Publisher, customerID uint, result *checkout.Result) {
	evt := map[string]interface{}{
		"order_id":     result.OrderID,
		"customer_id":  customerID,
		"total_amount": result.TotalAmount,
		"status":       result.Status,
	}
	if err := publisher.Publish(context.Background(), "order.created", evt); err != nil {
		log.Printf("failed to publish order.created for order %d: %v", result.OrderID, err)
	}
}
