package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/limat-tech/voicebot/middleware"
	"github.com/limat-tech/voicebot/models"
	cartService "github.com/limat-tech/voicebot/services/cart"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartLineResponse struct {
	CartItemID uint            `json:"cart_item_id"`
	ProductID  uint            `json:"product_id"`
	NameEN     string          `json:"name_en"`
	NameAR     string          `json:"name_ar"`
	Price      decimal.Decimal `json:"price_per_unit"`
	Quantity   int             `json:"quantity"`
	UnitType   string          `json:"unit_type,omitempty"`
	ImageURL   string          `json:"image_url,omitempty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// POST /api/cart/add
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item, err := cartService.AddItem(db, customerID, input.ProductID, input.Quantity)
		if err != nil {
			status, msg := cartErrorStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Item added to cart",
			"cart_item": gin.H{
				"cart_item_id": item.ID,
				"product_id":   item.ProductID,
				"product_name": item.Product.NameEN,
				"quantity":     item.Quantity,
				"cart_id":      item.CartID,
			},
		})
	}
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		err := db.Preload("Items.Product").Where("customer_id = ?", customerID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"message":     "Your shopping cart is empty",
				"items":       []cartLineResponse{},
				"total_price": decimal.Zero,
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		lines := make([]cartLineResponse, 0, len(cart.Items))
		total := decimal.Zero
		for _, item := range cart.Items {
			subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			lines = append(lines, cartLineResponse{
				CartItemID: item.ID,
				ProductID:  item.ProductID,
				NameEN:     item.Product.NameEN,
				NameAR:     item.Product.NameAR,
				Price:      item.Product.Price,
				Quantity:   item.Quantity,
				UnitType:   item.Product.UnitType,
				ImageURL:   item.Product.ImageURL,
				Subtotal:   subtotal,
			})
			total = total.Add(subtotal)
		}

		c.JSON(http.StatusOK, gin.H{
			"cart_id":     cart.ID,
			"customer_id": cart.CustomerID,
			"items":       lines,
			"total_price": total,
		})
	}
}

// PUT /api/cart/items/:id — quantity 0 removes the line.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "New quantity is required in JSON body"})
			return
		}
		if *input.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity cannot be negative"})
			return
		}

		item, err := cartService.UpdateItemQuantity(db, customerID, uint(itemID), *input.Quantity)
		if err != nil {
			status, msg := cartErrorStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		if item == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed as quantity set to 0"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Cart item updated",
			"cart_item": gin.H{
				"cart_item_id": item.ID,
				"product_id":   item.ProductID,
				"product_name": item.Product.NameEN,
				"quantity":     item.Quantity,
				"cart_id":      item.CartID,
			},
		})
	}
}

// DELETE /api/cart/items/:id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		if err := cartService.RemoveItem(db, customerID, uint(itemID)); err != nil {
			status, msg := cartErrorStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed successfully"})
	}
}

func cartErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, cartService.ErrProductNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, cartService.ErrCartItemNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, cartService.ErrNotCartOwner):
		return http.StatusForbidden, "This item does not belong to your cart"
	case errors.Is(err, cartService.ErrProductUnavailable),
		errors.Is(err, cartService.ErrInsufficientStock):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "An error occurred while updating the cart"
	}
}
