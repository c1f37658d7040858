package checkout

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/limat-tech/voicebot/models"
)

var (
	ErrEmptyCart          = errors.New("shopping cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is no longer available")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// Result describes a successfully placed order.
type Result struct {
	OrderID     uint               `json:"order_id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      models.OrderStatus `json:"status"`
}

// Process converts the customer's entire cart into a priced order, or fails
// leaving all state unchanged. Each referenced product row is locked FOR
// UPDATE for the duration of the transaction, so two concurrent checkouts
// (or a checkout racing an add-to-cart) can never oversell the same product.
func Process(db *gorm.DB, customerID uint) (*Result, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		var orderItems []models.OrderItem
		var locked []models.Product

		for _, item := range cart.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
				}
				return err
			}
			if !product.IsActive {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, product.NameEN)
			}
			if product.StockQuantity < item.Quantity {
				return fmt.Errorf("%w for %s: requested %d, available %d",
					ErrInsufficientStock, product.NameEN, item.Quantity, product.StockQuantity)
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID:       product.ID,
				Quantity:        item.Quantity,
				PriceAtPurchase: product.Price, // price snapshot, decoupled from live price
			})
			locked = append(locked, product)
		}

		order = models.Order{
			CustomerID:  customerID,
			TotalAmount: total,
			Status:      models.OrderStatusPending,
			Items:       orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i, product := range locked {
			newStock := product.StockQuantity - cart.Items[i].Quantity
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Update("stock_quantity", newStock).Error; err != nil {
				return err
			}
		}

		// The cart entity persists empty; only its lines are removed.
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		log.Printf("checkout failed for customer %d: %v", customerID, err)
		return nil, err
	}

	return &Result{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	}, nil
}
