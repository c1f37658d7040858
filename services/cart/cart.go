package cart

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/limat-tech/voicebot/models"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is currently unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrNotCartOwner       = errors.New("cart item does not belong to this customer")
)

// AddItem upserts a cart line for the customer: an existing line's quantity is
// increased, otherwise a new line is created. The product row is read under a
// FOR UPDATE lock so the stock check serializes against a concurrent checkout
// holding the same lock.
func AddItem(db *gorm.DB, customerID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	var item models.CartItem

	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrProductNotFound, productID)
			}
			return err
		}
		if !product.IsActive {
			return fmt.Errorf("%w: %s", ErrProductUnavailable, product.NameEN)
		}

		cart := models.Cart{CustomerID: customerID}
		if err := tx.Where("customer_id = ?", customerID).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
		switch {
		case err == nil:
			newQuantity := item.Quantity + quantity
			if product.StockQuantity < newQuantity {
				return fmt.Errorf("%w for %s: requested total %d, available %d",
					ErrInsufficientStock, product.NameEN, newQuantity, product.StockQuantity)
			}
			item.Quantity = newQuantity
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if product.StockQuantity < quantity {
				return fmt.Errorf("%w for %s: requested %d, available %d",
					ErrInsufficientStock, product.NameEN, quantity, product.StockQuantity)
			}
			item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		item.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity overwrites a cart line to an exact quantity; quantity 0
// removes the line. The line must belong to the calling customer's cart.
func UpdateItemQuantity(db *gorm.DB, customerID, cartItemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d", quantity)
	}

	var item models.CartItem

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, cartItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}
		if err := verifyOwnership(tx, customerID, item.CartID); err != nil {
			return err
		}

		if quantity == 0 {
			return tx.Delete(&item).Error
		}

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
		if product.StockQuantity < quantity {
			return fmt.Errorf("%w for %s: requested %d, available %d",
				ErrInsufficientStock, product.NameEN, quantity, product.StockQuantity)
		}

		item.Quantity = quantity
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		item.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, nil
	}
	return &item, nil
}

// RemoveItem deletes a cart line after verifying it belongs to the calling
// customer's cart.
func RemoveItem(db *gorm.DB, customerID, cartItemID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.First(&item, cartItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}
		if err := verifyOwnership(tx, customerID, item.CartID); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

func verifyOwnership(tx *gorm.DB, customerID, cartID uint) error {
	var cart models.Cart
	if err := tx.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotCartOwner
		}
		return err
	}
	if cart.ID != cartID {
		return ErrNotCartOwner
	}
	return nil
}
