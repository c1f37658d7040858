package voice

import (
	"errors"

	"gorm.io/gorm"

	"github.com/limat-tech/voicebot/models"
	cartService "github.com/limat-tech/voicebot/services/cart"
	"github.com/limat-tech/voicebot/services/checkout"
)

// GormStore adapts the shared cart and checkout services to the Store
// interface the dialogue router expects.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindProductByName(name, lang string) (*models.Product, error) {
	column := "name_en"
	if lang == LangArabic {
		column = "name_ar"
	}

	var product models.Product
	err := s.db.Where("is_active = ?", true).
		Where(column+" ILIKE ?", "%"+name+"%").
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) AddToCart(customerID, productID uint, quantity int) error {
	_, err := cartService.AddItem(s.db, customerID, productID, quantity)
	return err
}

func (s *GormStore) Checkout(customerID uint) (*checkout.Result, error) {
	return checkout.Process(s.db, customerID)
}
