package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"product_id"`
	NameEN        string          `gorm:"size:255;not null" json:"name_en"` // English name
	NameAR        string          `gorm:"size:255" json:"name_ar"`          // Arabic name
	DescriptionEN string          `gorm:"type:text" json:"description_en"`
	DescriptionAR string          `gorm:"type:text" json:"description_ar"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CategoryID    uint            `gorm:"not null;index" json:"category_id"`
	Brand         string          `gorm:"size:100" json:"brand,omitempty"`
	StockQuantity int             `gorm:"default:0" json:"stock_quantity"`
	UnitType      string          `gorm:"size:20" json:"unit_type,omitempty"` // e.g. "kg", "piece", "liter"
	ImageURL      string          `gorm:"size:500" json:"image_url,omitempty"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}
