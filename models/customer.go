package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement" json:"customer_id"`
	Name               string          `gorm:"size:100;not null" json:"name"`
	Email              string          `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash       string          `gorm:"size:255;not null" json:"-"`
	PhoneNumber        string          `gorm:"size:15" json:"phone_number,omitempty"`
	PreferredLanguage  string          `gorm:"size:2;default:'en'" json:"preferred_language"`
	StoreCreditBalance decimal.Decimal `gorm:"type:numeric(10,2);default:0.00" json:"store_credit_balance"`
	Cart               *Cart           `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Orders             []Order         `gorm:"foreignKey:CustomerID" json:"-"`
	CreatedAt          time.Time       `json:"created_at"`
}
