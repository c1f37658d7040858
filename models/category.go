package models

type Category struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"category_id"`
	NameEN           string    `gorm:"size:100;not null" json:"name_en"`
	NameAR           string    `gorm:"size:100" json:"name_ar"`
	ParentCategoryID *uint     `json:"parent_category_id,omitempty"` // self-reference for subcategories
	Products         []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
