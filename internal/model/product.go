package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product carries a unique name-derived slug. Price is in minor currency
// units; an order's transaction total is price times quantity.
type Product struct {
	ID                string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name              string  `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Slug              string  `gorm:"type:varchar(180);uniqueIndex;not null" json:"slug"`
	Price             int64   `gorm:"not null" json:"price"`
	Description       string  `gorm:"type:varchar(255)" json:"description,omitempty"`
	ProductCategoryID *string `gorm:"type:varchar(36);index" json:"product_category_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	ProductCategory *ProductCategory `gorm:"foreignKey:ProductCategoryID" json:"product_category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
