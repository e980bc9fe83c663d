package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category and ProductCategory are separate tables with the same shape:
// a unique name plus a unique name-derived slug.

type Category struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"type:varchar(180);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:varchar(255)" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type ProductCategory struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"type:varchar(180);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:varchar(255)" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

func (c *ProductCategory) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
