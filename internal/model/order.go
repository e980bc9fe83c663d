package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a customer's request for a quantity of a product, uniquely
// labeled. TransactionID is filled in by the same unit of work that creates
// the order, so a committed order always carries its transaction.
type Order struct {
	ID            string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Label         string  `gorm:"type:varchar(150);uniqueIndex;not null" json:"label"`
	CustomerID    string  `gorm:"type:varchar(36);index;not null" json:"customer_id"`
	ProductID     string  `gorm:"type:varchar(36);index;not null" json:"product_id"`
	Quantity      int64   `gorm:"not null" json:"total"`
	Description   string  `gorm:"type:varchar(255)" json:"description,omitempty"`
	TransactionID *string `gorm:"type:varchar(36);uniqueIndex" json:"transaction_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Customer    *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Product     *Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
