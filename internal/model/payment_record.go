package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRecord is one payment applied to a transaction. Records are
// append-only: they are never updated or deleted, so the payment history of
// a transaction stays auditable.
type PaymentRecord struct {
	ID            string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ReferenceNo   string `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference_no"`
	TransactionID string `gorm:"type:varchar(36);index;not null" json:"transaction_id"`
	Amount        int64  `gorm:"not null" json:"amount"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}

func (p *PaymentRecord) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
