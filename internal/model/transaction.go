package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionStatusPending       = "PENDING"
	TransactionStatusPartiallyPaid = "PARTIALLY_PAID"
	TransactionStatusPaid          = "PAID"
)

// DeriveTransactionStatus maps a transaction's balance onto its status.
// The mapping is total: amount_paid == 0 is PENDING, a settled balance is
// PAID, anything in between is PARTIALLY_PAID.
func DeriveTransactionStatus(amountPaid, totalAmount int64) string {
	switch {
	case amountPaid == 0:
		return TransactionStatusPending
	case amountPaid >= totalAmount:
		return TransactionStatusPaid
	default:
		return TransactionStatusPartiallyPaid
	}
}

// Transaction is the financial record derived from exactly one order.
//
// Balance invariants:
//  1. TotalAmount is set once at creation and never changes.
//  2. AmountPaid equals the sum of all payment records referencing this
//     transaction; it only grows.
//  3. AmountDue == TotalAmount - AmountPaid.
//
// Version is an optimistic-lock counter bumped on every balance write.
type Transaction struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ReferenceNo string `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference_no"`
	OrderID     string `gorm:"type:varchar(36);index;not null" json:"order_id"`
	TotalAmount int64  `gorm:"not null" json:"total_amount"`
	AmountPaid  int64  `gorm:"not null;default:0" json:"amount_paid"`
	AmountDue   int64  `gorm:"not null" json:"amount_due"`
	Status      string `gorm:"type:varchar(20);index;not null;default:PENDING" json:"status"`
	Version     int    `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Order          *Order          `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	PaymentRecords []PaymentRecord `gorm:"foreignKey:TransactionID" json:"payment_records,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
