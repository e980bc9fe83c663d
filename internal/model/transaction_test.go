package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTransactionStatus(t *testing.T) {
	cases := []struct {
		name string
		paid int64
		want string
	}{
		{"nothing paid", 0, TransactionStatusPending},
		{"first unit paid", 1, TransactionStatusPartiallyPaid},
		{"almost settled", 99999, TransactionStatusPartiallyPaid},
		{"settled", 100000, TransactionStatusPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveTransactionStatus(tc.paid, 100000))
		})
	}
}
