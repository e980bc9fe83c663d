package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
)

// createOrderForPayment seeds an order whose transaction totals 100000.
func createOrderForPayment(t *testing.T, db *gorm.DB) (*model.Order, *PaymentService) {
	t.Helper()
	ctx := context.Background()
	cfg := testConfig()

	customer, product := seedCustomerAndProduct(t, db, 100000)
	order, err := NewOrderService(db, cfg).CreateOrder(ctx, &CreateOrderRequest{
		Label:      "ORD-PAY",
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   1,
	})
	require.NoError(t, err)

	return order, NewPaymentService(db, nil, cfg)
}

func TestAppendPaymentLedgerTransitions(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	svc := NewTransactionService(db)

	order, payments := createOrderForPayment(t, db)
	transactionID := *order.TransactionID

	// partial payment
	record, err := payments.AppendPayment(ctx, transactionID, 40000)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), record.Amount)
	assert.NotEmpty(t, record.ReferenceNo)

	trans, err := svc.GetTransaction(ctx, transactionID)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), trans.AmountPaid)
	assert.Equal(t, int64(60000), trans.AmountDue)
	assert.Equal(t, model.TransactionStatusPartiallyPaid, trans.Status)

	// settling payment
	_, err = payments.AppendPayment(ctx, transactionID, 60000)
	require.NoError(t, err)

	trans, err = svc.GetTransaction(ctx, transactionID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), trans.AmountPaid)
	assert.Equal(t, int64(0), trans.AmountDue)
	assert.Equal(t, model.TransactionStatusPaid, trans.Status)
	assert.Len(t, trans.PaymentRecords, 2)
}

func TestAppendPaymentRejectsOverpayment(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	order, payments := createOrderForPayment(t, db)
	transactionID := *order.TransactionID

	_, err := payments.AppendPayment(ctx, transactionID, 70000)
	require.NoError(t, err)

	// remaining due is 30000
	_, err = payments.AppendPayment(ctx, transactionID, 30001)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	// the rejected attempt left no record behind
	page, err := payments.ListPayments(ctx, transactionID, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	// paying the exact remainder settles
	_, err = payments.AppendPayment(ctx, transactionID, 30000)
	require.NoError(t, err)

	trans, err := NewTransactionService(db).GetTransaction(ctx, transactionID)
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusPaid, trans.Status)

	// a settled transaction takes no further payments
	_, err = payments.AppendPayment(ctx, transactionID, 1)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestAppendPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	order, payments := createOrderForPayment(t, db)

	_, err := payments.AppendPayment(ctx, *order.TransactionID, 0)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = payments.AppendPayment(ctx, *order.TransactionID, -500)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestAppendPaymentUnknownTransaction(t *testing.T) {
	db := setupDB(t)

	payments := NewPaymentService(db, nil, testConfig())
	_, err := payments.AppendPayment(context.Background(), "missing", 100)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAppendPaymentKeepsPaidEqualToRecordSum(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	order, payments := createOrderForPayment(t, db)
	transactionID := *order.TransactionID

	amounts := []int64{12500, 7500, 30000, 50000}
	for _, amount := range amounts {
		_, err := payments.AppendPayment(ctx, transactionID, amount)
		require.NoError(t, err)
	}

	trans, err := NewTransactionService(db).GetTransaction(ctx, transactionID)
	require.NoError(t, err)

	var sum int64
	for _, record := range trans.PaymentRecords {
		sum += record.Amount
	}
	assert.Equal(t, sum, trans.AmountPaid)
	assert.Equal(t, trans.TotalAmount, trans.AmountPaid+trans.AmountDue)
	assert.Equal(t, model.TransactionStatusPaid, trans.Status)

	assert.EqualValues(t, len(amounts), countOutbox(t, db, testConfig().Kafka.Topic.PaymentRecorded))
}

func TestListPaymentsUnknownTransaction(t *testing.T) {
	db := setupDB(t)

	payments := NewPaymentService(db, nil, testConfig())
	_, err := payments.ListPayments(context.Background(), "missing", pagination.Params{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListPaymentsPaginates(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	order, payments := createOrderForPayment(t, db)
	transactionID := *order.TransactionID

	for i := 0; i < 5; i++ {
		_, err := payments.AppendPayment(ctx, transactionID, 10000)
		require.NoError(t, err)
	}

	seen := map[string]int{}
	cursor := ""
	for {
		page, err := payments.ListPayments(ctx, transactionID, pagination.Params{Limit: 2, Cursor: cursor})
		require.NoError(t, err)
		for _, record := range page.Items {
			seen[record.ID]++
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	assert.Len(t, seen, 5)
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}
