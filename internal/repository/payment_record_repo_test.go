package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/pkg/apperr"
)

// The count backs delete-order's payments guard and must observe rows
// written earlier in the same unit of work, not a stale base-connection
// view.
func TestCountByTransactionIDReadsThroughTx(t *testing.T) {
	db := setupDB(t)
	repo := NewPaymentRecordRepository(db)
	ctx := context.Background()

	trans := seedTransaction(t, db, 100000)

	err := db.Transaction(func(tx *gorm.DB) error {
		record := &model.PaymentRecord{
			ReferenceNo:   "PAY-TEST-1",
			TransactionID: trans.ID,
			Amount:        40000,
		}
		require.NoError(t, repo.Create(ctx, tx, record))

		count, err := repo.CountByTransactionID(ctx, tx, trans.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
		return nil
	})
	require.NoError(t, err)
}

func TestCountByTransactionIDFallsBackToBaseConnection(t *testing.T) {
	db := setupDB(t)
	repo := NewPaymentRecordRepository(db)
	ctx := context.Background()

	trans := seedTransaction(t, db, 100000)
	require.NoError(t, repo.Create(ctx, nil, &model.PaymentRecord{
		ReferenceNo:   "PAY-TEST-2",
		TransactionID: trans.ID,
		Amount:        40000,
	}))

	count, err := repo.CountByTransactionID(ctx, nil, trans.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProductGetByIDForUpdate(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := &model.Product{
		Name:  "Locked Widget",
		Slug:  "locked-widget",
		Price: 25000,
	}
	require.NoError(t, repo.Create(ctx, product))

	err := db.Transaction(func(tx *gorm.DB) error {
		got, err := repo.GetByIDForUpdate(ctx, tx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(25000), got.Price)

		_, err = repo.GetByIDForUpdate(ctx, tx, "missing")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		return nil
	})
	require.NoError(t, err)
}
