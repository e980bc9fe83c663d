package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
)

// ErrStaleBalance reports that a guarded balance write matched no row:
// another writer got in between the locked read and the update.
var ErrStaleBalance = errors.New("transaction balance changed concurrently")

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *gorm.DB, trans *model.Transaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(trans).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	var trans model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("PaymentRecords").
		Where("id = ?", id).
		First(&trans).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction with id %s not found", id)
		}
		return nil, err
	}
	return &trans, nil
}

func (r *TransactionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// GetByIDForUpdate locks the transaction row for the duration of tx. The
// payment ledger reads balances under this lock so concurrent appends
// serialize instead of losing updates.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.Transaction, error) {
	var trans model.Transaction
	err := lockForUpdate(tx.WithContext(ctx)).
		Where("id = ?", id).
		First(&trans).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction with id %s not found", id)
		}
		return nil, err
	}
	return &trans, nil
}

// ApplyPayment moves amount from due to paid as a single guarded update.
// The increments are expressed against the columns themselves and the guard
// re-checks balance and version, so a plain read-modify-write can never be
// the mechanism that settles a transaction.
func (r *TransactionRepository) ApplyPayment(ctx context.Context, tx *gorm.DB, id string, amount int64, version int, newStatus string) error {
	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ? AND amount_due >= ? AND version = ?", id, amount, version).
		Updates(map[string]interface{}{
			"amount_paid": gorm.Expr("amount_paid + ?", amount),
			"amount_due":  gorm.Expr("amount_due - ?", amount),
			"status":      newStatus,
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleBalance
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("transaction with id %s not found", id)
	}
	return nil
}

func (r *TransactionRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[*model.Transaction], error) {
	p.Normalize()

	var page pagination.Page[*model.Transaction]
	cursorAt, err := cursorTime(ctx, r.db, &model.Transaction{}, p.Cursor)
	if err != nil {
		return page, err
	}

	query := r.db.WithContext(ctx).Model(&model.Transaction{})
	if p.Search != "" {
		query = query.Where("reference_no LIKE ?", "%"+p.Search+"%")
	}

	var transactions []*model.Transaction
	err = query.
		Scopes(pagination.Scope("transactions", cursorAt, p.Cursor)).
		Limit(p.Limit + 1).
		Preload("Order").
		Find(&transactions).Error
	if err != nil {
		return page, err
	}

	return pagination.Cut(transactions, p.Limit, func(t *model.Transaction) string { return t.ID }), nil
}
