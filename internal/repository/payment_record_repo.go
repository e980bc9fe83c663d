package repository

import (
	"context"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/pkg/pagination"
)

type PaymentRecordRepository struct {
	db *gorm.DB
}

func NewPaymentRecordRepository(db *gorm.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{db: db}
}

func (r *PaymentRecordRepository) Create(ctx context.Context, tx *gorm.DB, record *model.PaymentRecord) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(record).Error
}

func (r *PaymentRecordRepository) CountByTransactionID(ctx context.Context, tx *gorm.DB, transactionID string) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	var count int64
	err := tx.WithContext(ctx).
		Model(&model.PaymentRecord{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error
	return count, err
}

func (r *PaymentRecordRepository) ListByTransactionID(ctx context.Context, transactionID string, p pagination.Params) (pagination.Page[*model.PaymentRecord], error) {
	p.Normalize()

	var page pagination.Page[*model.PaymentRecord]
	cursorAt, err := cursorTime(ctx, r.db, &model.PaymentRecord{}, p.Cursor)
	if err != nil {
		return page, err
	}

	query := r.db.WithContext(ctx).
		Model(&model.PaymentRecord{}).
		Where("transaction_id = ?", transactionID)
	if p.Search != "" {
		query = query.Where("reference_no LIKE ?", "%"+p.Search+"%")
	}

	var records []*model.PaymentRecord
	err = query.
		Scopes(pagination.Scope("payment_records", cursorAt, p.Cursor)).
		Limit(p.Limit + 1).
		Find(&records).Error
	if err != nil {
		return page, err
	}

	return pagination.Cut(records, p.Limit, func(rec *model.PaymentRecord) string { return rec.ID }), nil
}
