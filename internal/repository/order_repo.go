package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Product").
		Preload("Transaction").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order with id %s not found", id)
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate locks the order row inside tx so a dependent delete sees
// a stable transaction reference.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.Order, error) {
	var order model.Order
	err := lockForUpdate(tx.WithContext(ctx)).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order with id %s not found", id)
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) CountByLabel(ctx context.Context, label string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("label = ?", label).
		Count(&count).Error
	return count, err
}

// SetTransactionID links the order to its transaction within the creating
// unit of work.
func (r *OrderRepository) SetTransactionID(ctx context.Context, tx *gorm.DB, orderID, transactionID string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("transaction_id", transactionID).Error
}

// ClearTransactionID drops the order's transaction reference ahead of a
// dependent delete, so the order never points at a removed transaction row
// even mid-transaction.
func (r *OrderRepository) ClearTransactionID(ctx context.Context, tx *gorm.DB, orderID string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("transaction_id", nil).Error
}

// UpdateFields applies a partial update; only the supplied columns change.
func (r *OrderRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *OrderRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("order with id %s not found", id)
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[*model.Order], error) {
	p.Normalize()

	var page pagination.Page[*model.Order]
	cursorAt, err := cursorTime(ctx, r.db, &model.Order{}, p.Cursor)
	if err != nil {
		return page, err
	}

	query := r.db.WithContext(ctx).Model(&model.Order{})
	if p.Search != "" {
		pattern := "%" + p.Search + "%"
		query = query.
			Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
			Joins("LEFT JOIN products ON products.id = orders.product_id").
			Where("orders.label LIKE ? OR customers.name LIKE ? OR products.name LIKE ?",
				pattern, pattern, pattern)
	}

	var orders []*model.Order
	err = query.
		Scopes(pagination.Scope("orders", cursorAt, p.Cursor)).
		Limit(p.Limit + 1).
		Preload("Customer").
		Preload("Product").
		Preload("Transaction").
		Find(&orders).Error
	if err != nil {
		return page, err
	}

	return pagination.Cut(orders, p.Limit, func(o *model.Order) string { return o.ID }), nil
}
