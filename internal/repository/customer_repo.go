package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("customer with id %s not found", id)
		}
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("email = ?", email).
		Count(&count).Error
	return count, err
}

func (r *CustomerRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("customer with id %s not found", id)
	}
	return nil
}

func (r *CustomerRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[*model.Customer], error) {
	p.Normalize()

	var page pagination.Page[*model.Customer]
	cursorAt, err := cursorTime(ctx, r.db, &model.Customer{}, p.Cursor)
	if err != nil {
		return page, err
	}

	query := r.db.WithContext(ctx).Model(&model.Customer{})
	if p.Search != "" {
		pattern := "%" + p.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var customers []*model.Customer
	err = query.
		Scopes(pagination.Scope("customers", cursorAt, p.Cursor)).
		Limit(p.Limit + 1).
		Find(&customers).Error
	if err != nil {
		return page, err
	}

	return pagination.Cut(customers, p.Limit, func(c *model.Customer) string { return c.ID }), nil
}
