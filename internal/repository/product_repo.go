package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("ProductCategory").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product with id %s not found", id)
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDForUpdate reads the product through tx with a row lock, so a
// total derived from its price stays consistent with the unit of work
// deriving it.
func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.Product, error) {
	var product model.Product
	err := lockForUpdate(tx.WithContext(ctx)).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product with id %s not found", id)
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) CountByName(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("name = ?", name).
		Count(&count).Error
	return count, err
}

// CountBySlugPrefix backs the slug collision fast path: any existing slug
// starting with the base slug counts as a collision.
func (r *ProductRepository) CountBySlugPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("slug LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

func (r *ProductRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product with id %s not found", id)
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[*model.Product], error) {
	p.Normalize()

	var page pagination.Page[*model.Product]
	cursorAt, err := cursorTime(ctx, r.db, &model.Product{}, p.Cursor)
	if err != nil {
		return page, err
	}

	query := r.db.WithContext(ctx).Model(&model.Product{})
	if p.Search != "" {
		query = query.Where("name LIKE ?", "%"+p.Search+"%")
	}

	var products []*model.Product
	err = query.
		Scopes(pagination.Scope("products", cursorAt, p.Cursor)).
		Limit(p.Limit + 1).
		Preload("ProductCategory").
		Find(&products).Error
	if err != nil {
		return page, err
	}

	return pagination.Cut(products, p.Limit, func(pr *model.Product) string { return pr.ID }), nil
}
