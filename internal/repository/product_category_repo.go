package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
)

type ProductCategoryRepository struct {
	db *gorm.DB
}

func NewProductCategoryRepository(db *gorm.DB) *ProductCategoryRepository {
	return &ProductCategoryRepository{db: db}
}

func (r *ProductCategoryRepository) Create(ctx context.Context, category *model.ProductCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *ProductCategoryRepository) GetByID(ctx context.Context, id string) (*model.ProductCategory, error) {
	var category model.ProductCategory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product category with id %s not found", id)
		}
		return nil, err
	}
	return &category, nil
}

func (r *ProductCategoryRepository) CountByName(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductCategory{}).
		Where("name = ?", name).
		Count(&count).Error
	return count, err
}

func (r *ProductCategoryRepository) CountBySlugPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductCategory{}).
		Where("slug LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

func (r *ProductCategoryRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.ProductCategory{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *ProductCategoryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product category with id %s not found", id)
	}
	return nil
}

func (r *ProductCategoryRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[*model.ProductCategory], error) {
	p.Normalize()

	var page pagination.Page[*model.ProductCategory]
	cursorAt, err := cursorTime(ctx, r.db, &model.ProductCategory{}, p.Cursor)
	if err != nil {
		return page, err
	}

	query := r.db.WithContext(ctx).Model(&model.ProductCategory{})
	if p.Search != "" {
		query = query.Where("name LIKE ?", "%"+p.Search+"%")
	}

	var categories []*model.ProductCategory
	err = query.
		Scopes(pagination.Scope("product_categories", cursorAt, p.Cursor)).
		Limit(p.Limit + 1).
		Find(&categories).Error
	if err != nil {
		return page, err
	}

	return pagination.Cut(categories, p.Limit, func(c *model.ProductCategory) string { return c.ID }), nil
}
