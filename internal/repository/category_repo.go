package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category with id %s not found", id)
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) CountByName(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("name = ?", name).
		Count(&count).Error
	return count, err
}

func (r *CategoryRepository) CountBySlugPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("slug LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

func (r *CategoryRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("category with id %s not found", id)
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[*model.Category], error) {
	p.Normalize()

	var page pagination.Page[*model.Category]
	cursorAt, err := cursorTime(ctx, r.db, &model.Category{}, p.Cursor)
	if err != nil {
		return page, err
	}

	query := r.db.WithContext(ctx).Model(&model.Category{})
	if p.Search != "" {
		query = query.Where("name LIKE ?", "%"+p.Search+"%")
	}

	var categories []*model.Category
	err = query.
		Scopes(pagination.Scope("categories", cursorAt, p.Cursor)).
		Limit(p.Limit + 1).
		Find(&categories).Error
	if err != nil {
		return page, err
	}

	return pagination.Cut(categories, p.Limit, func(c *model.Category) string { return c.ID }), nil
}
