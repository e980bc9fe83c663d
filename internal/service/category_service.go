package service

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/internal/repository"
	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
	"orderledger/pkg/slug"
)

// Category and ProductCategory keep separate services over separate tables;
// both follow the same unique-name plus name-derived-slug rules.

type CreateCategoryRequest struct {
	Name        string
	Description string
}

type UpdateCategoryRequest struct {
	Name        *string
	Description *string
}

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{
		categoryRepo: repository.NewCategoryRepository(db),
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*model.Category, error) {
	count, err := s.categoryRepo.CountByName(ctx, req.Name)
	if err != nil {
		return nil, apperr.Internal(err, "check category name failed")
	}
	if count > 0 {
		return nil, apperr.Conflict("category with name %q already exists", req.Name)
	}

	categorySlug := slug.Make(req.Name)
	taken, err := s.categoryRepo.CountBySlugPrefix(ctx, categorySlug)
	if err != nil {
		return nil, apperr.Internal(err, "check category slug failed")
	}
	if taken > 0 {
		categorySlug = slug.MakeUnique(req.Name)
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        categorySlug,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("category with name %q already exists", req.Name)
		}
		return nil, apperr.Internal(err, "create category failed")
	}

	slog.Info("category created", "category_id", category.ID, "slug", category.Slug)
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch category failed")
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, p pagination.Params) (pagination.Page[*model.Category], error) {
	page, err := s.categoryRepo.List(ctx, p)
	if err != nil {
		return page, apperr.Classify(err, "list categories failed")
	}
	return page, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*model.Category, error) {
	existing, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch category failed")
	}

	if req.Name != nil && *req.Name != existing.Name {
		count, err := s.categoryRepo.CountByName(ctx, *req.Name)
		if err != nil {
			return nil, apperr.Internal(err, "check category name failed")
		}
		if count > 0 {
			return nil, apperr.Conflict("category with name %q already exists", *req.Name)
		}
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(fields) > 0 {
		if err := s.categoryRepo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("category with name %q already exists", *req.Name)
			}
			return nil, apperr.Internal(err, "update category failed")
		}
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch category failed")
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return apperr.Classify(err, "delete category failed")
	}
	slog.Info("category deleted", "category_id", id)
	return nil
}

type ProductCategoryService struct {
	productCategoryRepo *repository.ProductCategoryRepository
}

func NewProductCategoryService(db *gorm.DB) *ProductCategoryService {
	return &ProductCategoryService{
		productCategoryRepo: repository.NewProductCategoryRepository(db),
	}
}

func (s *ProductCategoryService) CreateProductCategory(ctx context.Context, req *CreateCategoryRequest) (*model.ProductCategory, error) {
	count, err := s.productCategoryRepo.CountByName(ctx, req.Name)
	if err != nil {
		return nil, apperr.Internal(err, "check product category name failed")
	}
	if count > 0 {
		return nil, apperr.Conflict("product category with name %q already exists", req.Name)
	}

	categorySlug := slug.Make(req.Name)
	taken, err := s.productCategoryRepo.CountBySlugPrefix(ctx, categorySlug)
	if err != nil {
		return nil, apperr.Internal(err, "check product category slug failed")
	}
	if taken > 0 {
		categorySlug = slug.MakeUnique(req.Name)
	}

	category := &model.ProductCategory{
		Name:        req.Name,
		Slug:        categorySlug,
		Description: req.Description,
	}
	if err := s.productCategoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("product category with name %q already exists", req.Name)
		}
		return nil, apperr.Internal(err, "create product category failed")
	}

	slog.Info("product category created", "product_category_id", category.ID, "slug", category.Slug)
	return category, nil
}

func (s *ProductCategoryService) GetProductCategory(ctx context.Context, id string) (*model.ProductCategory, error) {
	category, err := s.productCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch product category failed")
	}
	return category, nil
}

func (s *ProductCategoryService) ListProductCategories(ctx context.Context, p pagination.Params) (pagination.Page[*model.ProductCategory], error) {
	page, err := s.productCategoryRepo.List(ctx, p)
	if err != nil {
		return page, apperr.Classify(err, "list product categories failed")
	}
	return page, nil
}

func (s *ProductCategoryService) UpdateProductCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*model.ProductCategory, error) {
	existing, err := s.productCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch product category failed")
	}

	if req.Name != nil && *req.Name != existing.Name {
		count, err := s.productCategoryRepo.CountByName(ctx, *req.Name)
		if err != nil {
			return nil, apperr.Internal(err, "check product category name failed")
		}
		if count > 0 {
			return nil, apperr.Conflict("product category with name %q already exists", *req.Name)
		}
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(fields) > 0 {
		if err := s.productCategoryRepo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("product category with name %q already exists", *req.Name)
			}
			return nil, apperr.Internal(err, "update product category failed")
		}
	}

	category, err := s.productCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch product category failed")
	}
	return category, nil
}

func (s *ProductCategoryService) DeleteProductCategory(ctx context.Context, id string) error {
	if err := s.productCategoryRepo.Delete(ctx, id); err != nil {
		return apperr.Classify(err, "delete product category failed")
	}
	slog.Info("product category deleted", "product_category_id", id)
	return nil
}
