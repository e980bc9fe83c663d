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

type ProductService struct {
	productRepo *repository.ProductRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		productRepo: repository.NewProductRepository(db),
	}
}

type CreateProductRequest struct {
	Name              string
	Price             int64
	Description       string
	ProductCategoryID *string
}

type UpdateProductRequest struct {
	Name              *string
	Price             *int64
	Description       *string
	ProductCategoryID *string
}

// CreateProduct resolves the product's slug from its name: the base slug is
// used unless an existing slug shares it as a prefix, in which case a
// token-suffixed variant is taken instead. Residual collisions hit the
// unique index and surface as a conflict.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error) {
	if req.Price <= 0 {
		return nil, apperr.Invalid("product price must be positive")
	}

	count, err := s.productRepo.CountByName(ctx, req.Name)
	if err != nil {
		return nil, apperr.Internal(err, "check product name failed")
	}
	if count > 0 {
		return nil, apperr.Conflict("product with name %q already exists", req.Name)
	}

	productSlug := slug.Make(req.Name)
	taken, err := s.productRepo.CountBySlugPrefix(ctx, productSlug)
	if err != nil {
		return nil, apperr.Internal(err, "check product slug failed")
	}
	if taken > 0 {
		productSlug = slug.MakeUnique(req.Name)
	}

	product := &model.Product{
		Name:              req.Name,
		Slug:              productSlug,
		Price:             req.Price,
		Description:       req.Description,
		ProductCategoryID: req.ProductCategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("product with name %q already exists", req.Name)
		}
		return nil, apperr.Internal(err, "create product failed")
	}

	slog.Info("product created", "product_id", product.ID, "slug", product.Slug)
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch product failed")
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, p pagination.Params) (pagination.Page[*model.Product], error) {
	page, err := s.productRepo.List(ctx, p)
	if err != nil {
		return page, apperr.Classify(err, "list products failed")
	}
	return page, nil
}

// UpdateProduct changes only the supplied fields. The slug stays as minted
// at creation; renaming a product does not re-derive it.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*model.Product, error) {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch product failed")
	}

	if req.Name != nil && *req.Name != existing.Name {
		count, err := s.productRepo.CountByName(ctx, *req.Name)
		if err != nil {
			return nil, apperr.Internal(err, "check product name failed")
		}
		if count > 0 {
			return nil, apperr.Conflict("product with name %q already exists", *req.Name)
		}
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, apperr.Invalid("product price must be positive")
		}
		fields["price"] = *req.Price
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ProductCategoryID != nil {
		fields["product_category_id"] = *req.ProductCategoryID
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("product with name %q already exists", *req.Name)
			}
			return nil, apperr.Internal(err, "update product failed")
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch product failed")
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return apperr.Classify(err, "delete product failed")
	}
	slog.Info("product deleted", "product_id", id)
	return nil
}
