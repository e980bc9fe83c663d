package handler

import (
	"github.com/gin-gonic/gin"

	"orderledger/internal/service"
	"orderledger/pkg/pagination"
	"orderledger/pkg/response"
)

type CreateProductRequest struct {
	Name              string  `json:"name" binding:"required,max=150"`
	Price             int64   `json:"price" binding:"required,gt=0"`
	Description       string  `json:"description"`
	ProductCategoryID *string `json:"product_category_id"`
}

type UpdateProductRequest struct {
	Name              *string `json:"name"`
	Price             *int64  `json:"price"`
	Description       *string `json:"description"`
	ProductCategoryID *string `json:"product_category_id"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ============================================================
// Products
// ============================================================

// ListProducts
// GET /api/v1/products
func (h *Handler) ListProducts(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ParamError(c, "invalid query parameters: "+err.Error())
		return
	}

	page, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, page)
}

// GetProduct
// GET /api/v1/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, product)
}

// CreateProduct
// POST /api/v1/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductRequest{
		Name:              req.Name,
		Price:             req.Price,
		Description:       req.Description,
		ProductCategoryID: req.ProductCategoryID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, product)
}

// UpdateProduct
// PUT /api/v1/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &service.UpdateProductRequest{
		Name:              req.Name,
		Price:             req.Price,
		Description:       req.Description,
		ProductCategoryID: req.ProductCategoryID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, product)
}

// DeleteProduct
// DELETE /api/v1/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"id": id})
}

// ============================================================
// Categories
// ============================================================

// ListCategories
// GET /api/v1/categories
func (h *Handler) ListCategories(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ParamError(c, "invalid query parameters: "+err.Error())
		return
	}

	page, err := h.categoryService.ListCategories(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, page)
}

// GetCategory
// GET /api/v1/categories/:id
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, category)
}

// CreateCategory
// POST /api/v1/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &service.CreateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, category)
}

// UpdateCategory
// PUT /api/v1/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), &service.UpdateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, category)
}

// DeleteCategory
// DELETE /api/v1/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"id": id})
}

// ============================================================
// Product categories
// ============================================================

// ListProductCategories
// GET /api/v1/product-categories
func (h *Handler) ListProductCategories(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ParamError(c, "invalid query parameters: "+err.Error())
		return
	}

	page, err := h.productCategoryService.ListProductCategories(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, page)
}

// GetProductCategory
// GET /api/v1/product-categories/:id
func (h *Handler) GetProductCategory(c *gin.Context) {
	category, err := h.productCategoryService.GetProductCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, category)
}

// CreateProductCategory
// POST /api/v1/product-categories
func (h *Handler) CreateProductCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	category, err := h.productCategoryService.CreateProductCategory(c.Request.Context(), &service.CreateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, category)
}

// UpdateProductCategory
// PUT /api/v1/product-categories/:id
func (h *Handler) UpdateProductCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	category, err := h.productCategoryService.UpdateProductCategory(c.Request.Context(), c.Param("id"), &service.UpdateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, category)
}

// DeleteProductCategory
// DELETE /api/v1/product-categories/:id
func (h *Handler) DeleteProductCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.productCategoryService.DeleteProductCategory(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"id": id})
}
