package handler

import (
	"github.com/gin-gonic/gin"

	"orderledger/internal/service"
	"orderledger/pkg/pagination"
	"orderledger/pkg/response"
)

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=150"`
	Email   string `json:"email" binding:"required,email,max=150"`
	Phone   string `json:"phone" binding:"max=20"`
	Address string `json:"address" binding:"max=255"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ListCustomers
// GET /api/v1/customers
func (h *Handler) ListCustomers(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ParamError(c, "invalid query parameters: "+err.Error())
		return
	}

	page, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, page)
}

// GetCustomer
// GET /api/v1/customers/:id
func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, customer)
}

// CreateCustomer
// POST /api/v1/customers
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, customer)
}

// UpdateCustomer
// PUT /api/v1/customers/:id
func (h *Handler) UpdateCustomer(c *gin.Context) {
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), &service.UpdateCustomerRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, customer)
}

// DeleteCustomer
// DELETE /api/v1/customers/:id
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"id": id})
}
