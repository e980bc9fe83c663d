package handler

import (
	"github.com/gin-gonic/gin"

	"orderledger/internal/service"
	"orderledger/pkg/pagination"
	"orderledger/pkg/response"
)

// CreateOrderRequest is the wire shape for order creation. Total is the
// ordered quantity; the money total is derived server-side from the product
// price.
type CreateOrderRequest struct {
	Label       string `json:"label" binding:"required"`
	CustomerID  string `json:"customer_id" binding:"required"`
	ProductID   string `json:"product_id" binding:"required"`
	Total       int64  `json:"total" binding:"required,gt=0"`
	Description string `json:"description"`
}

type UpdateOrderRequest struct {
	Label       *string `json:"label"`
	CustomerID  *string `json:"customer_id"`
	ProductID   *string `json:"product_id"`
	Total       *int64  `json:"total"`
	Description *string `json:"description"`
}

// ListOrders
// GET /api/v1/orders?limit=50&cursor=<id>&search=<text>
func (h *Handler) ListOrders(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ParamError(c, "invalid query parameters: "+err.Error())
		return
	}

	page, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, page)
}

// GetOrder
// GET /api/v1/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, order)
}

// CreateOrder
// POST /api/v1/orders
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderRequest{
		Label:       req.Label,
		CustomerID:  req.CustomerID,
		ProductID:   req.ProductID,
		Quantity:    req.Total,
		Description: req.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, order)
}

// UpdateOrder
// PUT /api/v1/orders/:id
func (h *Handler) UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("id"), &service.UpdateOrderRequest{
		Label:       req.Label,
		CustomerID:  req.CustomerID,
		ProductID:   req.ProductID,
		Quantity:    req.Total,
		Description: req.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, order)
}

// DeleteOrder
// DELETE /api/v1/orders/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"id": id})
}
