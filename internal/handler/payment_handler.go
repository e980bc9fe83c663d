package handler

import (
	"github.com/gin-gonic/gin"

	"orderledger/pkg/pagination"
	"orderledger/pkg/response"
)

type CreatePaymentRecordRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
}

// CreatePaymentRecord appends a payment to a transaction's ledger.
// POST /api/v1/payments
func (h *Handler) CreatePaymentRecord(c *gin.Context) {
	var req CreatePaymentRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request body: "+err.Error())
		return
	}

	record, err := h.paymentService.AppendPayment(c.Request.Context(), req.TransactionID, req.Amount)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, record)
}

// ListPaymentRecords
// GET /api/v1/transactions/:id/payments?limit=50&cursor=<id>
func (h *Handler) ListPaymentRecords(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ParamError(c, "invalid query parameters: "+err.Error())
		return
	}

	page, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, page)
}

// ListTransactions
// GET /api/v1/transactions
func (h *Handler) ListTransactions(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ParamError(c, "invalid query parameters: "+err.Error())
		return
	}

	page, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, page)
}

// GetTransaction
// GET /api/v1/transactions/:id
func (h *Handler) GetTransaction(c *gin.Context) {
	trans, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, trans)
}
