package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"orderledger/internal/config"
	"orderledger/internal/model"
	"orderledger/internal/repository"
	"orderledger/pkg/apperr"
	"orderledger/pkg/idgen"
	"orderledger/pkg/pagination"
)

// OrderService governs the order/transaction pair: the two rows are created
// together and deleted together, never one without the other.
type OrderService struct {
	db                *gorm.DB
	cfg               *config.Config
	orderRepo         *repository.OrderRepository
	transactionRepo   *repository.TransactionRepository
	paymentRecordRepo *repository.PaymentRecordRepository
	productRepo       *repository.ProductRepository
	outboxRepo        *repository.OutboxRepository
}

func NewOrderService(db *gorm.DB, cfg *config.Config) *OrderService {
	return &OrderService{
		db:                db,
		cfg:               cfg,
		orderRepo:         repository.NewOrderRepository(db),
		transactionRepo:   repository.NewTransactionRepository(db),
		paymentRecordRepo: repository.NewPaymentRecordRepository(db),
		productRepo:       repository.NewProductRepository(db),
		outboxRepo:        repository.NewOutboxRepository(db),
	}
}

type CreateOrderRequest struct {
	Label       string
	CustomerID  string
	ProductID   string
	Quantity    int64
	Description string
}

type UpdateOrderRequest struct {
	Label       *string
	CustomerID  *string
	ProductID   *string
	Quantity    *int64
	Description *string
}

// CreateOrder creates the order together with its transaction. The
// transaction's total is the product price times the ordered quantity, its
// balance starts fully due. Everything commits as one unit: a label
// conflict, missing product or write failure leaves neither row behind.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*model.Order, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Invalid("order quantity must be positive")
	}

	// fast path; the unique index on label is the real guarantee
	count, err := s.orderRepo.CountByLabel(ctx, req.Label)
	if err != nil {
		return nil, apperr.Internal(err, "check order label failed")
	}
	if count > 0 {
		return nil, apperr.Conflict("order label %q is already used", req.Label)
	}

	order := &model.Order{
		Label:       req.Label,
		CustomerID:  req.CustomerID,
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Description: req.Description,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.GetByIDForUpdate(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}

		totalAmount := product.Price * req.Quantity
		trans := &model.Transaction{
			ReferenceNo: idgen.GenerateTransactionNo(),
			OrderID:     order.ID,
			TotalAmount: totalAmount,
			AmountPaid:  0,
			AmountDue:   totalAmount,
			Status:      model.TransactionStatusPending,
		}
		if err := s.transactionRepo.Create(ctx, tx, trans); err != nil {
			return err
		}

		if err := s.orderRepo.SetTransactionID(ctx, tx, order.ID, trans.ID); err != nil {
			return err
		}
		order.TransactionID = &trans.ID
		order.Transaction = trans

		return s.writeOrderCreatedEvent(ctx, tx, order, trans)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("order label %q is already used", req.Label)
		}
		return nil, apperr.Classify(err, "create order failed")
	}

	slog.Info("order created",
		"order_id", order.ID,
		"label", order.Label,
		"transaction_id", *order.TransactionID,
		"total_amount", order.Transaction.TotalAmount,
	)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch order failed")
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, p pagination.Params) (pagination.Page[*model.Order], error) {
	page, err := s.orderRepo.List(ctx, p)
	if err != nil {
		return page, apperr.Classify(err, "list orders failed")
	}
	return page, nil
}

// UpdateOrder applies a partial update to the order's non-financial fields.
// The transaction is never touched: a later quantity change does not reprice
// an already-derived total.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req *UpdateOrderRequest) (*model.Order, error) {
	existing, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch order failed")
	}

	if req.Label != nil && *req.Label != existing.Label {
		count, err := s.orderRepo.CountByLabel(ctx, *req.Label)
		if err != nil {
			return nil, apperr.Internal(err, "check order label failed")
		}
		if count > 0 {
			return nil, apperr.Conflict("order label %q is already used", *req.Label)
		}
	}

	fields := map[string]interface{}{}
	if req.Label != nil {
		fields["label"] = *req.Label
	}
	if req.CustomerID != nil {
		fields["customer_id"] = *req.CustomerID
	}
	if req.ProductID != nil {
		fields["product_id"] = *req.ProductID
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, apperr.Invalid("order quantity must be positive")
		}
		fields["quantity"] = *req.Quantity
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(fields) > 0 {
		if err := s.orderRepo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("order label %q is already used", *req.Label)
			}
			return nil, apperr.Internal(err, "update order failed")
		}
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch order failed")
	}
	return order, nil
}

// DeleteOrder removes the transaction and then the order as one unit.
// An order whose transaction already has payment records cannot be deleted;
// the payment history would be orphaned. An order whose transaction row is
// gone reports NotFound and deletes nothing.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if order.TransactionID == nil {
			return apperr.NotFound("transaction for order %s not found", id)
		}
		transactionID := *order.TransactionID

		// take the same row lock the ledger appends under, so a payment
		// cannot land between the existence check and the delete
		if _, err := s.transactionRepo.GetByIDForUpdate(ctx, tx, transactionID); err != nil {
			return err
		}

		count, err := s.paymentRecordRepo.CountByTransactionID(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("order %s has recorded payments and cannot be deleted", id)
		}

		// drop the order's reference first so the transaction row can go
		if err := s.orderRepo.ClearTransactionID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.transactionRepo.Delete(ctx, tx, transactionID); err != nil {
			return err
		}
		return s.orderRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return apperr.Classify(err, "delete order failed")
	}

	slog.Info("order deleted", "order_id", id)
	return nil
}

func (s *OrderService) writeOrderCreatedEvent(ctx context.Context, tx *gorm.DB, order *model.Order, trans *model.Transaction) error {
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":       order.ID,
		"label":          order.Label,
		"customer_id":    order.CustomerID,
		"product_id":     order.ProductID,
		"total":          order.Quantity,
		"transaction_id": trans.ID,
		"total_amount":   trans.TotalAmount,
		"status":         trans.Status,
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.Create(ctx, tx, &model.OutboxMessage{
		MessageKey: order.ID,
		Topic:      s.cfg.Kafka.Topic.OrderCreated,
		Payload:    string(payload),
		Status:     model.OutboxStatusPending,
	})
}
