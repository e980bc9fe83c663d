package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderledger/internal/config"
	"orderledger/internal/infrastructure/lock"
	"orderledger/internal/model"
	"orderledger/internal/repository"
	"orderledger/pkg/apperr"
	"orderledger/pkg/idgen"
	"orderledger/pkg/pagination"
)

// PaymentService is the ledger: it appends payment records to a transaction
// and keeps paid/due/status consistent with them.
//
// Concurrent appends against the same transaction are a read-modify-write
// hazard, so the balance write is a guarded in-place increment issued under
// a row lock; two appends can never both apply against the same old balance.
// The redis lock in front is only a serialization fast path.
type PaymentService struct {
	db                *gorm.DB
	redisClient       *redis.Client
	cfg               *config.Config
	transactionRepo   *repository.TransactionRepository
	paymentRecordRepo *repository.PaymentRecordRepository
	outboxRepo        *repository.OutboxRepository
}

func NewPaymentService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *PaymentService {
	return &PaymentService{
		db:                db,
		redisClient:       redisClient,
		cfg:               cfg,
		transactionRepo:   repository.NewTransactionRepository(db),
		paymentRecordRepo: repository.NewPaymentRecordRepository(db),
		outboxRepo:        repository.NewOutboxRepository(db),
	}
}

// AppendPayment records one payment against a transaction and recomputes
// its balance and status in the same unit of work. Overpayment is rejected:
// a payment larger than the remaining due never enters the ledger.
func (s *PaymentService) AppendPayment(ctx context.Context, transactionID string, amount int64) (*model.PaymentRecord, error) {
	if amount <= 0 {
		return nil, apperr.Invalid("payment amount must be positive")
	}

	if s.redisClient != nil {
		paymentLock := lock.NewPaymentLock(s.redisClient, transactionID, uuid.NewString())
		if err := paymentLock.Lock(ctx, 100*time.Millisecond, 30); err != nil {
			return nil, apperr.Internal(err, "acquire payment lock failed")
		}
		defer func() {
			if err := paymentLock.Unlock(ctx); err != nil {
				slog.Warn("release payment lock failed, key held until expiry",
					"transaction_id", transactionID, "error", err)
			}
		}()
	}

	var (
		record *model.PaymentRecord
		trans  *model.Transaction
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		trans, err = s.transactionRepo.GetByIDForUpdate(ctx, tx, transactionID)
		if err != nil {
			return err
		}

		if amount > trans.AmountDue {
			return apperr.Invalid("payment of %d exceeds amount due %d", amount, trans.AmountDue)
		}

		record = &model.PaymentRecord{
			ReferenceNo:   idgen.GeneratePaymentNo(),
			TransactionID: transactionID,
			Amount:        amount,
		}
		if err := s.paymentRecordRepo.Create(ctx, tx, record); err != nil {
			return err
		}

		newStatus := model.DeriveTransactionStatus(trans.AmountPaid+amount, trans.TotalAmount)
		if err := s.transactionRepo.ApplyPayment(ctx, tx, transactionID, amount, trans.Version, newStatus); err != nil {
			return err
		}
		trans.AmountPaid += amount
		trans.AmountDue -= amount
		trans.Status = newStatus

		return s.writePaymentRecordedEvent(ctx, tx, record, trans)
	})
	if err != nil {
		if errors.Is(err, repository.ErrStaleBalance) {
			return nil, apperr.Conflict("transaction %s balance changed concurrently, retry", transactionID)
		}
		return nil, apperr.Classify(err, "append payment failed")
	}

	slog.Info("payment recorded",
		"transaction_id", transactionID,
		"payment_id", record.ID,
		"amount", amount,
		"amount_paid", trans.AmountPaid,
		"amount_due", trans.AmountDue,
		"status", trans.Status,
	)
	return record, nil
}

// ListPayments pages through a transaction's payment records, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, transactionID string, p pagination.Params) (pagination.Page[*model.PaymentRecord], error) {
	var page pagination.Page[*model.PaymentRecord]

	exists, err := s.transactionRepo.Exists(ctx, transactionID)
	if err != nil {
		return page, apperr.Internal(err, "check transaction failed")
	}
	if !exists {
		return page, apperr.NotFound("transaction with id %s not found", transactionID)
	}

	page, err = s.paymentRecordRepo.ListByTransactionID(ctx, transactionID, p)
	if err != nil {
		return page, apperr.Classify(err, "list payment records failed")
	}
	return page, nil
}

func (s *PaymentService) writePaymentRecordedEvent(ctx context.Context, tx *gorm.DB, record *model.PaymentRecord, trans *model.Transaction) error {
	payload, err := json.Marshal(map[string]interface{}{
		"payment_id":     record.ID,
		"reference_no":   record.ReferenceNo,
		"transaction_id": trans.ID,
		"amount":         record.Amount,
		"amount_paid":    trans.AmountPaid,
		"amount_due":     trans.AmountDue,
		"status":         trans.Status,
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.Create(ctx, tx, &model.OutboxMessage{
		MessageKey: trans.ID,
		Topic:      s.cfg.Kafka.Topic.PaymentRecorded,
		Payload:    string(payload),
		Status:     model.OutboxStatusPending,
	})
}
