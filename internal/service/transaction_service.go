package service

import (
	"context"

	"gorm.io/gorm"

	"orderledger/internal/model"
	"orderledger/internal/repository"
	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
)

// TransactionService is read-only: transactions come into existence with
// their order and change only through the payment ledger.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	trans, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch transaction failed")
	}
	return trans, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, p pagination.Params) (pagination.Page[*model.Transaction], error) {
	page, err := s.transactionRepo.List(ctx, p)
	if err != nil {
		return page, apperr.Classify(err, "list transactions failed")
	}
	return page, nil
}
