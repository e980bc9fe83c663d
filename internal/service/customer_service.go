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
)

type CustomerService struct {
	customerRepo *repository.CustomerRepository
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{
		customerRepo: repository.NewCustomerRepository(db),
	}
}

type CreateCustomerRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type UpdateCustomerRequest struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*model.Customer, error) {
	count, err := s.customerRepo.CountByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Internal(err, "check customer email failed")
	}
	if count > 0 {
		return nil, apperr.Conflict("customer with email %q already exists", req.Email)
	}

	customer := &model.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("customer with email %q already exists", req.Email)
		}
		return nil, apperr.Internal(err, "create customer failed")
	}

	slog.Info("customer created", "customer_id", customer.ID, "email", customer.Email)
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch customer failed")
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, p pagination.Params) (pagination.Page[*model.Customer], error) {
	page, err := s.customerRepo.List(ctx, p)
	if err != nil {
		return page, apperr.Classify(err, "list customers failed")
	}
	return page, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *UpdateCustomerRequest) (*model.Customer, error) {
	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch customer failed")
	}

	if req.Email != nil && *req.Email != existing.Email {
		count, err := s.customerRepo.CountByEmail(ctx, *req.Email)
		if err != nil {
			return nil, apperr.Internal(err, "check customer email failed")
		}
		if count > 0 {
			return nil, apperr.Conflict("customer with email %q already exists", *req.Email)
		}
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}

	if len(fields) > 0 {
		if err := s.customerRepo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("customer with email %q already exists", *req.Email)
			}
			return nil, apperr.Internal(err, "update customer failed")
		}
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Classify(err, "fetch customer failed")
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return apperr.Classify(err, "delete customer failed")
	}
	slog.Info("customer deleted", "customer_id", id)
	return nil
}
