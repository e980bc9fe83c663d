package handler

import (
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"orderledger/internal/config"
	"orderledger/internal/service"
)

// Handler aggregates every service behind the HTTP surface.
type Handler struct {
	orderService           *service.OrderService
	paymentService         *service.PaymentService
	transactionService     *service.TransactionService
	customerService        *service.CustomerService
	productService         *service.ProductService
	categoryService        *service.CategoryService
	productCategoryService *service.ProductCategoryService
}

func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Handler {
	return &Handler{
		orderService:           service.NewOrderService(db, cfg),
		paymentService:         service.NewPaymentService(db, rdb, cfg),
		transactionService:     service.NewTransactionService(db),
		customerService:        service.NewCustomerService(db),
		productService:         service.NewProductService(db),
		categoryService:        service.NewCategoryService(db),
		productCategoryService: service.NewProductCategoryService(db),
	}
}
