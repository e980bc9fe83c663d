package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orderledger/internal/config"
	"orderledger/internal/infrastructure/database"
	"orderledger/internal/model"
)

// setupDB opens a throwaway sqlite database with the full schema. The
// services only need TranslateError so unique-index violations look the
// same as they do on MySQL.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "orderledger_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Kafka: config.KafkaConfig{
			Topic: config.KafkaTopicConfig{
				OrderCreated:    "test.order.created",
				PaymentRecorded: "test.payment.recorded",
			},
		},
		Business: config.BusinessConfig{MaxRetryCount: 3},
	}
}

// seedCustomerAndProduct creates the referenced rows an order needs.
func seedCustomerAndProduct(t *testing.T, db *gorm.DB, price int64) (*model.Customer, *model.Product) {
	t.Helper()
	ctx := context.Background()

	customer, err := NewCustomerService(db).CreateCustomer(ctx, &CreateCustomerRequest{
		Name:    "test customer",
		Email:   "customer-" + filepath.Base(t.TempDir()) + "@example.com",
		Phone:   "08123456789",
		Address: "Jl. Test No. 1",
	})
	require.NoError(t, err)

	product, err := NewProductService(db).CreateProduct(ctx, &CreateProductRequest{
		Name:  "test product " + filepath.Base(t.TempDir()),
		Price: price,
	})
	require.NoError(t, err)

	return customer, product
}

func countOutbox(t *testing.T, db *gorm.DB, topic string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.OutboxMessage{}).Where("topic = ?", topic).Count(&count).Error)
	return count
}
