package database

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orderledger/internal/config"
	"orderledger/internal/model"
)

// InitMySQL opens the MySQL connection, configures the pool and migrates
// the schema. TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func InitMySQL(cfg *config.MySQLConfig) *gorm.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)

	// orders and transactions reference each other, so constraint DDL
	// cannot be emitted in any table order; referential integrity is held
	// by the services' units of work instead.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		slog.Error("connect mysql failed", "error", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("get underlying sql.DB failed", "error", err)
		os.Exit(1)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		slog.Error("migrate schema failed", "error", err)
		os.Exit(1)
	}

	slog.Info("mysql connected", "host", cfg.Host, "database", cfg.Database)
	return db
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Customer{},
		&model.ProductCategory{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.Transaction{},
		&model.PaymentRecord{},
		&model.OutboxMessage{},
	)
}
