package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/dasturxon/internal/models"
)

// newTestDB opens an in-memory database for service tests. The connection
// pool is pinned to one connection so the memory database survives for the
// whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("accessing test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(
		&models.Merchant{},
		&models.Customer{},
		&models.Category{},
		&models.Product{},
		&models.VerificationCode{},
	); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return conn
}
