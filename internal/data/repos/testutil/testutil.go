// Package testutil provides database helpers for repo and service tests.
// Tests that need Postgres are skipped unless TEST_POSTGRES_DSN is set, e.g.
//
//	TEST_POSTGRES_DSN="host=localhost user=postgres dbname=dvdrental_test" go test ./...
package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

// DB opens the test database and migrates the schema. Skips the test when
// TEST_POSTGRES_DSN is not set.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("TEST_POSTGRES_DSN not set; skipping database test")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		tb.Fatalf("create uuid extension: %v", err)
	}
	if err := db.AutoMigrate(types.AllModels()...); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	Reset(tb, db)
	return db
}

// Reset empties every table so each test starts from a clean slate.
func Reset(tb testing.TB, db *gorm.DB) {
	tb.Helper()
	err := db.Exec(`TRUNCATE billing_records, rentals, reservations, dvd_genres, dvds, genres, users CASCADE`).Error
	if err != nil {
		tb.Fatalf("reset tables: %v", err)
	}
}
