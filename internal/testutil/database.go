package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"techassist/internal/config"
	"techassist/internal/infrastructure/mysql"
)

// SetupTestDB connects to the integration database and applies migrations.
// It expects MySQL on localhost:3306 with a database named techassist_test,
// overridable through TEST_DB_HOST, TEST_DB_USER and TEST_DB_PASSWORD.
// The test is skipped when the server is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Host:            envOr("TEST_DB_HOST", "localhost"),
		Port:            3306,
		User:            envOr("TEST_DB_USER", "root"),
		Password:        os.Getenv("TEST_DB_PASSWORD"),
		Name:            "techassist_test",
		MaxOpenConns:    5,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		RunMigrations:   true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := mysql.NewConnection(ctx, cfg)
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table, children first, and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}

	tables := []string{"service_order_items", "service_orders", "services", "technicians", "customers"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
