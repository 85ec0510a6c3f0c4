package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// TestDB - подключение к тестовой базе знаний (драйвер lib/pq)
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB подключается к тестовой БД или пропускает тест, если она недоступна.
// TEST_DATABASE_URL wins over the TEST_DB_* variables.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := sqlx.Open("postgres", testDSN())
	if err != nil {
		t.Skipf("knowledge base postgres unavailable: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		t.Skipf("knowledge base postgres unavailable: %v", err)
	}

	return &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
	}
}

func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup removes rows written for the given locations.
func (tdb *TestDB) Cleanup(ctx context.Context, locations ...string) error {
	for _, table := range []string{"terrain_knowledge_history", "terrain_knowledge"} {
		query, args, err := sqlx.In(fmt.Sprintf("DELETE FROM %s WHERE location IN (?)", table), locations)
		if err != nil {
			return err
		}
		if _, err := tdb.DB.ExecContext(ctx, tdb.DB.Rebind(query), args...); err != nil {
			return fmt.Errorf("cleanup %s: %w", table, err)
		}
	}
	return nil
}

func testDSN() string {
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s application_name=terrain-analyst-test",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5433"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "terrain_test"),
		getEnv("TEST_DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
