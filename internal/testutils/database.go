package testutils

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/database"
)

var dbCounter atomic.Int64

// CreateTestDB opens a migrated, private in-memory SQLite database. A single
// connection keeps the shared-cache database alive and serialises writers.
func CreateTestDB(t *testing.T) (*gorm.DB, func()) {
	dsn := fmt.Sprintf("file:waifu_test_%d?mode=memory&cache=shared", dbCounter.Add(1))

	db, err := database.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err, "failed to open sqlite")

	require.NoError(t, database.Migrate(context.Background(), db), "failed to migrate sqlite")

	cleanup := func() {
		_ = database.Close(db)
	}

	return db, cleanup
}
