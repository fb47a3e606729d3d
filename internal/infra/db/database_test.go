package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/client/config"
)

func TestNewConnection(t *testing.T) {
	t.Run("sqlite in memory", func(t *testing.T) {
		database, err := NewConnection(&config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			URL:             ":memory:",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = database.Close() })

		require.NoError(t, database.Migrate())
		assert.True(t, database.DB().Migrator().HasTable("sync_runs"))
		assert.True(t, database.HealthCheck())

		sqlDB, err := database.DB().DB()
		require.NoError(t, err)
		assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewConnection(&config.DatabaseConfig{Driver: "mysql"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}
