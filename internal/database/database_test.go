package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/claritybreak/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	t.Run("migrates tables", func(t *testing.T) {
		assert.True(t, db.DB.Migrator().HasTable(&entities.SearchEntry{}))
		assert.True(t, db.DB.Migrator().HasTable(&entities.Reminder{}))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, db.Ping())
	})

	t.Run("reopen keeps data", func(t *testing.T) {
		require.NoError(t, db.DB.Create(&entities.SearchEntry{Query: "sleep"}).Error)
		require.NoError(t, db.Close())

		reopened, err := NewDatabase(dbPath)
		require.NoError(t, err)
		defer reopened.Close()

		var count int64
		require.NoError(t, reopened.DB.Model(&entities.SearchEntry{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestNewDatabase_InvalidPath(t *testing.T) {
	_, err := NewDatabase(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	assert.Error(t, err)
}
