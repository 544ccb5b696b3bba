package config

import (
	"fmt"
	"testing"

	"rent-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return db
}

func TestSeedDatabaseAmenityCatalog(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, SeedDatabase(db))

	var entries []models.AmenityCatalogEntry
	require.NoError(t, db.Order("name").Find(&entries).Error)
	require.Len(t, entries, len(models.AmenityIcons))
	for _, e := range entries {
		assert.Equal(t, models.AmenityIcons[e.Name], e.Icon)
	}
}

func TestSeedDatabaseIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, SeedDatabase(db))
	require.NoError(t, SeedDatabase(db))

	var count int64
	require.NoError(t, db.Model(&models.AmenityCatalogEntry{}).Count(&count).Error)
	assert.EqualValues(t, len(models.AmenityIcons), count)
}
