package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulatminnakhmetov/collection-tracker/internal/config"
	"github.com/bulatminnakhmetov/collection-tracker/internal/database/migrations"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "tracker",
		Password: "secret",
		DBName:   "collection_tracker",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=db port=5433 user=tracker password=secret dbname=collection_tracker sslmode=disable", dsn)
}

func TestMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	assert.Len(t, ups, 3)
	assert.Equal(t, ups, downs)
}

func TestMediaMigrationHasUniqueListingIndex(t *testing.T) {
	body, err := fs.ReadFile(migrations.FS, "000002_create_media_data.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(body), "CREATE UNIQUE INDEX IF NOT EXISTS uq_media_data_listing_id ON media_data (listing_id)")
}
