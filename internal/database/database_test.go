package database

import (
	"testing"

	"github.com/deppfellow/locallibrary/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNEscapesPassword(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "lib",
		Password: "pa:ss@word",
		Name:     "local_library",
		SSLMode:  "disable",
	})

	assert.Equal(t, "postgres://lib:pa%3Ass%40word@db:5432/local_library?sslmode=disable", dsn)

	parsed, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "pa:ss@word", parsed.ConnConfig.Password)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "001_catalog.sql", entries[0].Name())
}
