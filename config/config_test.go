// file: config/config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Ledger.StrictLuhn)
	assert.Equal(t, 10, cfg.Ledger.MaxGenerateAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
database:
  host: db.internal
  port: 5433
ledger:
  strict_luhn: true
session:
  ttl: 2m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o600))
	t.Setenv("BANK_DATABASE_NAME", "card_test")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "card_test", cfg.Database.Name)
	assert.True(t, cfg.Ledger.StrictLuhn)
	assert.Equal(t, 2*time.Minute, cfg.Session.TTL)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("database: [unclosed"), 0o600))

	_, err := Load(dir)

	assert.Error(t, err)
}
