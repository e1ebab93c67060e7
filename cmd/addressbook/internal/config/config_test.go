package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "addressbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, StoreFile, cfg.Storage.Kind)
	assert.Equal(t, 7, cfg.Birthdays.WindowDays)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
storage:
  kind: sqlite
  path: contacts.db
logging:
  level: debug
birthdays:
  window_days: 14
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.Storage.Kind)
	assert.Equal(t, "contacts.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format, "unset keys keep their defaults")
	assert.Equal(t, 14, cfg.Birthdays.WindowDays)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "storage: [not, a, map]\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env beats the config file", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  kind: sqlite\n  path: contacts.db\n")
		t.Setenv("ADDRESSBOOK_STORE", "postgres")
		t.Setenv("ADDRESSBOOK_DSN", "postgres://localhost/contacts")
		t.Setenv("ADDRESSBOOK_BIRTHDAY_WINDOW", "3")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, StorePostgres, cfg.Storage.Kind)
		assert.Equal(t, "postgres://localhost/contacts", cfg.Storage.DSN)
		assert.Equal(t, 3, cfg.Birthdays.WindowDays)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("bad window is reported", func(t *testing.T) {
		t.Setenv("ADDRESSBOOK_BIRTHDAY_WINDOW", "soon")

		_, err := Load("")
		assert.ErrorContains(t, err, "ADDRESSBOOK_BIRTHDAY_WINDOW")
	})
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"unknown store":        func(c *Config) { c.Storage.Kind = "mongo" },
		"postgres without dsn": func(c *Config) { c.Storage.Kind = StorePostgres },
		"file without path":    func(c *Config) { c.Storage.Path = "" },
		"unknown format":       func(c *Config) { c.Storage.Format = "xml" },
		"negative window":      func(c *Config) { c.Birthdays.WindowDays = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
