package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAcceptsCommentsAndTrailingCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// local dev
		"web_port": 9090,
		"search_limit": 5,
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.WebPort)
	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 300, cfg.SearchDebounceMS)
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"web_port": }`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.UserID = "alice"
	cfg.Guest = true

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LOG_LEVEL":                  "warn",
		"TASKIFY_LOG_LEVEL":          "debug",
		"TASKIFY_DB_DIALECT":         "mysql",
		"TASKIFY_DB_DSN":             "user:pw@tcp(db:3306)/taskify",
		"TASKIFY_GUEST":              "true",
		"TASKIFY_WEB_PORT":           "7070",
		"TASKIFY_SEARCH_DEBOUNCE_MS": "150",
		"TASKIFY_USER":               "bob",
	}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DialectMySQL, cfg.DBDialect)
	assert.Equal(t, "user:pw@tcp(db:3306)/taskify", cfg.DSN())
	assert.True(t, cfg.Guest)
	assert.Equal(t, 7070, cfg.WebPort)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
	assert.Equal(t, "bob", cfg.UserID)
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(key string) (string, bool) {
		if key == "TASKIFY_WEB_PORT" {
			return "eighty", true
		}
		return "", false
	})
	assert.ErrorContains(t, err, "TASKIFY_WEB_PORT")
}

func TestResolveFillsPaths(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Resolve("/home/me/.config/taskify/config.json"))

	assert.Equal(t, "/home/me/.config/taskify/taskify.db", cfg.DBPath)
	assert.Equal(t, "/home/me/.config/taskify/guest", cfg.GuestDir)
	assert.Equal(t, cfg.DBPath, cfg.DSN())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DBDialect = DialectMySQL
	assert.ErrorContains(t, cfg.Validate(), "db_dsn")

	cfg = Default()
	cfg.DBDialect = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "postgres")

	cfg = Default()
	cfg.WebPort = 70000
	assert.Error(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TASKIFY_TEST_ENV_VALUE=from-file\n"), 0o644))
	t.Setenv("TASKIFY_TEST_ENV_VALUE", "")
	require.NoError(t, os.Unsetenv("TASKIFY_TEST_ENV_VALUE"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("TASKIFY_TEST_ENV_VALUE"))
}
