package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

const (
	appName = "taskify"

	DialectSQLite = "sqlite"
	DialectMySQL  = "mysql"
)

type Config struct {
	DBDialect string `json:"db_dialect"`
	DBPath    string `json:"db_path"`
	DBDSN     string `json:"db_dsn,omitempty"`

	WebEnabled bool `json:"web_enabled"`
	WebPort    int  `json:"web_port"`

	// Guest keeps records in GuestDir instead of the database.
	Guest    bool   `json:"guest"`
	GuestDir string `json:"guest_dir"`
	UserID   string `json:"user_id,omitempty"`

	SearchDebounceMS int `json:"search_debounce_ms"`
	SearchLimit      int `json:"search_limit"`

	LogLevel string `json:"log_level"`
	LogJSON  bool   `json:"log_json"`
	LogFile  string `json:"log_file,omitempty"`
}

func Default() Config {
	return Config{
		DBDialect:        DialectSQLite,
		WebPort:          8080,
		SearchDebounceMS: 300,
		SearchLimit:      10,
		LogLevel:         "info",
	}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName, "config.json"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// Load reads the config file at path. Comments and trailing commas are
// allowed. A missing file yields the defaults.
func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return Config{}, err
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := json.Unmarshal(standardized, &config); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return atomic.WriteFile(path, strings.NewReader(string(data)+"\n"))
}

// LoadEnvFile loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from TASKIFY_* variables. LOG_LEVEL is honored
// as well.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if value, ok := lookup(key); ok && value != "" {
			*dst = value
		}
	}
	boolean := func(key string, dst *bool) error {
		value, ok := lookup(key)
		if !ok || value == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = parsed
		return nil
	}
	integer := func(key string, dst *int) error {
		value, ok := lookup(key)
		if !ok || value == "" {
			return nil
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = parsed
		return nil
	}

	str("LOG_LEVEL", &c.LogLevel)
	str("TASKIFY_LOG_LEVEL", &c.LogLevel)
	str("TASKIFY_LOG_FILE", &c.LogFile)
	str("TASKIFY_DB_DIALECT", &c.DBDialect)
	str("TASKIFY_DB_PATH", &c.DBPath)
	str("TASKIFY_DB_DSN", &c.DBDSN)
	str("TASKIFY_GUEST_DIR", &c.GuestDir)
	str("TASKIFY_USER", &c.UserID)

	for key, dst := range map[string]*bool{
		"TASKIFY_GUEST":       &c.Guest,
		"TASKIFY_WEB_ENABLED": &c.WebEnabled,
		"TASKIFY_LOG_JSON":    &c.LogJSON,
	} {
		if err := boolean(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*int{
		"TASKIFY_WEB_PORT":           &c.WebPort,
		"TASKIFY_SEARCH_DEBOUNCE_MS": &c.SearchDebounceMS,
		"TASKIFY_SEARCH_LIMIT":       &c.SearchLimit,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Resolve fills paths left empty relative to the config file's directory and
// checks the result.
func (c *Config) Resolve(configPath string) error {
	dir := filepath.Dir(configPath)
	if c.DBDialect == "" {
		c.DBDialect = DialectSQLite
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, appName+".db")
	}
	if c.GuestDir == "" {
		c.GuestDir = filepath.Join(dir, "guest")
	}
	if c.WebPort == 0 {
		c.WebPort = 8080
	}
	return c.Validate()
}

func (c Config) Validate() error {
	switch c.DBDialect {
	case DialectSQLite:
	case DialectMySQL:
		if c.DBDSN == "" {
			return errors.New("config: db_dsn is required for the mysql dialect")
		}
	default:
		return fmt.Errorf("config: unknown db_dialect %q", c.DBDialect)
	}
	if c.WebPort < 1 || c.WebPort > 65535 {
		return fmt.Errorf("config: web_port %d out of range", c.WebPort)
	}
	if c.SearchDebounceMS < 0 {
		return fmt.Errorf("config: search_debounce_ms must not be negative")
	}
	if c.SearchLimit < 0 {
		return fmt.Errorf("config: search_limit must not be negative")
	}
	return nil
}

// DSN is the data source for the configured dialect.
func (c Config) DSN() string {
	if c.DBDialect == DialectMySQL {
		return c.DBDSN
	}
	return c.DBPath
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}
