package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lsp-fixtures/internal/logging"
	"lsp-fixtures/internal/manager"
)

// Config holds all configuration options for fx
type Config struct {
	Database    DatabaseConfig
	Tasks       TasksConfig
	Server      ServerConfig
	Application ApplicationConfig
	Export      ExportConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"FX_DB_DIR"`
	Filename       string        `env:"FX_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"FX_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"FX_DB_DIR_PERMISSIONS"`
}

// TasksConfig holds task list defaults
type TasksConfig struct {
	DefaultOwner    string `env:"FX_TASKS_OWNER"`
	DefaultPriority int    `env:"FX_TASKS_PRIORITY"`
}

// ServerConfig holds the HTTP listener configuration
type ServerConfig struct {
	Addr string `env:"FX_SERVER_ADDR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"FX_APP_TIMEOUT"`
	Verbose bool          `env:"FX_APP_VERBOSE"`
}

// ExportConfig holds export defaults
type ExportConfig struct {
	DefaultFormat string `env:"FX_EXPORT_FORMAT"`
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".fx"),
			Filename:       "fx.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Tasks: TasksConfig{
			DefaultOwner:    manager.DefaultOwner,
			DefaultPriority: 1,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
		Export: ExportConfig{
			DefaultFormat: "csv",
		},
	}
}

// DatabasePath joins the configured directory and filename.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// envBinding maps one FX_* variable onto a config field. set returns false
// when the value does not parse, leaving the field untouched.
type envBinding struct {
	name string
	set  func(c *Config, v string) bool
}

var envBindings = []envBinding{
	{"FX_DB_DIR", func(c *Config, v string) bool { c.Database.Dir = v; return true }},
	{"FX_DB_FILENAME", func(c *Config, v string) bool { c.Database.Filename = v; return true }},
	{"FX_DB_QUERY_TIMEOUT", func(c *Config, v string) bool { return parseInto(&c.Database.QueryTimeout, v, time.ParseDuration) }},
	{"FX_DB_DIR_PERMISSIONS", func(c *Config, v string) bool { return parseInto(&c.Database.DirPermissions, v, parseOctal) }},
	{"FX_TASKS_OWNER", func(c *Config, v string) bool { c.Tasks.DefaultOwner = v; return true }},
	{"FX_TASKS_PRIORITY", func(c *Config, v string) bool { return parseInto(&c.Tasks.DefaultPriority, v, strconv.Atoi) }},
	{"FX_SERVER_ADDR", func(c *Config, v string) bool { c.Server.Addr = v; return true }},
	{"FX_APP_TIMEOUT", func(c *Config, v string) bool { return parseInto(&c.Application.Timeout, v, time.ParseDuration) }},
	{"FX_APP_VERBOSE", func(c *Config, v string) bool { return parseInto(&c.Application.Verbose, v, strconv.ParseBool) }},
	{"FX_EXPORT_FORMAT", func(c *Config, v string) bool { c.Export.DefaultFormat = v; return true }},
}

func parseInto[T any](dst *T, s string, parse func(string) (T, error)) bool {
	v, err := parse(s)
	if err != nil {
		return false
	}
	*dst = v
	return true
}

func parseOctal(s string) (uint32, error) {
	u, err := strconv.ParseUint(s, 8, 32)
	return uint32(u), err
}

// LoadFromEnvironment overrides defaults with FX_* environment variables.
// Unset or empty variables are skipped. Values that fail to parse are
// ignored and logged at debug level.
func (c *Config) LoadFromEnvironment() error {
	for _, b := range envBindings {
		v := os.Getenv(b.name)
		if v == "" {
			continue
		}
		if !b.set(c, v) {
			logging.Debugf("ignoring %s=%q\n", b.name, v)
		}
	}
	return nil
}

// Normalize trims the owner, mapping a blank one to manager.DefaultOwner the
// same way the api does, and lowercases the export format.
func (c *Config) Normalize() {
	c.Tasks.DefaultOwner = strings.TrimSpace(c.Tasks.DefaultOwner)
	if c.Tasks.DefaultOwner == "" {
		c.Tasks.DefaultOwner = manager.DefaultOwner
	}
	c.Export.DefaultFormat = strings.ToLower(strings.TrimSpace(c.Export.DefaultFormat))
}

// Validate returns the first invalid field as a *ConfigError.
func (c *Config) Validate() error {
	checks := []struct {
		ok      bool
		field   string
		message string
	}{
		{c.Database.Dir != "", "database.dir", "database directory cannot be empty"},
		{c.Database.Filename != "", "database.filename", "database filename cannot be empty"},
		{c.Database.QueryTimeout > 0, "database.query_timeout", "query timeout must be positive"},
		{strings.TrimSpace(c.Tasks.DefaultOwner) != "", "tasks.default_owner", "default owner cannot be empty"},
		{c.Server.Addr != "", "server.addr", "server address cannot be empty"},
		{c.Application.Timeout > 0, "application.timeout", "application timeout must be positive"},
		{validExportFormat(c.Export.DefaultFormat), "export.default_format", "export format must be csv, json or pdf"},
	}
	for _, check := range checks {
		if !check.ok {
			return &ConfigError{Field: check.field, Message: check.message}
		}
	}
	return nil
}

func validExportFormat(f string) bool {
	switch f {
	case "csv", "json", "pdf":
		return true
	}
	return false
}

// ConfigError names the offending field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
