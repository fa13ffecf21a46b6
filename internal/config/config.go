// Package config provides salescope configuration loading.
// Precedence: defaults < salescope.yaml < SALESCOPE_ env vars < CLI flags.
package config

// Config holds the full salescope configuration.
type Config struct {
	// Engine is the embedded database engine type (sqlite or duckdb).
	Engine string `koanf:"engine"`

	// Database is the database path. The default ":memory:" gives every
	// session a fresh database, matching the per-session lifecycle.
	Database string `koanf:"database"`

	// Seed is the path to a SQL seed script. Empty means the bundled
	// sample dataset.
	Seed string `koanf:"seed"`

	// Port is the HTTP port for the dashboard server.
	Port int `koanf:"port"`

	// SessionSecret signs the UI preference cookie.
	SessionSecret string `koanf:"session_secret"`

	// Watch enables re-importing the seed script when it changes on disk.
	Watch bool `koanf:"watch"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Output is the CLI output format (table|json|csv|md).
	Output string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultEngine   = "sqlite"
	DefaultDatabase = ":memory:"
	DefaultPort     = 8484
	DefaultOutput   = "table"
)

// Defaults returns the configuration defaults as a koanf confmap.
func Defaults() map[string]any {
	return map[string]any{
		"engine":   DefaultEngine,
		"database": DefaultDatabase,
		"port":     DefaultPort,
		"output":   DefaultOutput,
	}
}

// ApplyDefaults fills zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}
