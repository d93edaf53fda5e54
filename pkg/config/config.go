// Package config provides configuration management for tapadyen.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Adyen: base_url, account_type, account, report_user, report_password,
//     timeout
//   - Sync: start_date, schemaless, target, checkpoints
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Sync.Streams, Sync.CatalogPath, Sync.StatePath
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use TAPADYEN_ prefix with underscores for nesting:
//
//	TAPADYEN_ADYEN_ACCOUNT=MyShop
//	TAPADYEN_ADYEN_REPORT_PASSWORD=secret
//	TAPADYEN_SYNC_START_DATE=2021-01-01
//	TAPADYEN_LOG_LEVEL=debug
package config

// Config represents the complete tapadyen configuration.
type Config struct {
	// Adyen contains the report download service settings.
	Adyen AdyenConfig `mapstructure:"adyen" yaml:"adyen"`

	// Sync contains settings of the sync command.
	Sync SyncConfig `mapstructure:"sync" yaml:"sync"`

	// Database contains PostgreSQL connection settings of the postgres
	// target.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// AdyenConfig describes where reports are downloaded from.
type AdyenConfig struct {
	// BaseURL is the report host, for example https://ca-test.adyen.com.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// AccountType is "MerchantAccount" or "Company".
	AccountType string `mapstructure:"account_type" yaml:"account_type"`

	// Account is the merchant or company account code.
	Account string `mapstructure:"account" yaml:"account"`

	// ReportUser is the user of the report download credentials.
	ReportUser string `mapstructure:"report_user" yaml:"report_user"`

	// ReportPassword is the password of the report user.
	ReportPassword string `mapstructure:"report_password" yaml:"report_password"`

	// Timeout of a single HTTP request in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`
}

// SyncConfig contains settings of a sync run.
type SyncConfig struct {
	// StartDate is the bookmark of streams that were never synced.
	StartDate string `mapstructure:"start_date" yaml:"start_date"`

	// Schemaless emits report rows without cleaning.
	Schemaless bool `mapstructure:"schemaless" yaml:"schemaless"`

	// Target is "singer" (messages to STDOUT) or "postgres".
	Target string `mapstructure:"target" yaml:"target"`

	// Checkpoints keeps every state snapshot in a local SQLite file.
	Checkpoints bool `mapstructure:"checkpoints" yaml:"checkpoints"`

	// Streams limits the sync to these stream ids. Empty means the
	// catalog selection is used.
	Streams []string `mapstructure:"streams" yaml:"streams"`

	// CatalogPath is the catalog file. Empty means all streams are
	// discovered and selected.
	CatalogPath string `mapstructure:"catalog_path" yaml:"catalog_path"`

	// StatePath is the state file of the previous run.
	StatePath string `mapstructure:"state_path" yaml:"state_path"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of records sent in one upsert statement.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place) or STDERR.
	// STDOUT belongs to Singer messages.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Adyen: AdyenConfig{
			BaseURL:     "https://ca-test.adyen.com",
			AccountType: "MerchantAccount",
			Timeout:     60,
		},
		Sync: SyncConfig{
			StartDate:   "2021-01-01T00:00:00+0000",
			Target:      "singer",
			Checkpoints: true,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "tapadyen",
			SSLMode:   "disable",
			BatchSize: 1_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
