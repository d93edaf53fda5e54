package config

import (
	"strings"
	"time"
)

// DateLayouts are accepted layouts of start dates and date bookmarks.
var DateLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	"2006-01-02",
}

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptAdyenBaseURL sets the report host.
func OptAdyenBaseURL(s string) Option {
	s = strings.TrimSuffix(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("Adyen Base URL", s) {
			c.Adyen.BaseURL = s
		}
	}
}

// OptAdyenAccountType sets the type of the account.
// Valid values: "MerchantAccount", "Company".
func OptAdyenAccountType(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidEnum("Adyen.AccountType", s) {
			c.Adyen.AccountType = s
		}
	}
}

// OptAdyenAccount sets the merchant or company account code.
func OptAdyenAccount(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Adyen Account", s) {
			c.Adyen.Account = s
		}
	}
}

// OptAdyenReportUser sets the user of report credentials.
func OptAdyenReportUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Adyen Report User", s) {
			c.Adyen.ReportUser = s
		}
	}
}

// OptAdyenReportPassword sets the password of report credentials.
func OptAdyenReportPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Adyen Report Password", s) {
			c.Adyen.ReportPassword = s
		}
	}
}

// OptAdyenTimeout sets the HTTP request timeout in seconds.
func OptAdyenTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Adyen Timeout", i) {
			c.Adyen.Timeout = i
		}
	}
}

// OptSyncStartDate sets the bookmark of streams that were never synced.
// Accepts DateLayouts.
func OptSyncStartDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidDate("Sync Start Date", s) {
			c.Sync.StartDate = s
		}
	}
}

// OptSyncSchemaless sets whether rows are emitted without cleaning.
func OptSyncSchemaless(b bool) Option {
	return func(c *Config) {
		c.Sync.Schemaless = b
	}
}

// OptSyncTarget sets where records go.
// Valid values: "singer", "postgres".
func OptSyncTarget(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Sync.Target", s) {
			c.Sync.Target = s
		}
	}
}

// OptSyncCheckpoints sets whether state snapshots are kept in SQLite.
func OptSyncCheckpoints(b bool) Option {
	return func(c *Config) {
		c.Sync.Checkpoints = b
	}
}

// OptSyncStreams limits the sync to the given stream ids.
// Runtime-only field - not in ToOptions().
func OptSyncStreams(ss []string) Option {
	var res []string
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			res = append(res, s)
		}
	}
	return func(c *Config) {
		if len(res) > 0 {
			c.Sync.Streams = res
		}
	}
}

// OptSyncCatalogPath sets the catalog file.
// Runtime-only field - not in ToOptions().
func OptSyncCatalogPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Catalog Path", s) {
			c.Sync.CatalogPath = s
		}
	}
}

// OptSyncStatePath sets the state file.
// Runtime-only field - not in ToOptions().
func OptSyncStatePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("State Path", s) {
			c.Sync.StatePath = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// MaxBatchSize keeps a record upsert within the 65535 bind parameters
// PostgreSQL allows per statement.
const MaxBatchSize = 10_000

// OptDatabaseBatchSize sets the number of records per upsert.
// Accepts 1..MaxBatchSize.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) && isValidMax("Batch Size", i, MaxBatchSize) {
			c.Database.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
