package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Streams, CatalogPath, StatePath).
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Adyen.BaseURL
	if s != "" {
		res = append(res, OptAdyenBaseURL(s))
	}
	s = c.Adyen.AccountType
	if s != "" {
		res = append(res, OptAdyenAccountType(s))
	}
	s = c.Adyen.Account
	if s != "" {
		res = append(res, OptAdyenAccount(s))
	}
	s = c.Adyen.ReportUser
	if s != "" {
		res = append(res, OptAdyenReportUser(s))
	}
	s = c.Adyen.ReportPassword
	if s != "" {
		res = append(res, OptAdyenReportPassword(s))
	}
	i = c.Adyen.Timeout
	if i > 0 {
		res = append(res, OptAdyenTimeout(i))
	}

	s = c.Sync.StartDate
	if s != "" {
		res = append(res, OptSyncStartDate(s))
	}
	res = append(res, OptSyncSchemaless(c.Sync.Schemaless))
	s = c.Sync.Target
	if s != "" {
		res = append(res, OptSyncTarget(s))
	}
	res = append(res, OptSyncCheckpoints(c.Sync.Checkpoints))

	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidMax(name string, i, limit int) bool {
	res := i <= limit
	if !res {
		gn.Warn("<em>%s</em> cannot exceed %d, ignoring %d", name, limit, i)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		gn.Warn("<em>%s</em> is not a valid URL, ignoring '%s'", name, s)
		return false
	}
	return true
}

func isValidDate(name, s string) bool {
	for _, l := range DateLayouts {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	gn.Warn(
		"<em>%s</em> has to look like 2021-01-01 or "+
			"2021-01-01T00:00:00+0000, ignoring '%s'",
		name, s,
	)
	return false
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Adyen.AccountType": {"MerchantAccount": s, "Company": s},
		"Sync.Target":       {"singer": s, "postgres": s},
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
