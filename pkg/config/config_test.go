package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/tapadyen/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "tapadyen"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "tapadyen"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "tapadyen", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "tapadyen", "config.yaml"),
		},
		{
			msg: "checkpoints",
			fn:  config.CheckpointsPath,
			res: filepath.Join(tempHome, ".cache", "tapadyen", "checkpoints.db"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "https://ca-test.adyen.com", cfg.Adyen.BaseURL)
		assert.Equal(t, "MerchantAccount", cfg.Adyen.AccountType)
		assert.Equal(t, 60, cfg.Adyen.Timeout)

		assert.Equal(t, "2021-01-01T00:00:00+0000", cfg.Sync.StartDate)
		assert.Equal(t, "singer", cfg.Sync.Target)
		assert.False(t, cfg.Sync.Schemaless)
		assert.True(t, cfg.Sync.Checkpoints)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "tapadyen", cfg.Database.Database)
		assert.Equal(t, 1_000, cfg.Database.BatchSize)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestOptionsString(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		get   func(*config.Config) string
		value string
	}{
		{
			name:  "base url trims slash",
			opt:   config.OptAdyenBaseURL(" https://ca-live.adyen.com/ "),
			get:   func(c *config.Config) string { return c.Adyen.BaseURL },
			value: "https://ca-live.adyen.com",
		},
		{
			name:  "base url rejects garbage",
			opt:   config.OptAdyenBaseURL("ftp:/nowhere"),
			get:   func(c *config.Config) string { return c.Adyen.BaseURL },
			value: "https://ca-test.adyen.com",
		},
		{
			name:  "account type",
			opt:   config.OptAdyenAccountType("Company"),
			get:   func(c *config.Config) string { return c.Adyen.AccountType },
			value: "Company",
		},
		{
			name:  "account type rejects unknown",
			opt:   config.OptAdyenAccountType("Store"),
			get:   func(c *config.Config) string { return c.Adyen.AccountType },
			value: "MerchantAccount",
		},
		{
			name:  "account",
			opt:   config.OptAdyenAccount("  MyShop "),
			get:   func(c *config.Config) string { return c.Adyen.Account },
			value: "MyShop",
		},
		{
			name:  "start date day",
			opt:   config.OptSyncStartDate("2023-05-01"),
			get:   func(c *config.Config) string { return c.Sync.StartDate },
			value: "2023-05-01",
		},
		{
			name:  "start date rfc3339",
			opt:   config.OptSyncStartDate("2023-05-01T10:00:00Z"),
			get:   func(c *config.Config) string { return c.Sync.StartDate },
			value: "2023-05-01T10:00:00Z",
		},
		{
			name:  "start date rejects garbage",
			opt:   config.OptSyncStartDate("May 1st"),
			get:   func(c *config.Config) string { return c.Sync.StartDate },
			value: "2021-01-01T00:00:00+0000",
		},
		{
			name:  "target lowercased",
			opt:   config.OptSyncTarget("Postgres"),
			get:   func(c *config.Config) string { return c.Sync.Target },
			value: "postgres",
		},
		{
			name:  "target rejects unknown",
			opt:   config.OptSyncTarget("kafka"),
			get:   func(c *config.Config) string { return c.Sync.Target },
			value: "singer",
		},
		{
			name:  "database host ignores empty",
			opt:   config.OptDatabaseHost("   "),
			get:   func(c *config.Config) string { return c.Database.Host },
			value: "localhost",
		},
		{
			name:  "ssl mode",
			opt:   config.OptDatabaseSSLMode("REQUIRE"),
			get:   func(c *config.Config) string { return c.Database.SSLMode },
			value: "require",
		},
		{
			name:  "log destination stderr",
			opt:   config.OptLogDestination("stderr"),
			get:   func(c *config.Config) string { return c.Log.Destination },
			value: "stderr",
		},
		{
			name:  "log destination rejects stdout",
			opt:   config.OptLogDestination("stdout"),
			get:   func(c *config.Config) string { return c.Log.Destination },
			value: "file",
		},
		{
			name:  "log format rejects tint",
			opt:   config.OptLogFormat("tint"),
			get:   func(c *config.Config) string { return c.Log.Format },
			value: "json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.value, tt.get(cfg))
		})
	}
}

func TestOptionsInt(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptAdyenTimeout(5),
		config.OptDatabasePort(0),
		config.OptDatabaseBatchSize(-1),
	})
	assert.Equal(t, 5, cfg.Adyen.Timeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 1_000, cfg.Database.BatchSize)

	cfg.Update([]config.Option{config.OptDatabaseBatchSize(config.MaxBatchSize + 1)})
	assert.Equal(t, 1_000, cfg.Database.BatchSize)

	cfg.Update([]config.Option{config.OptDatabaseBatchSize(config.MaxBatchSize)})
	assert.Equal(t, config.MaxBatchSize, cfg.Database.BatchSize)
}

func TestOptionsRuntime(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptSyncStreams([]string{" received_payments", "", "payment_accounting"}),
		config.OptSyncCatalogPath("catalog.json"),
		config.OptSyncStatePath("state.json"),
		config.OptSyncSchemaless(true),
		config.OptSyncCheckpoints(false),
		config.OptHomeDir("/home/user"),
	})
	assert.Equal(t, []string{"received_payments", "payment_accounting"}, cfg.Sync.Streams)
	assert.Equal(t, "catalog.json", cfg.Sync.CatalogPath)
	assert.Equal(t, "state.json", cfg.Sync.StatePath)
	assert.True(t, cfg.Sync.Schemaless)
	assert.False(t, cfg.Sync.Checkpoints)
	assert.Equal(t, "/home/user", cfg.HomeDir)

	cfg.Update([]config.Option{config.OptSyncStreams(nil)})
	assert.Len(t, cfg.Sync.Streams, 2)
}

func TestToOptions(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptAdyenAccount("MyShop"),
		config.OptAdyenReportUser("report@Shop"),
		config.OptAdyenReportPassword("secret"),
		config.OptSyncTarget("postgres"),
		config.OptSyncSchemaless(true),
		config.OptLogLevel("debug"),
		config.OptSyncStatePath("state.json"),
		config.OptHomeDir("/tmp/home"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.Adyen, dst.Adyen)
	assert.Equal(t, src.Database, dst.Database)
	assert.Equal(t, src.Log, dst.Log)
	assert.Equal(t, "postgres", dst.Sync.Target)
	assert.True(t, dst.Sync.Schemaless)

	assert.Empty(t, dst.Sync.StatePath)
	assert.Empty(t, dst.HomeDir)
}
