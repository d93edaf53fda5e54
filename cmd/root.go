/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/internal/iofs"
	"github.com/gnames/tapadyen/internal/iologger"
	app "github.com/gnames/tapadyen/pkg"
	"github.com/gnames/tapadyen/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "tapadyen",
		Short:   "Tapadyen extracts Adyen CSV reports as a Singer tap",
		Long: `Tapadyen downloads daily Adyen CSV reports, cleans their rows and
emits Singer SCHEMA, RECORD and STATE messages.

Supported streams:
  - settlement_details
  - dispute_transaction_details
  - payment_accounting
  - received_payments

Commands:
  - discover: print the catalog of supported streams
  - sync: extract selected streams from the saved bookmark on

Singer messages go to STDOUT, logs go to a file or STDERR.

Configuration precedence (highest to lowest):
  1. CLI flags (--start-date, --target, etc.)
  2. Environment variables (TAPADYEN_*)
  3. Config file (~/.config/tapadyen/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (adyen.account → TAPADYEN_ADYEN_ACCOUNT).
  Examples:
    TAPADYEN_ADYEN_ACCOUNT            Merchant or company account
    TAPADYEN_ADYEN_REPORT_USER        Report user
    TAPADYEN_ADYEN_REPORT_PASSWORD    Report user password
    TAPADYEN_SYNC_START_DATE          Bookmark of streams never synced
    TAPADYEN_SYNC_TARGET              singer or postgres
    TAPADYEN_LOG_LEVEL                Log level (debug/info/warn/error)
  See 'go doc github.com/gnames/tapadyen/pkg/config' for complete list.`,
		PersistentPreRunE: bootstrap,
		Run: func(cmd *cobra.Command, args []string) {
			versionFlag(cmd)
			_ = cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "tapadyen version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for tapadyen")

	rootCmd.AddCommand(getDiscoverCmd())
	rootCmd.AddCommand(getSyncCmd())
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("TAPADYEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Adyen configuration
	v.BindEnv("adyen.base_url", "TAPADYEN_ADYEN_BASE_URL")
	v.BindEnv("adyen.account_type", "TAPADYEN_ADYEN_ACCOUNT_TYPE")
	v.BindEnv("adyen.account", "TAPADYEN_ADYEN_ACCOUNT")
	v.BindEnv("adyen.report_user", "TAPADYEN_ADYEN_REPORT_USER")
	v.BindEnv("adyen.report_password", "TAPADYEN_ADYEN_REPORT_PASSWORD")
	v.BindEnv("adyen.timeout", "TAPADYEN_ADYEN_TIMEOUT")

	// Sync configuration
	v.BindEnv("sync.start_date", "TAPADYEN_SYNC_START_DATE")
	v.BindEnv("sync.schemaless", "TAPADYEN_SYNC_SCHEMALESS")
	v.BindEnv("sync.target", "TAPADYEN_SYNC_TARGET")
	v.BindEnv("sync.checkpoints", "TAPADYEN_SYNC_CHECKPOINTS")

	// Database configuration
	v.BindEnv("database.host", "TAPADYEN_DATABASE_HOST")
	v.BindEnv("database.port", "TAPADYEN_DATABASE_PORT")
	v.BindEnv("database.user", "TAPADYEN_DATABASE_USER")
	v.BindEnv("database.password", "TAPADYEN_DATABASE_PASSWORD")
	v.BindEnv("database.database", "TAPADYEN_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "TAPADYEN_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "TAPADYEN_DATABASE_BATCH_SIZE")

	// Log configuration
	v.BindEnv("log.level", "TAPADYEN_LOG_LEVEL")
	v.BindEnv("log.format", "TAPADYEN_LOG_FORMAT")
	v.BindEnv("log.destination", "TAPADYEN_LOG_DESTINATION")

	v.AutomaticEnv()
}
