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
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/internal/iotap"
	"github.com/gnames/tapadyen/pkg/config"
	"github.com/spf13/cobra"
)

type syncFlags struct {
	catalog    string
	state      string
	streams    []string
	startDate  string
	schemaless bool
	target     string
}

// getSyncCmd returns the sync command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getSyncCmd() *cobra.Command {
	var f syncFlags

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Extract Adyen report streams",
		Long: `Extract selected report streams incrementally.

This command:
  1. Reads the catalog (--catalog) or selects all streams
  2. Reads the state (--state) or the last local checkpoint
  3. For every selected stream, one after another:
     - emits the stream SCHEMA
     - finds daily reports from the stream bookmark until yesterday
     - emits a RECORD for every cleaned report row
     - moves the bookmark to the report date and emits STATE
  4. Reports a summary

Without a bookmark a stream starts at sync.start_date of the config.
With --target postgres records are stored in PostgreSQL instead of
being written to STDOUT.

Examples:
  # Sync all streams, Singer messages to STDOUT
  tapadyen sync > messages.jsonl

  # Sync with a catalog and a state from the previous run
  tapadyen sync -c catalog.json -s state.json

  # Sync two streams into PostgreSQL
  tapadyen sync --streams payment_accounting,received_payments \
    --target postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSync(cmd, f)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	syncCmd.Flags().StringVarP(
		&f.catalog, "catalog", "c", "",
		"catalog file (empty = all streams)",
	)
	syncCmd.Flags().StringVarP(
		&f.state, "state", "s", "",
		"state file (empty = last checkpoint)",
	)
	syncCmd.Flags().StringSliceVar(
		&f.streams, "streams", []string{},
		"stream ids to sync (empty = catalog selection)",
	)
	syncCmd.Flags().StringVarP(
		&f.startDate, "start-date", "d", "",
		"bookmark of streams never synced, YYYY-MM-DD",
	)
	syncCmd.Flags().BoolVar(
		&f.schemaless, "schemaless", false,
		"emit raw report rows without cleaning",
	)
	syncCmd.Flags().StringVarP(
		&f.target, "target", "t", "",
		"where records go: singer or postgres",
	)

	return syncCmd
}

// syncOptions converts explicitly set flags into config options.
func syncOptions(cmd *cobra.Command, f syncFlags) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("catalog") {
		res = append(res, config.OptSyncCatalogPath(f.catalog))
	}
	if flags.Changed("state") {
		res = append(res, config.OptSyncStatePath(f.state))
	}
	if flags.Changed("streams") {
		res = append(res, config.OptSyncStreams(f.streams))
	}
	if flags.Changed("start-date") {
		res = append(res, config.OptSyncStartDate(f.startDate))
	}
	if flags.Changed("schemaless") {
		res = append(res, config.OptSyncSchemaless(f.schemaless))
	}
	if flags.Changed("target") {
		res = append(res, config.OptSyncTarget(f.target))
	}
	return res
}

func runSync(cmd *cobra.Command, f syncFlags) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if syncOpts := syncOptions(cmd, f); len(syncOpts) > 0 {
		cfg.Update(syncOpts)
	}

	tp := iotap.New(cfg, iotap.OptProgress(os.Stderr))
	_, err := tp.Sync(ctx)
	return err
}
