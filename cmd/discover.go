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
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/internal/iotap"
	"github.com/gnames/tapadyen/pkg/config"
	"github.com/spf13/cobra"
)

// getDiscoverCmd returns the discover command.
func getDiscoverCmd() *cobra.Command {
	var schemaless bool

	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Print the catalog of supported streams",
		Long: `Print the Singer catalog of all supported report streams as JSON.

Every stream is selected. Save the output, deselect unwanted streams and
pass the file to 'tapadyen sync --catalog'.

Examples:
  tapadyen discover > catalog.json
  tapadyen discover --schemaless`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("schemaless") {
				cfg.Update([]config.Option{config.OptSyncSchemaless(schemaless)})
			}
			tp := iotap.New(cfg)
			err := tp.Discover(cmd.Context(), os.Stdout)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	discoverCmd.Flags().BoolVar(
		&schemaless, "schemaless", false,
		"describe raw report rows instead of cleaned records",
	)
	return discoverCmd
}
