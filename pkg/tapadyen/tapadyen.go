// Package tapadyen defines the top level operations of the tap.
package tapadyen

import (
	"context"
	"io"

	"github.com/gnames/tapadyen/pkg/tap"
)

// Tapper runs the commands of the tap.
// Config is provided during construction.
type Tapper interface {
	// Discover writes the catalog of all supported streams to w.
	Discover(ctx context.Context, w io.Writer) error

	// Sync extracts selected streams starting from the saved state and
	// emits records and state snapshots to the configured target.
	Sync(ctx context.Context) (tap.Summary, error)
}
