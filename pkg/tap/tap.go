// Package tap runs the incremental sync of report streams.
//
// The engine is pure orchestration. Report discovery, row download and
// record emission are capabilities supplied by the caller, which keeps
// the engine free of I/O and easy to test with fakes.
package tap

import (
	"context"
	"iter"
	"time"

	"github.com/gnames/tapadyen/pkg/clean"
	"github.com/gnames/tapadyen/pkg/state"
	"github.com/gnames/tapadyen/pkg/stream"
)

// Enumerator yields report locators of a stream.
type Enumerator interface {
	// Locators yields the locators to sync, in order, for the given
	// stream state. The sequence is finite and it can only be restarted
	// from the beginning.
	Locators(
		ctx context.Context,
		kind stream.Kind,
		ss state.StreamState,
	) iter.Seq2[string, error]
}

// Retriever yields raw rows of a report.
type Retriever interface {
	// Rows yields report rows in file order.
	Rows(ctx context.Context, loc string) iter.Seq2[clean.Row, error]
}

// Sink receives everything a sync run emits.
type Sink interface {
	// WriteSchema declares the record shape of a stream.
	WriteSchema(
		ctx context.Context,
		streamID string,
		schema map[string]any,
		keys []string,
	) error

	// WriteRecord emits one record of a stream.
	WriteRecord(
		ctx context.Context,
		streamID string,
		rec clean.Record,
		extractedAt time.Time,
	) error

	// WriteState persists a state snapshot.
	WriteState(ctx context.Context, st *state.State) error
}
