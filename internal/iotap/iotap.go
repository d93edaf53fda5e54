// Package iotap implements the Tapper interface.
// This is an impure I/O package that wires the report client, the
// targets and the checkpoint store around the sync engine.
package iotap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/tapadyen/internal/ioadyen"
	"github.com/gnames/tapadyen/internal/iodb"
	"github.com/gnames/tapadyen/internal/iofs"
	"github.com/gnames/tapadyen/internal/iopg"
	"github.com/gnames/tapadyen/internal/iosinger"
	"github.com/gnames/tapadyen/internal/iostate"
	"github.com/gnames/tapadyen/pkg/catalog"
	"github.com/gnames/tapadyen/pkg/config"
	"github.com/gnames/tapadyen/pkg/state"
	"github.com/gnames/tapadyen/pkg/stream"
	"github.com/gnames/tapadyen/pkg/tap"
	"github.com/gnames/tapadyen/pkg/tapadyen"
	"github.com/google/uuid"
)

// Source finds and downloads reports.
type Source interface {
	tap.Enumerator
	tap.Retriever
}

type tapper struct {
	cfg      *config.Config
	src      Source
	stdout   io.Writer
	progress io.Writer
	now      func() time.Time
}

// Option modifies the tapper.
type Option func(*tapper)

// OptSource replaces the Adyen report client.
func OptSource(src Source) Option {
	return func(t *tapper) {
		t.src = src
	}
}

// OptStdout sets where Singer messages go. Defaults to STDOUT.
func OptStdout(w io.Writer) Option {
	return func(t *tapper) {
		t.stdout = w
	}
}

// OptProgress sets where progress bars are drawn. Nil disables them.
func OptProgress(w io.Writer) Option {
	return func(t *tapper) {
		t.progress = w
	}
}

// OptNow sets the clock of record extraction times.
func OptNow(now func() time.Time) Option {
	return func(t *tapper) {
		t.now = now
	}
}

// New creates a Tapper.
func New(cfg *config.Config, opts ...Option) tapadyen.Tapper {
	res := &tapper{
		cfg:    cfg,
		stdout: os.Stdout,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(res)
	}
	if res.src == nil {
		res.src = ioadyen.New(cfg.Adyen)
	}
	return res
}

// Discover writes the catalog of every stream with every stream
// selected.
func (t *tapper) Discover(_ context.Context, w io.Writer) error {
	cat := discover(t.cfg.Sync.Schemaless)
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(cat)
	if err != nil {
		return CatalogEncodeError(err)
	}
	if _, err = fmt.Fprintln(w, string(data)); err != nil {
		return CatalogEncodeError(err)
	}
	slog.Info("Catalog discovered", "streams", len(cat.Streams))
	return nil
}

// Sync runs the engine over selected streams.
func (t *tapper) Sync(ctx context.Context) (tap.Summary, error) {
	var summary tap.Summary
	startTime := time.Now()

	cat, err := t.catalog()
	if err != nil {
		return summary, err
	}
	entries := cat.SelectedStreams()
	if len(entries) == 0 {
		slog.Warn("No streams are selected")
		return tap.Summary{State: state.New()}, nil
	}

	runID := uuid.NewString()
	slog.Info("Starting sync", "run_id", runID, "streams", len(entries))

	var store *iostate.Store
	if t.cfg.Sync.Checkpoints {
		store, err = iostate.Open(config.CheckpointsPath(t.cfg.HomeDir))
		if err != nil {
			return summary, err
		}
		defer store.Close()
	}

	st, err := t.state(ctx, store)
	if err != nil {
		return summary, err
	}

	sink, closeSink, err := t.sink(ctx, runID)
	if err != nil {
		return summary, err
	}
	if store != nil {
		sink = &checkpointSink{Sink: sink, store: store, runID: runID}
	}

	prog := newProgress(t.progress)
	opts := tap.Options{
		DefaultState: state.StreamState{stream.DateBookmark: t.cfg.Sync.StartDate},
		Schemaless:   t.cfg.Sync.Schemaless,
		Now:          t.now,
		OnPhase:      prog.phase,
		OnLocator:    prog.locator,
		OnRecord:     prog.record,
	}
	engine := tap.New(t.src, t.src, sink, opts)

	summary, err = engine.Sync(ctx, st, entries)
	prog.finish()
	if cerr := closeSink(ctx); err == nil {
		err = cerr
	}
	if err != nil {
		slog.Error("Sync failed", "run_id", runID, "error", err)
		return summary, err
	}

	t.report(summary, time.Since(startTime))
	return summary, nil
}

func (t *tapper) report(s tap.Summary, dur time.Duration) {
	for _, v := range s.Streams {
		slog.Info("Stream synced",
			"stream", v.ID,
			"locators", v.Locators,
			"rows", v.Records,
		)
	}
	slog.Info("Sync complete",
		"streams", len(s.Streams),
		"rows", s.Records(),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)

	// STDOUT carries Singer messages, user messages are only safe for
	// other targets.
	if t.cfg.Sync.Target != "postgres" {
		return
	}
	gn.Info(summaryMsg,
		len(s.Streams),
		humanize.Comma(int64(s.Records())),
		gnfmt.TimeString(dur.Seconds()),
	)
}

const summaryMsg = `Sync complete
Streams: %d, records: <em>%s</em>.
Elapsed time: <em>%s</em>
`

// catalog reads the catalog file or discovers every stream, then
// applies the --streams filter.
func (t *tapper) catalog() (catalog.Catalog, error) {
	var cat catalog.Catalog
	path := t.cfg.Sync.CatalogPath
	if path == "" {
		cat = discover(t.cfg.Sync.Schemaless)
	} else {
		data, err := iofs.ReadFile(path)
		if err != nil {
			return cat, err
		}
		if cat, err = catalog.Parse(data); err != nil {
			return cat, err
		}
	}

	if err := cat.Validate(); err != nil {
		return cat, err
	}
	if err := cat.SelectOnly(t.cfg.Sync.Streams); err != nil {
		return cat, err
	}
	return cat, nil
}

// state prefers the --state file over the last checkpoint.
func (t *tapper) state(
	ctx context.Context,
	store *iostate.Store,
) (*state.State, error) {
	if t.cfg.Sync.StatePath != "" || store == nil {
		return iostate.ReadFile(t.cfg.Sync.StatePath)
	}
	st, err := store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Resuming from checkpoint",
		"currently_syncing", st.CurrentlySyncing,
		"streams", len(st.Bookmarks),
	)
	return st, nil
}

func (t *tapper) sink(
	ctx context.Context,
	runID string,
) (tap.Sink, func(context.Context) error, error) {
	if t.cfg.Sync.Target != "postgres" {
		noop := func(context.Context) error { return nil }
		return iosinger.New(t.stdout), noop, nil
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &t.cfg.Database); err != nil {
		return nil, nil, err
	}
	pg, err := iopg.New(ctx, op, runID, t.cfg.Database.BatchSize)
	if err != nil {
		op.Close()
		return nil, nil, err
	}
	closeFn := func(ctx context.Context) error {
		defer op.Close()
		return pg.Close(ctx)
	}
	return pg, closeFn, nil
}

func discover(schemaless bool) catalog.Catalog {
	res := catalog.Discover(schemaless)
	for i := range res.Streams {
		res.Streams[i].Select(true)
	}
	return res
}

// checkpointSink keeps a local copy of every state the target stores.
type checkpointSink struct {
	tap.Sink
	store *iostate.Store
	runID string
}

func (s *checkpointSink) WriteState(ctx context.Context, st *state.State) error {
	if err := s.Sink.WriteState(ctx, st); err != nil {
		return err
	}
	return s.store.Save(ctx, s.runID, st)
}
