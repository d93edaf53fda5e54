package tap

import (
	"context"
	"log/slog"

	"github.com/gnames/tapadyen/pkg/catalog"
	"github.com/gnames/tapadyen/pkg/clean"
	"github.com/gnames/tapadyen/pkg/state"
	"github.com/gnames/tapadyen/pkg/stream"
)

// Engine syncs catalog streams one after another.
type Engine struct {
	enum Enumerator
	ret  Retriever
	sink Sink
	opts Options
}

// New creates an Engine from its capabilities.
func New(enum Enumerator, ret Retriever, sink Sink, opts Options) *Engine {
	return &Engine{enum: enum, ret: ret, sink: sink, opts: opts}
}

// StreamSummary counts what was synced for a stream.
type StreamSummary struct {
	ID       string
	Locators int
	Records  int
}

// Summary is the outcome of a sync run.
type Summary struct {
	// State is the last state snapshot of the run.
	State *state.State

	// Streams lists streams in the order they were synced.
	Streams []StreamSummary
}

// Records returns the number of records of all streams.
func (s Summary) Records() int {
	var res int
	for _, v := range s.Streams {
		res += v.Records
	}
	return res
}

// run owns the state snapshot and the currently syncing marker of one
// Sync call.
type run struct {
	*Engine
	ctx     context.Context
	st      *state.State
	streams []StreamSummary
}

// Sync runs the state machine for every entry in the given order,
// except that a stream interrupted in a previous run, as recorded by
// currently_syncing, goes first. The input state is not modified. On error the summary holds the state
// as it was at the moment of failure, while the sink keeps the last
// persisted snapshot.
func (e *Engine) Sync(
	ctx context.Context,
	st *state.State,
	entries []catalog.Entry,
) (Summary, error) {
	if st == nil {
		st = state.New()
	}
	r := &run{Engine: e, ctx: ctx, st: st.Clone()}

	for _, entry := range resumeOrder(entries, st.CurrentlySyncing) {
		if err := r.syncStream(entry); err != nil {
			return r.summary(), err
		}
	}
	return r.summary(), nil
}

// resumeOrder rotates entries so the stream with id comes first and
// the rest keep their cyclic order. Unknown ids leave entries as is.
func resumeOrder(entries []catalog.Entry, id string) []catalog.Entry {
	if id == "" {
		return entries
	}
	for i, e := range entries {
		if e.TapStreamID == id {
			res := make([]catalog.Entry, 0, len(entries))
			res = append(res, entries[i:]...)
			return append(res, entries[:i]...)
		}
	}
	return entries
}

func (r *run) summary() Summary {
	return Summary{State: r.st.Clone(), Streams: r.streams}
}

func (r *run) syncStream(entry catalog.Entry) error {
	kind, err := entry.Kind()
	if err != nil {
		return err
	}
	d, err := stream.Lookup(kind)
	if err != nil {
		return err
	}
	id := d.ID
	r.opts.phase(id, NotStarted)
	r.streams = append(r.streams, StreamSummary{ID: id})
	sum := &r.streams[len(r.streams)-1]
	slog.Info("Syncing stream", "stream", id)

	r.st.SetCurrentlySyncing(id)
	r.opts.phase(id, ResolvingState)
	ss := r.resolve(d)
	slog.Info("Stream state", "stream", id, "state", ss)

	schema, keys := r.schema(d, entry)
	if err = r.sink.WriteSchema(r.ctx, id, schema, keys); err != nil {
		return SinkError(id, "schema", err)
	}

	cleaner := clean.For(kind)
	r.opts.phase(id, EnumeratingLocators)
	for loc, err := range r.enum.Locators(r.ctx, kind, ss.Clone()) {
		if err != nil {
			return err
		}
		if err = r.ctx.Err(); err != nil {
			return CancelledError(err)
		}

		r.opts.phase(id, StreamingRows)
		r.opts.locator(id, loc)
		rows, err := r.streamRows(id, loc, cleaner)
		sum.Records += rows
		if err != nil {
			return err
		}
		sum.Locators++
		slog.Info("Report synced", "stream", id, "locator", loc, "rows", rows)

		r.opts.phase(id, AdvancingBookmark)
		r.advance(d, loc)
		if err = r.persist(id); err != nil {
			return err
		}
		r.opts.phase(id, EnumeratingLocators)
	}

	r.st.ClearCurrentlySyncing()
	if err = r.persist(id); err != nil {
		return err
	}
	r.opts.phase(id, Done)
	slog.Info("Stream synced",
		"stream", id,
		"locators", sum.Locators,
		"rows", sum.Records,
	)
	return nil
}

// resolve returns the stream state stored in the run state. A stream
// seen for the first time gets its bookmark from the default state, or
// a nil bookmark when the default state has none.
func (r *run) resolve(d stream.Descriptor) state.StreamState {
	ss, ok := r.st.Stream(d.ID)
	if !ok || ss == nil {
		// a missing default bookmark is stored as null
		ss = state.StreamState{d.Bookmark: r.opts.DefaultState[d.Bookmark]}
		slog.Info("Stream state not found, using default state",
			"stream", d.ID,
			"default", r.opts.DefaultState,
		)
	}
	if _, ok := ss[state.InitialFullTableCompleteKey]; !ok {
		ss[state.InitialFullTableCompleteKey] = false
	}
	r.st.PutStream(d.ID, ss)
	return ss
}

func (r *run) schema(
	d stream.Descriptor,
	entry catalog.Entry,
) (map[string]any, []string) {
	schema := entry.Schema
	if len(schema) == 0 {
		schema = d.Schema()
		if r.opts.Schemaless {
			schema = d.RawSchema()
		}
	}
	keys := entry.KeyProperties
	if len(keys) == 0 {
		keys = d.KeyProperties
	}
	return schema, keys
}

func (r *run) streamRows(
	id, loc string,
	cleaner clean.Cleaner,
) (int, error) {
	var ordinal int
	for row, err := range r.ret.Rows(r.ctx, loc) {
		if err != nil {
			return ordinal, err
		}
		ordinal++

		var rec clean.Record
		if r.opts.Schemaless || cleaner == nil {
			rec = clean.Raw(row)
		} else {
			rec, err = cleaner(row, ordinal, loc)
			if err != nil {
				return ordinal - 1, RowError(loc, ordinal, err)
			}
		}

		err = r.sink.WriteRecord(r.ctx, id, rec, r.opts.now())
		if err != nil {
			return ordinal - 1, SinkError(id, "record", err)
		}
		r.opts.record(id)
	}
	return ordinal, nil
}

// advance moves the bookmark to the candidate of a consumed locator.
// Empty candidates leave the state untouched.
func (r *run) advance(d stream.Descriptor, loc string) {
	bm := d.Candidate(loc)
	if !bm.Truthy() {
		slog.Debug("No bookmark candidate", "stream", d.ID, "locator", loc)
		return
	}
	state.SetBookmark(r.st, d.ID, state.InitialFullTableCompleteKey, true)
	state.SetBookmark(r.st, d.ID, d.Bookmark, bm.Value())
}

func (r *run) persist(id string) error {
	if err := r.sink.WriteState(r.ctx, r.st.Clone()); err != nil {
		return SinkError(id, "state", err)
	}
	return nil
}
