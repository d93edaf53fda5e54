package iotap_test

import (
	"bytes"
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/tapadyen/internal/iostate"
	"github.com/gnames/tapadyen/internal/iotap"
	"github.com/gnames/tapadyen/pkg/catalog"
	"github.com/gnames/tapadyen/pkg/clean"
	"github.com/gnames/tapadyen/pkg/config"
	"github.com/gnames/tapadyen/pkg/state"
	"github.com/gnames/tapadyen/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const disputeLoc = "https://ca-test.adyen.com/reports/download/" +
	"MerchantAccount/Shop/dispute_report_2024_02_29.csv"

type fakeSource struct {
	locs   map[stream.Kind][]string
	rows   map[string][]clean.Row
	states []state.StreamState
}

func (f *fakeSource) Locators(
	_ context.Context,
	kind stream.Kind,
	ss state.StreamState,
) iter.Seq2[string, error] {
	f.states = append(f.states, ss)
	return func(yield func(string, error) bool) {
		for _, loc := range f.locs[kind] {
			if !yield(loc, nil) {
				return
			}
		}
	}
}

func (f *fakeSource) Rows(
	_ context.Context,
	loc string,
) iter.Seq2[clean.Row, error] {
	return func(yield func(clean.Row, error) bool) {
		for _, row := range f.rows[loc] {
			if !yield(row, nil) {
				return
			}
		}
	}
}

func newSource() *fakeSource {
	return &fakeSource{
		locs: map[stream.Kind][]string{
			stream.DisputeTransactionDetails: {disputeLoc},
		},
		rows: map[string][]clean.Row{
			disputeLoc: {
				{"Psp Reference": "8815", "Dispute Amount": "10.50"},
			},
		},
	}
}

func testConfig(t *testing.T, opts ...config.Option) *config.Config {
	cfg := config.New()
	base := []config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptSyncStartDate("2024-02-01"),
	}
	cfg.Update(append(base, opts...))
	return cfg
}

func lines(buf *bytes.Buffer) []map[string]any {
	var res []map[string]any
	enc := gnfmt.GNjson{}
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var msg map[string]any
		if err := enc.Decode([]byte(l), &msg); err == nil {
			res = append(res, msg)
		}
	}
	return res
}

func TestDiscover(t *testing.T) {
	cfg := testConfig(t)
	tp := iotap.New(cfg, iotap.OptSource(newSource()))

	var buf bytes.Buffer
	require.NoError(t, tp.Discover(context.Background(), &buf))

	cat, err := catalog.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, cat.Streams, 4)
	assert.Len(t, cat.SelectedStreams(), 4)
}

func TestSyncSinger(t *testing.T) {
	cfg := testConfig(t,
		config.OptSyncStreams([]string{"dispute_transaction_details"}),
	)
	src := newSource()
	var out bytes.Buffer
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tp := iotap.New(cfg,
		iotap.OptSource(src),
		iotap.OptStdout(&out),
		iotap.OptNow(func() time.Time { return now }),
	)

	summary, err := tp.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Records())

	msgs := lines(&out)
	require.Len(t, msgs, 4)
	types := make([]string, len(msgs))
	for i, m := range msgs {
		types[i] = m["type"].(string)
	}
	assert.Equal(t, []string{"SCHEMA", "RECORD", "STATE", "STATE"}, types)

	rec := msgs[1]["record"].(map[string]any)
	assert.Equal(t, 10.5, rec["dispute_amount"])
	assert.Equal(t, "2024-03-01T00:00:00Z", msgs[1]["time_extracted"])

	require.Len(t, src.states, 1)
	assert.Equal(t, "2024-02-01", src.states[0]["start_date"])
	assert.Equal(t, false, src.states[0]["initial_full_table_complete"])

	// the next run resumes from the checkpoint store
	tp = iotap.New(cfg, iotap.OptSource(src), iotap.OptStdout(&bytes.Buffer{}))
	_, err = tp.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, src.states, 2)
	assert.Equal(t, "2024-02-29", src.states[1]["start_date"])
	assert.Equal(t, true, src.states[1]["initial_full_table_complete"])

	store, err := iostate.Open(config.CheckpointsPath(cfg.HomeDir))
	require.NoError(t, err)
	defer store.Close()
	st, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Empty(t, st.CurrentlySyncing)
}

func TestSyncStateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	doc := `{"bookmarks":{"dispute_transaction_details":` +
		`{"start_date":"2024-02-20","initial_full_table_complete":true}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg := testConfig(t,
		config.OptSyncStreams([]string{"dispute_transaction_details"}),
		config.OptSyncStatePath(path),
		config.OptSyncCheckpoints(false),
	)
	src := newSource()
	tp := iotap.New(cfg, iotap.OptSource(src), iotap.OptStdout(&bytes.Buffer{}))

	_, err := tp.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, src.states, 1)
	assert.Equal(t, "2024-02-20", src.states[0]["start_date"])

	_, err = os.Stat(config.CheckpointsPath(cfg.HomeDir))
	assert.True(t, os.IsNotExist(err))
}

func TestSyncCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := `streams:
  - tap_stream_id: payment_accounting
    schema: {}
    metadata:
      - breadcrumb: []
        metadata:
          selected: true
  - tap_stream_id: dispute_transaction_details
    schema: {}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg := testConfig(t,
		config.OptSyncCatalogPath(path),
		config.OptSyncCheckpoints(false),
	)
	src := newSource()
	var out bytes.Buffer
	tp := iotap.New(cfg, iotap.OptSource(src), iotap.OptStdout(&out))

	summary, err := tp.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Streams, 1)
	assert.Equal(t, "payment_accounting", summary.Streams[0].ID)
	assert.Zero(t, summary.Records())

	msgs := lines(&out)
	require.NotEmpty(t, msgs)
	assert.Equal(t, "payment_accounting", msgs[0]["stream"])
}

func TestSyncUnknownStream(t *testing.T) {
	cfg := testConfig(t,
		config.OptSyncStreams([]string{"balance_platform"}),
		config.OptSyncCheckpoints(false),
	)
	tp := iotap.New(cfg, iotap.OptSource(newSource()))
	_, err := tp.Sync(context.Background())
	require.Error(t, err)
}
