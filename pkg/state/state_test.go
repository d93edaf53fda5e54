package state_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
	"github.com/gnames/tapadyen/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"currently_syncing": "payment_accounting",
		"bookmarks": {
			"payment_accounting": {
				"start_date": "2021-02-01",
				"initial_full_table_complete": true
			},
			"settlement_details": {"batch_number": 12}
		}
	}`)

	st, err := state.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "payment_accounting", st.CurrentlySyncing)

	ss, ok := st.Stream("payment_accounting")
	require.True(t, ok)
	assert.Equal(t, "2021-02-01", ss.Bookmark("start_date").String())
	assert.True(t, ss.InitialFullTableComplete())

	ss, ok = st.Stream("settlement_details")
	require.True(t, ok)
	bm := ss.Bookmark("batch_number")
	assert.True(t, bm.IsInt())
	assert.Equal(t, int64(12), bm.Int())
	assert.False(t, ss.InitialFullTableComplete())

	_, ok = st.Stream("received_payments")
	assert.False(t, ok)
}

func TestParseEmpty(t *testing.T) {
	st, err := state.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, st.CurrentlySyncing)
	assert.Empty(t, st.Bookmarks)

	st, err = state.Parse([]byte(`{"currently_syncing": null}`))
	require.NoError(t, err)
	assert.Empty(t, st.CurrentlySyncing)
}

func TestParseError(t *testing.T) {
	_, err := state.Parse([]byte(`{"bookmarks": [`))
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.StateParseError, gnErr.Code)
}

func TestEncode(t *testing.T) {
	st := state.New()
	state.SetBookmark(st, "dispute_transaction_details", "start_date", "2021-02-01")
	state.SetBookmark(st, "dispute_transaction_details",
		state.InitialFullTableCompleteKey, true)

	res, err := st.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"currently_syncing": null,
		"bookmarks": {
			"dispute_transaction_details": {
				"start_date": "2021-02-01",
				"initial_full_table_complete": true
			}
		}
	}`, string(res))

	st.SetCurrentlySyncing("dispute_transaction_details")
	res, err = st.Encode()
	require.NoError(t, err)

	st2, err := state.Parse(res)
	require.NoError(t, err)
	assert.Equal(t, st.CurrentlySyncing, st2.CurrentlySyncing)
	ss, _ := st2.Stream("dispute_transaction_details")
	assert.True(t, ss.InitialFullTableComplete())

	st.ClearCurrentlySyncing()
	assert.Empty(t, st.CurrentlySyncing)
}

func TestSetBookmarkOverwrites(t *testing.T) {
	st := state.New()
	st.PutStream("payment_accounting", state.StreamState{
		"start_date": "2021-01-01T00:00:00+0000",
		"extra":      "kept",
	})

	state.SetBookmark(st, "payment_accounting", "start_date", "2021-02-01")

	ss, _ := st.Stream("payment_accounting")
	assert.Equal(t, "2021-02-01", ss["start_date"])
	assert.Equal(t, "kept", ss["extra"])
	assert.Len(t, st.Bookmarks, 1)
}

func TestClone(t *testing.T) {
	st := state.New()
	state.SetBookmark(st, "a", "start_date", "2021-01-01")
	st.SetCurrentlySyncing("a")

	snap := st.Clone()
	state.SetBookmark(st, "a", "start_date", "2021-02-01")

	ss, _ := snap.Stream("a")
	assert.Equal(t, "2021-01-01", ss["start_date"])
	assert.Equal(t, "a", snap.CurrentlySyncing)
}

func TestBookmarkTruthy(t *testing.T) {
	tests := []struct {
		msg string
		bm  state.Bookmark
		res bool
	}{
		{"date", state.StringBookmark("2021-02-01"), true},
		{"empty string", state.StringBookmark(""), false},
		{"int", state.IntBookmark(3), true},
		{"zero", state.IntBookmark(0), false},
		{"nil", state.BookmarkOf(nil), false},
		{"float from json", state.BookmarkOf(float64(7)), true},
		{"unsupported", state.BookmarkOf(true), false},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, v.bm.Truthy(), v.msg)
	}

	assert.Equal(t, int64(3), state.IntBookmark(3).Value())
	assert.Equal(t, "x", state.StringBookmark("x").Value())
}
