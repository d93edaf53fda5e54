// Package state keeps the resumption checkpoint of a sync run.
//
// The document follows the Singer state layout:
//
//	{
//	  "currently_syncing": "dispute_transaction_details",
//	  "bookmarks": {
//	    "dispute_transaction_details": {
//	      "start_date": "2021-02-01",
//	      "initial_full_table_complete": true
//	    }
//	  }
//	}
//
// Stream states are created lazily and only ever overwritten in place.
package state

import (
	"maps"

	"github.com/gnames/gnfmt"
)

// InitialFullTableCompleteKey is the stream state key that turns true
// after the first successful bookmark update of a stream.
const InitialFullTableCompleteKey = "initial_full_table_complete"

// StreamState is the state of one stream. It is forwarded as a whole to
// the locator enumerator, so unknown keys are preserved.
type StreamState map[string]any

// Bookmark returns the bookmark stored under key.
func (s StreamState) Bookmark(key string) Bookmark {
	return BookmarkOf(s[key])
}

// InitialFullTableComplete reports whether the stream finished its first
// full pass.
func (s StreamState) InitialFullTableComplete() bool {
	b, _ := s[InitialFullTableCompleteKey].(bool)
	return b
}

// Clone returns a shallow copy of the stream state.
func (s StreamState) Clone() StreamState {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// State is the checkpoint of a whole run.
type State struct {
	// CurrentlySyncing is the id of the stream being synced, empty when
	// no stream is active.
	CurrentlySyncing string

	// Bookmarks holds the state of every stream seen so far.
	Bookmarks map[string]StreamState
}

// document is the serialized form of State.
type document struct {
	CurrentlySyncing *string                `json:"currently_syncing"`
	Bookmarks        map[string]StreamState `json:"bookmarks"`
}

// New returns an empty State.
func New() *State {
	return &State{Bookmarks: make(map[string]StreamState)}
}

// Parse decodes a Singer state document. Empty input gives an empty
// State.
func Parse(data []byte) (*State, error) {
	res := New()
	if len(data) == 0 {
		return res, nil
	}

	var doc document
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &doc); err != nil {
		return nil, ParseError(err)
	}

	if doc.CurrentlySyncing != nil {
		res.CurrentlySyncing = *doc.CurrentlySyncing
	}
	for k, v := range doc.Bookmarks {
		if v == nil {
			v = StreamState{}
		}
		res.Bookmarks[k] = v
	}
	return res, nil
}

// Document returns the value that is serialized for the state. It is
// used as the payload of STATE messages.
func (s *State) Document() any {
	doc := document{Bookmarks: s.Bookmarks}
	if doc.Bookmarks == nil {
		doc.Bookmarks = map[string]StreamState{}
	}
	if s.CurrentlySyncing != "" {
		id := s.CurrentlySyncing
		doc.CurrentlySyncing = &id
	}
	return doc
}

// Encode serializes the state to JSON.
func (s *State) Encode() ([]byte, error) {
	enc := gnfmt.GNjson{}
	return enc.Encode(s.Document())
}

// Stream returns the state of a stream and whether it exists.
func (s *State) Stream(id string) (StreamState, bool) {
	ss, ok := s.Bookmarks[id]
	return ss, ok
}

// PutStream stores the state of a stream, replacing the previous one.
func (s *State) PutStream(id string, ss StreamState) {
	if s.Bookmarks == nil {
		s.Bookmarks = make(map[string]StreamState)
	}
	s.Bookmarks[id] = ss
}

// SetCurrentlySyncing marks id as the only active stream.
func (s *State) SetCurrentlySyncing(id string) {
	s.CurrentlySyncing = id
}

// ClearCurrentlySyncing removes the active stream marker.
func (s *State) ClearCurrentlySyncing() {
	s.CurrentlySyncing = ""
}

// Clone returns a deep enough copy of the state for snapshots: stream
// states are copied, their values are shared.
func (s *State) Clone() *State {
	res := New()
	res.CurrentlySyncing = s.CurrentlySyncing
	for k, v := range s.Bookmarks {
		res.Bookmarks[k] = v.Clone()
	}
	return res
}

// SetBookmark writes value under key in the state of a stream, creating
// the stream state when needed. It does no I/O.
func SetBookmark(s *State, streamID, key string, value any) {
	ss, ok := s.Stream(streamID)
	if !ok || ss == nil {
		ss = StreamState{}
		s.PutStream(streamID, ss)
	}
	ss[key] = value
}
