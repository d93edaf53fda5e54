package tap

import (
	"time"

	"github.com/gnames/tapadyen/pkg/state"
)

// Options configure an Engine.
type Options struct {
	// DefaultState seeds the state of streams that were never synced.
	// Only the bookmark key of the stream is taken from it.
	DefaultState state.StreamState

	// Schemaless emits rows as delivered, without cleaning.
	Schemaless bool

	// Now gives the extraction time of records. Defaults to UTC now.
	Now func() time.Time

	// OnPhase is called when a stream enters a phase.
	OnPhase func(streamID string, p Phase)

	// OnLocator is called before rows of a locator are streamed.
	OnLocator func(streamID, loc string)

	// OnRecord is called after a record is written.
	OnRecord func(streamID string)
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now().UTC()
}

func (o Options) phase(streamID string, p Phase) {
	if o.OnPhase != nil {
		o.OnPhase(streamID, p)
	}
}

func (o Options) locator(streamID, loc string) {
	if o.OnLocator != nil {
		o.OnLocator(streamID, loc)
	}
}

func (o Options) record(streamID string) {
	if o.OnRecord != nil {
		o.OnRecord(streamID)
	}
}
