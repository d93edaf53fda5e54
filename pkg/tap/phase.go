package tap

// Phase is a step of the per-stream sync state machine.
type Phase int

const (
	NotStarted Phase = iota
	ResolvingState
	EnumeratingLocators
	StreamingRows
	AdvancingBookmark
	Done
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case ResolvingState:
		return "resolving_state"
	case EnumeratingLocators:
		return "enumerating_locators"
	case StreamingRows:
		return "streaming_rows"
	case AdvancingBookmark:
		return "advancing_bookmark"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}
