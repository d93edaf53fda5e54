package tap

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

// SinkError wraps failures of the sink.
func SinkError(streamID, op string, err error) error {
	msg := "Cannot write %s of stream <em>%s</em>"
	vars := []any{op, streamID}
	return &gn.Error{
		Code: errcode.SinkWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("stream %s: write %s: %w", streamID, op, err),
	}
}

// RowError adds the locator and the row ordinal to a cleaning failure.
func RowError(loc string, ordinal int, err error) error {
	code := errcode.UnknownError
	if gnErr, ok := err.(*gn.Error); ok {
		code = gnErr.Code
	}
	msg := "Cannot clean row <em>%d</em> of <em>%s</em>"
	vars := []any{ordinal, loc}
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s row %d: %w", loc, ordinal, err),
	}
}

// CancelledError is returned when the context ends the run.
func CancelledError(err error) error {
	msg := "Sync cancelled"
	return &gn.Error{
		Code: errcode.SyncCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("sync cancelled: %w", err),
	}
}
