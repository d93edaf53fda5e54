package iostate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot open checkpoint store <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.StateStoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open checkpoint store %s: %w", path, err),
	}
}

func WriteError(runID string, err error) error {
	msg := "Cannot save checkpoint of run <em>%s</em>"
	vars := []any{runID}
	return &gn.Error{
		Code: errcode.StateStoreWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot save checkpoint of run %s: %w", runID, err),
	}
}

func ReadError(err error) error {
	msg := "Cannot read checkpoint store"
	return &gn.Error{
		Code: errcode.StateStoreReadError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot read checkpoint store: %w", err),
	}
}
