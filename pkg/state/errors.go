package state

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

// ParseError is returned when a state document is not valid JSON.
func ParseError(err error) error {
	msg := "Cannot parse state document"
	return &gn.Error{
		Code: errcode.StateParseError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot parse state: %w", err),
	}
}
