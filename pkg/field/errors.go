package field

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

// CoercionError is returned when a present cell cannot be converted to
// the rule type.
func CoercionError(raw string, typ Type, err error) error {
	msg := "Cannot convert <em>%q</em> to %s"
	vars := []any{raw, typ}
	return &gn.Error{
		Code: errcode.FieldCoercionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot convert %q to %s: %w", raw, typ, err),
	}
}

// MissingValueError is returned when a non-nullable cell is missing or
// blank.
func MissingValueError(typ Type) error {
	msg := "Missing value for a required %s field"
	vars := []any{typ}
	return &gn.Error{
		Code: errcode.FieldCoercionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing value for required %s field", typ),
	}
}
