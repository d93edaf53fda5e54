package clean

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

// ColumnError adds the column name to a field normalization error.
func ColumnError(col string, err error) error {
	code := errcode.FieldCoercionError
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		code = gnErr.Code
	}
	msg := "Bad value in column <em>%s</em>"
	vars := []any{col}
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("column %q: %w", col, err),
	}
}

// OrdinalError is returned for row ordinals that do not fit the record
// identifier.
func OrdinalError(ordinal int) error {
	msg := "Row ordinal <em>%d</em> is out of range"
	vars := []any{ordinal}
	return &gn.Error{
		Code: errcode.RowOrdinalError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("row ordinal %d out of range", ordinal),
	}
}
