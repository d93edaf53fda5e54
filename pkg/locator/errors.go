package locator

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

// MalformedLocatorError is returned when a locator has no YYYY_MM_DD
// token in front of its file extension.
func MalformedLocatorError(loc string) error {
	msg := `Report locator has no date token

<em>Locator:</em> %s

Expected a <em>YYYY_MM_DD</em> token right before the file extension.`
	vars := []any{loc}
	return &gn.Error{
		Code: errcode.MalformedLocatorError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no date token in locator %q", loc),
	}
}
