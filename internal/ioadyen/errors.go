package ioadyen

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

func ReportRequestError(loc string, err error) error {
	msg := "Cannot reach report <em>%s</em>"
	vars := []any{loc}
	return &gn.Error{
		Code: errcode.ReportRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("request %s: %w", loc, err),
	}
}

func ReportStatusError(loc string, status int) error {
	msg := "Report <em>%s</em> answered with status %d"
	vars := []any{loc, status}
	return &gn.Error{
		Code: errcode.ReportStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("report %s: unexpected status %d", loc, status),
	}
}

func ReportCSVError(loc string, err error) error {
	msg := "Cannot read CSV of report <em>%s</em>"
	vars := []any{loc}
	return &gn.Error{
		Code: errcode.ReportCSVError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("csv %s: %w", loc, err),
	}
}

func BookmarkParseError(bookmark string) error {
	msg := `Cannot read date bookmark <em>%q</em>

Use YYYY-MM-DD, YYYY-MM-DDThh:mm:ss+hhmm or RFC 3339.`
	vars := []any{bookmark}
	return &gn.Error{
		Code: errcode.BookmarkParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse date bookmark %q", bookmark),
	}
}
