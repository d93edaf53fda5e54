package iologger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

func CreateLogFileError(path string, err error) error {
	msg := `Cannot create log file <em>%s</em>

Set log.destination to "stderr" to log without a file.`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("create log file %s: %w", path, err),
	}
}
