package iofs

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create directory <em>%s</em>"
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("mkdir %s: %w", dir, err),
	}
}

// WriteConfigError is returned when the default config cannot be
// written on the first run.
func WriteConfigError(path string, err error) error {
	msg := "Cannot write default config to <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ConfigFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("write config %s: %w", path, err),
	}
}

// ReadFileError covers config, catalog and state files.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read %s: %w", path, err),
	}
}
