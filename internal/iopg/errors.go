package iopg

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

func NotConnectedError() error {
	msg := "No database connection"
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  errors.New("database is not connected"),
	}
}

func MigrateError(err error) error {
	msg := "Cannot create target tables"
	return &gn.Error{
		Code: errcode.DBMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot migrate target tables: %w", err),
	}
}

func WriteError(table string, err error) error {
	msg := "Cannot write to <em>%s</em>"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.DBWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write to %s: %w", table, err),
	}
}

func MissingTableError(table string) error {
	msg := `Target table <em>%s</em> does not exist after migration

Make sure the database user can create tables.`
	vars := []any{table}
	return &gn.Error{
		Code: errcode.DBMigrateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("table %s is missing after migration", table),
	}
}
