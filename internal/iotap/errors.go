package iotap

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

func CatalogEncodeError(err error) error {
	msg := "Cannot write the catalog"
	return &gn.Error{
		Code: errcode.CatalogWriteError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot write catalog: %w", err),
	}
}
