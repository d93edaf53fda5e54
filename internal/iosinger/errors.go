package iosinger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

func EncodeError(err error) error {
	msg := "Cannot encode Singer message"
	return &gn.Error{
		Code: errcode.SinkWriteError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot encode singer message: %w", err),
	}
}

func WriteError(err error) error {
	msg := "Cannot write Singer message"
	return &gn.Error{
		Code: errcode.SinkWriteError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot write singer message: %w", err),
	}
}
