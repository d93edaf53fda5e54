package catalog

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

func ParseError(err error) error {
	msg := "Cannot parse catalog"
	return &gn.Error{
		Code: errcode.CatalogParseError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot parse catalog: %w", err),
	}
}

func UnknownStreamError(id string, err error) error {
	msg := "Catalog contains unknown stream <em>%s</em>"
	vars := []any{id}
	return &gn.Error{
		Code: errcode.CatalogUnknownStreamError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("catalog stream %q: %w", id, err),
	}
}
