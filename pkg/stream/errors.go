package stream

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
)

// UnknownStreamError is returned for stream ids that are not supported.
func UnknownStreamError(id string) error {
	msg := `Unknown stream <em>%s</em>

<em>Supported streams:</em>
  - settlement_details
  - dispute_transaction_details
  - payment_accounting
  - received_payments`
	vars := []any{id}
	return &gn.Error{
		Code: errcode.UnknownStreamError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown stream %q", id),
	}
}
