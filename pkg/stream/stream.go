// Package stream describes the report streams tapadyen can sync.
//
// Every stream kind is known at compile time. A [Descriptor] gives the
// stream id, the name of its bookmark field, the key properties of its
// records, the report name prefix used in download locators and the
// column mapping table used to clean report rows.
package stream

import (
	"github.com/gnames/tapadyen/pkg/field"
	"github.com/gnames/tapadyen/pkg/locator"
	"github.com/gnames/tapadyen/pkg/state"
)

// Kind enumerates supported report streams.
type Kind int

const (
	// SettlementDetails is the settlement details report.
	SettlementDetails Kind = iota + 1
	// DisputeTransactionDetails is the dispute transaction details report.
	DisputeTransactionDetails
	// PaymentAccounting is the payments accounting report.
	PaymentAccounting
	// ReceivedPayments is the received payments report.
	ReceivedPayments
)

// kinds lists all stream kinds in catalog order.
var kinds = []Kind{
	SettlementDetails,
	DisputeTransactionDetails,
	PaymentAccounting,
	ReceivedPayments,
}

// IDField is the name of the synthetic record identifier.
const IDField = "id"

// DateBookmark is the bookmark field of date based streams.
const DateBookmark = "start_date"

// String returns the stream id.
func (k Kind) String() string {
	switch k {
	case SettlementDetails:
		return "settlement_details"
	case DisputeTransactionDetails:
		return "dispute_transaction_details"
	case PaymentAccounting:
		return "payment_accounting"
	case ReceivedPayments:
		return "received_payments"
	default:
		return "unknown"
	}
}

// ParseKind returns the stream kind of a stream id.
func ParseKind(id string) (Kind, error) {
	for _, k := range kinds {
		if k.String() == id {
			return k, nil
		}
	}
	return 0, UnknownStreamError(id)
}

// Kinds returns all stream kinds in catalog order.
func Kinds() []Kind {
	res := make([]Kind, len(kinds))
	copy(res, kinds)
	return res
}

// Descriptor is the immutable description of a stream.
type Descriptor struct {
	// Kind of the stream.
	Kind Kind

	// ID is the stream id used in catalog, state and messages.
	ID string

	// Bookmark is the state key holding the stream cursor.
	Bookmark string

	// KeyProperties are the record fields forming the primary key.
	KeyProperties []string

	// ReportPrefix is the report file name in front of the date token.
	ReportPrefix string

	// Fields maps report columns to normalized record fields.
	Fields []field.Spec
}

// Lookup returns the descriptor of a stream kind.
func Lookup(k Kind) (Descriptor, error) {
	res := Descriptor{
		Kind:          k,
		ID:            k.String(),
		Bookmark:      DateBookmark,
		KeyProperties: []string{IDField},
	}

	switch k {
	case SettlementDetails:
		res.ReportPrefix = "settlement_detail_report"
		res.Fields = settlementDetailsFields
	case DisputeTransactionDetails:
		res.ReportPrefix = "dispute_report"
		res.Fields = disputeTransactionDetailsFields
	case PaymentAccounting:
		res.ReportPrefix = "payments_accounting_report"
		res.Fields = paymentAccountingFields
	case ReceivedPayments:
		res.ReportPrefix = "received_payments_report"
		res.Fields = receivedPaymentsFields
	default:
		return Descriptor{}, UnknownStreamError(k.String())
	}
	return res, nil
}

// All returns descriptors of every stream in catalog order.
func All() []Descriptor {
	res := make([]Descriptor, 0, len(kinds))
	for _, k := range kinds {
		d, _ := Lookup(k)
		res = append(res, d)
	}
	return res
}

// Candidate derives the next bookmark from a fully consumed locator.
// It is the ISO date of the locator token, or an empty bookmark when the
// locator has no token.
func (d Descriptor) Candidate(loc string) state.Bookmark {
	date, err := locator.ExtractDate(loc)
	if err != nil {
		return state.Bookmark{}
	}
	return state.StringBookmark(date.ISO())
}
