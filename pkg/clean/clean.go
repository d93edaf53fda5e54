// Package clean turns raw report rows into normalized records.
//
// Every stream has its own column table, but all of them build the record
// identifier the same way: the date token of the report locator as
// YYYYMMDD followed by the 1-based row ordinal padded to ten digits.
package clean

import (
	"fmt"
	"strconv"

	"github.com/gnames/tapadyen/pkg/field"
	"github.com/gnames/tapadyen/pkg/locator"
	"github.com/gnames/tapadyen/pkg/stream"
)

// MaxOrdinal is the largest row ordinal that fits the identifier.
const MaxOrdinal = 9_999_999_999

// Row is a raw report line keyed by column header.
type Row map[string]string

// Record is a cleaned report line keyed by normalized field name.
type Record map[string]field.Value

// ID returns the record identifier and whether it is set.
func (r Record) ID() (int64, bool) {
	v, ok := r[stream.IDField]
	if !ok || !v.Valid {
		return 0, false
	}
	id, ok := v.V.(int64)
	return id, ok
}

// Map returns the record as plain values, Null becomes nil.
func (r Record) Map() map[string]any {
	res := make(map[string]any, len(r))
	for k, v := range r {
		res[k] = v.Any()
	}
	return res
}

// Cleaner converts a row with its 1-based ordinal and source locator into
// a record.
type Cleaner func(row Row, ordinal int, loc string) (Record, error)

// CleanRow runs every spec of the table through the field normalizer.
func CleanRow(row Row, specs []field.Spec) (Record, error) {
	res := make(Record, len(specs)+1)
	for _, s := range specs {
		raw, ok := row[s.Column]
		v, err := field.Normalize(raw, ok, s.Rule)
		if err != nil {
			return nil, ColumnError(s.Column, err)
		}
		res[s.Name] = v
	}
	return res, nil
}

// CompositeID builds the record identifier from the locator date and the
// row ordinal.
func CompositeID(d locator.Date, ordinal int) (int64, error) {
	if ordinal < 1 || ordinal > MaxOrdinal {
		return 0, OrdinalError(ordinal)
	}
	s := d.Compact() + fmt.Sprintf("%010d", ordinal)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, OrdinalError(ordinal)
	}
	return id, nil
}

// SettlementDetails cleans settlement details report rows.
func SettlementDetails(row Row, ordinal int, loc string) (Record, error) {
	return cleanKind(stream.SettlementDetails, row, ordinal, loc)
}

// DisputeTransactionDetails cleans dispute report rows.
func DisputeTransactionDetails(row Row, ordinal int, loc string) (Record, error) {
	return cleanKind(stream.DisputeTransactionDetails, row, ordinal, loc)
}

// PaymentAccounting cleans payments accounting report rows.
func PaymentAccounting(row Row, ordinal int, loc string) (Record, error) {
	return cleanKind(stream.PaymentAccounting, row, ordinal, loc)
}

// ReceivedPayments cleans received payments report rows.
func ReceivedPayments(row Row, ordinal int, loc string) (Record, error) {
	return cleanKind(stream.ReceivedPayments, row, ordinal, loc)
}

// For returns the cleaner of a stream kind, nil for unknown kinds.
func For(k stream.Kind) Cleaner {
	switch k {
	case stream.SettlementDetails:
		return SettlementDetails
	case stream.DisputeTransactionDetails:
		return DisputeTransactionDetails
	case stream.PaymentAccounting:
		return PaymentAccounting
	case stream.ReceivedPayments:
		return ReceivedPayments
	default:
		return nil
	}
}

// Raw keeps the row as is, every cell becomes a string value.
func Raw(row Row) Record {
	res := make(Record, len(row))
	for k, v := range row {
		res[k] = field.Of(v)
	}
	return res
}

func cleanKind(k stream.Kind, row Row, ordinal int, loc string) (Record, error) {
	d, err := stream.Lookup(k)
	if err != nil {
		return nil, err
	}

	date, err := locator.ExtractDate(loc)
	if err != nil {
		return nil, err
	}

	res, err := CleanRow(row, d.Fields)
	if err != nil {
		return nil, err
	}

	id, err := CompositeID(date, ordinal)
	if err != nil {
		return nil, err
	}
	res[stream.IDField] = field.Of(id)
	return res, nil
}
