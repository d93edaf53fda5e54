package stream_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
	"github.com/gnames/tapadyen/pkg/field"
	"github.com/gnames/tapadyen/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range stream.Kinds() {
		res, err := stream.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, res)
	}

	_, err := stream.ParseKind("balance_platform")
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.UnknownStreamError, gnErr.Code)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		kind   stream.Kind
		id     string
		prefix string
	}{
		{stream.SettlementDetails, "settlement_details", "settlement_detail_report"},
		{stream.DisputeTransactionDetails, "dispute_transaction_details", "dispute_report"},
		{stream.PaymentAccounting, "payment_accounting", "payments_accounting_report"},
		{stream.ReceivedPayments, "received_payments", "received_payments_report"},
	}

	for _, v := range tests {
		d, err := stream.Lookup(v.kind)
		require.NoError(t, err, v.id)
		assert.Equal(t, v.id, d.ID)
		assert.Equal(t, v.prefix, d.ReportPrefix)
		assert.Equal(t, stream.DateBookmark, d.Bookmark)
		assert.Equal(t, []string{"id"}, d.KeyProperties)
		assert.NotEmpty(t, d.Fields)
	}

	_, err := stream.Lookup(stream.Kind(99))
	require.Error(t, err)
}

func TestAllUniqueFieldNames(t *testing.T) {
	all := stream.All()
	require.Len(t, all, 4)

	for _, d := range all {
		seen := make(map[string]bool)
		for _, f := range d.Fields {
			assert.False(t, seen[f.Name], "%s: duplicate %s", d.ID, f.Name)
			assert.NotEqual(t, stream.IDField, f.Name)
			assert.True(t, f.Rule.Nullable, "%s: %s", d.ID, f.Name)
			seen[f.Name] = true
		}
	}
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		col, res string
	}{
		{"Record Date", "record_date"},
		{"Gross Debit (GC)", "gross_debit_gc"},
		{"TimeZone", "timezone"},
		{"3D Directory Response", "3d_directory_response"},
		{"  Psp Reference ", "psp_reference"},
		{"Processing Fee (FC)", "processing_fee_fc"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, stream.FieldName(v.col), v.col)
	}
}

func TestSchema(t *testing.T) {
	d, err := stream.Lookup(stream.DisputeTransactionDetails)
	require.NoError(t, err)

	sch := d.Schema()
	props, ok := sch["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, len(d.Fields)+1)

	id := props["id"].(map[string]any)
	assert.Equal(t, []string{"integer"}, id["type"])

	rd := props["record_date"].(map[string]any)
	assert.Equal(t, []string{"null", "string"}, rd["type"])
	assert.Equal(t, "date-time", rd["format"])

	amt := props["dispute_amount"].(map[string]any)
	assert.Equal(t, []string{"null", "number"}, amt["type"])

	raw := d.RawSchema()["properties"].(map[string]any)
	assert.Contains(t, raw, "Record Date")
}

func TestCandidate(t *testing.T) {
	d, err := stream.Lookup(stream.PaymentAccounting)
	require.NoError(t, err)

	bm := d.Candidate("https://x/payments_accounting_report_2021_02_01.csv")
	assert.True(t, bm.Truthy())
	assert.Equal(t, "2021-02-01", bm.Value())

	bm = d.Candidate("https://x/payments_accounting_report.csv")
	assert.False(t, bm.Truthy())
}

func TestFieldTypes(t *testing.T) {
	d, err := stream.Lookup(stream.PaymentAccounting)
	require.NoError(t, err)

	types := make(map[string]field.Type)
	for _, f := range d.Fields {
		types[f.Name] = f.Rule.Type
	}
	assert.Equal(t, field.Datetime, types["booking_date"])
	assert.Equal(t, field.Float, types["main_amount"])
	assert.Equal(t, field.Int, types["batch_number"])
	assert.Equal(t, field.String, types["psp_reference"])
}
