package field_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/tapadyen/pkg/errcode"
	"github.com/gnames/tapadyen/pkg/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNullable(t *testing.T) {
	types := []field.Type{
		field.String, field.Int, field.Float, field.Bool, field.Datetime,
	}

	for _, typ := range types {
		rule := field.Rule{Type: typ, Nullable: true}
		t.Run(typ.String(), func(t *testing.T) {
			res, err := field.Normalize("", false, rule)
			require.NoError(t, err)
			assert.False(t, res.Valid, "missing column")

			res, err = field.Normalize("   ", true, rule)
			require.NoError(t, err)
			assert.False(t, res.Valid, "blank cell")
			assert.Nil(t, res.Any())
		})
	}
}

func TestNormalizeRequired(t *testing.T) {
	rule := field.Rule{Type: field.Int}

	_, err := field.Normalize("", false, rule)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.FieldCoercionError, gnErr.Code)
}

func TestNormalizeValues(t *testing.T) {
	tests := []struct {
		msg  string
		raw  string
		rule field.Rule
		res  any
	}{
		{"int", "42", field.Rule{Type: field.Int}, int64(42)},
		{"negative int", " -7 ", field.Rule{Type: field.Int}, int64(-7)},
		{"float", "12.50", field.Rule{Type: field.Float}, 12.5},
		{"float no fraction", "3", field.Rule{Type: field.Float}, 3.0},
		{"bool true", "TRUE", field.Rule{Type: field.Bool}, true},
		{"bool no", "no", field.Rule{Type: field.Bool}, false},
		{"string", "  PSP123 ", field.Rule{Type: field.String}, "PSP123"},
		{
			"datetime",
			"2024-02-29 13:45:00",
			field.Rule{Type: field.Datetime},
			time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC),
		},
		{
			"date only",
			"2024-01-01",
			field.Rule{Type: field.Datetime},
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"custom layout",
			"01/02/2024",
			field.Rule{Type: field.Datetime, Layouts: []string{"01/02/2006"}},
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, v := range tests {
		res, err := field.Normalize(v.raw, true, v.rule)
		require.NoError(t, err, v.msg)
		assert.True(t, res.Valid, v.msg)
		assert.Equal(t, v.res, res.V, v.msg)
	}
}

func TestNormalizeCoercionFailure(t *testing.T) {
	tests := []struct {
		msg  string
		raw  string
		rule field.Rule
	}{
		{"int", "4.2", field.Rule{Type: field.Int, Nullable: true}},
		{"float", "abc", field.Rule{Type: field.Float, Nullable: true}},
		{"float nan", "NaN", field.Rule{Type: field.Float, Nullable: true}},
		{"float inf", "Inf", field.Rule{Type: field.Float, Nullable: true}},
		{"float -infinity", "-infinity", field.Rule{Type: field.Float, Nullable: true}},
		{"float +Inf", "+Inf", field.Rule{Type: field.Float, Nullable: true}},
		{"float hex", "0x1p-2", field.Rule{Type: field.Float, Nullable: true}},
		{"float overflow", "1e400", field.Rule{Type: field.Float, Nullable: true}},
		{"bool", "maybe", field.Rule{Type: field.Bool, Nullable: true}},
		{"datetime", "29.02.2024", field.Rule{Type: field.Datetime, Nullable: true}},
	}

	for _, v := range tests {
		_, err := field.Normalize(v.raw, true, v.rule)
		require.Error(t, err, v.msg)

		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.FieldCoercionError, gnErr.Code, v.msg)
		require.Len(t, gnErr.Vars, 2, v.msg)
		assert.Equal(t, v.raw, gnErr.Vars[0], v.msg)
	}
}

func TestValueJSON(t *testing.T) {
	data := map[string]field.Value{
		"a": field.Null(),
		"b": field.Of(int64(1)),
		"c": field.Of(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)),
	}
	res, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":1,"c":"2024-02-29T00:00:00Z"}`, string(res))
}
