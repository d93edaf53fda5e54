package field

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnlib"
)

// Normalize coerces raw into the type given by rule. The present flag
// tells whether the column exists in the row at all.
//
// Missing or blank cells become Null when the rule is nullable and fail
// otherwise. A cell that is present but cannot be coerced is always an
// error, it is never turned into Null.
func Normalize(raw string, present bool, rule Rule) (Value, error) {
	s := strings.TrimSpace(raw)
	if !present || s == "" {
		if rule.Nullable {
			return Null(), nil
		}
		return Null(), MissingValueError(rule.Type)
	}

	switch rule.Type {
	case Int:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Null(), CoercionError(s, rule.Type, err)
		}
		return Of(i), nil

	case Float:
		f, err := parseFloat(s)
		if err != nil {
			return Null(), CoercionError(s, rule.Type, err)
		}
		return Of(f), nil

	case Bool:
		b, err := parseBool(s)
		if err != nil {
			return Null(), CoercionError(s, rule.Type, err)
		}
		return Of(b), nil

	case Datetime:
		t, err := parseTime(s, rule.Layouts)
		if err != nil {
			return Null(), CoercionError(s, rule.Type, err)
		}
		return Of(t), nil

	default:
		return Of(gnlib.FixUtf8(s)), nil
	}
}

// parseFloat accepts finite decimal numbers only. NaN, infinities and
// hexadecimal floats have no JSON form.
func parseFloat(s string) (float64, error) {
	if strings.ContainsAny(s, "xX") {
		return 0, errors.New("hexadecimal numbers are not supported")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("number is not finite")
	}
	return f, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return false, strconv.ErrSyntax
}

// parseTime tries every layout and returns the first successful parse.
// Timestamps without a zone are read as UTC.
func parseTime(s string, layouts []string) (time.Time, error) {
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}

	var err error
	var t time.Time
	for _, layout := range layouts {
		t, err = time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
