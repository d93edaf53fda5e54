package state

import (
	"encoding/json"
	"math"
	"strconv"
)

// Bookmark is a stream cursor. Depending on the stream it is a date or
// timestamp string or an integer.
type Bookmark struct {
	str   string
	num   int64
	isNum bool
}

// StringBookmark returns a string cursor.
func StringBookmark(s string) Bookmark {
	return Bookmark{str: s}
}

// IntBookmark returns an integer cursor.
func IntBookmark(i int64) Bookmark {
	return Bookmark{num: i, isNum: true}
}

// BookmarkOf converts a decoded state value into a Bookmark. Values of
// unsupported types give an empty Bookmark.
func BookmarkOf(v any) Bookmark {
	switch t := v.(type) {
	case Bookmark:
		return t
	case string:
		return StringBookmark(t)
	case int:
		return IntBookmark(int64(t))
	case int64:
		return IntBookmark(t)
	case float64:
		if t == math.Trunc(t) {
			return IntBookmark(int64(t))
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return IntBookmark(i)
		}
	}
	return Bookmark{}
}

// Truthy reports whether the bookmark carries a usable cursor: a
// non-empty string or a non-zero integer.
func (b Bookmark) Truthy() bool {
	if b.isNum {
		return b.num != 0
	}
	return b.str != ""
}

// IsInt reports whether the bookmark is an integer cursor.
func (b Bookmark) IsInt() bool {
	return b.isNum
}

// Value returns the cursor as it is stored in the state.
func (b Bookmark) Value() any {
	if b.isNum {
		return b.num
	}
	return b.str
}

// String returns the textual form of the cursor.
func (b Bookmark) String() string {
	if b.isNum {
		return strconv.FormatInt(b.num, 10)
	}
	return b.str
}

// Int returns the integer cursor, zero for string cursors.
func (b Bookmark) Int() int64 {
	return b.num
}
