// pkg/model/row.go
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical column names every row carries after normalization.
const (
	ColFinalLimitTime      = "最终涨停时间"
	ColConsecutiveDays     = "连续涨停天数(天)"
	ColLimitReason         = "涨停原因"
	ColLimitReasonCategory = "涨停原因类别"
)

// DisclosureColumnSubstring marks columns dropped during normalization.
// Matched as a substring, not an exact header name.
const DisclosureColumnSubstring = "涨停原因披露"

// SentinelReason is the grouping value always paginated last,
// regardless of how often it occurs.
const SentinelReason = "其他概念"

// Row is a single spreadsheet record keyed by column name. Cell values are
// strings or numbers as decoded from the sheet; absent cells read as the
// empty string, never nil.
type Row map[string]interface{}

// Clone returns a shallow copy of the row. Cell values are scalars, so a
// shallow copy is enough to keep pipeline stages from aliasing each other.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the cell at key coerced to a string, empty when absent.
func (r Row) String(key string) string {
	return CellString(r[key])
}

// Float returns the cell at key coerced to a float64. Empty, absent and
// non-numeric cells coerce to 0 so the sort comparator stays total.
func (r Row) Float(key string) float64 {
	return CellFloat(r[key])
}

// CellString converts a scalar cell value to its string form.
func CellString(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		// Use Sprint as a fallback
		return fmt.Sprintf("%v", val)
	}
}

// CellFloat converts a scalar cell value to a float64, treating anything
// unparseable as 0.
func CellFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
