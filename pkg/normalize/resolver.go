// pkg/normalize/resolver.go
package normalize

import (
	"fmt"
	"strings"

	"github.com/zhaowt/limitup-export/pkg/model"
)

// MissingColumnError reports that a required semantic column could not be
// resolved against the dataset's headers. It aborts the whole pipeline; no
// partial output is produced.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in dataset", e.Column)
}

// ResolveColumn locates the header that carries the target field. Matching
// is attempted in order of decreasing strictness against the column list:
// exact match, whitespace-trimmed match, then substring match. The first
// rule that produces a hit wins. Returns false when the dataset is empty or
// no header matches.
func ResolveColumn(columns []string, target string) (string, bool) {
	if len(columns) == 0 {
		return "", false
	}

	for _, col := range columns {
		if col == target {
			return col, true
		}
	}

	for _, col := range columns {
		if strings.TrimSpace(col) == target {
			return col, true
		}
	}

	for _, col := range columns {
		if strings.Contains(col, target) {
			return col, true
		}
	}

	return "", false
}

// ResolveRequired resolves all four required fields. It fails with a
// MissingColumnError naming the first unresolvable field.
func ResolveRequired(columns []string) (model.ResolvedColumns, error) {
	var resolved model.ResolvedColumns

	// Search terms are deliberately looser than the canonical names so that
	// substring matching can pick up variants like "连续涨停天数(天)".
	targets := []struct {
		name string
		dest *string
	}{
		{"最终涨停时间", &resolved.FinalLimitTime},
		{"连续涨停天数", &resolved.ConsecutiveDays},
		{"涨停原因类别", &resolved.LimitReasonCategory},
		{"涨停原因", &resolved.LimitReason},
	}

	for _, t := range targets {
		col, ok := ResolveColumn(columns, t.name)
		if !ok {
			return model.ResolvedColumns{}, &MissingColumnError{Column: t.name}
		}
		*t.dest = col
	}

	return resolved, nil
}
