// pkg/pager/sort.go
package pager

import (
	"sort"

	"github.com/zhaowt/limitup-export/pkg/model"
)

// SortRows orders rows by consecutive limit-up days descending, breaking
// ties by final limit time ascending (plain string order, not date-aware).
// Rows equal on both keys keep their relative input order. Non-numeric and
// empty day counts coerce to 0. The input slice is not modified.
func SortRows(rows []model.Row) []model.Row {
	sorted := make([]model.Row, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		di := sorted[i].Float(model.ColConsecutiveDays)
		dj := sorted[j].Float(model.ColConsecutiveDays)
		if di != dj {
			return di > dj
		}
		return sorted[i].String(model.ColFinalLimitTime) < sorted[j].String(model.ColFinalLimitTime)
	})

	return sorted
}
