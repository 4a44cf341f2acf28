// pkg/pager/stats.go
package pager

import (
	"sort"

	"github.com/zhaowt/limitup-export/pkg/model"
)

// ReasonStats counts the occurrences of each distinct value of field and
// returns the frequency table sorted by count descending, ties in
// first-seen order.
func ReasonStats(rows []model.Row, field string) []model.CategoryStat {
	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		value := row.String(field)
		if _, ok := counts[value]; !ok {
			order = append(order, value)
		}
		counts[value]++
	}

	stats := make([]model.CategoryStat, 0, len(order))
	for _, value := range order {
		stats = append(stats, model.CategoryStat{Category: value, Count: counts[value]})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	return stats
}
