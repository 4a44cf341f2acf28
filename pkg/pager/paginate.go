// pkg/pager/paginate.go
package pager

import (
	"sort"

	"github.com/zhaowt/limitup-export/pkg/model"
)

// DefaultMaxConstraint is the joint category/item budget applied when the
// caller does not supply one.
const DefaultMaxConstraint = 33

// Paginate groups rows by groupField, orders the groups by descending
// occurrence count (the sentinel "其他概念" group always last), then packs
// the reordered rows into pages bounded by
// 2*distinctGroups + rowCount <= maxConstraint. A row that alone exceeds
// the budget still gets a page of its own; no page is ever empty.
func Paginate(rows []model.Row, groupField string, maxConstraint int) []model.Page {
	if maxConstraint <= 0 {
		maxConstraint = DefaultMaxConstraint
	}
	if len(rows) == 0 {
		return nil
	}

	reordered := reorderByGroupPriority(rows, groupField)

	var pages []model.Page
	start := 0
	for start < len(reordered) {
		end := start
		groups := make(map[string]struct{})
		for end < len(reordered) {
			group := reordered[end].String(groupField)
			distinct := len(groups)
			if _, seen := groups[group]; !seen {
				distinct++
			}
			items := end - start + 1
			if 2*distinct+items > maxConstraint && end > start {
				break
			}
			groups[group] = struct{}{}
			end++
		}

		data := reordered[start:end]
		pages = append(pages, model.Page{
			PageNumber:  len(pages) + 1,
			RecordCount: len(data),
			Data:        data,
		})
		start = end
	}

	return pages
}

// reorderByGroupPriority concatenates the rows of each group in priority
// order. Groups are ranked by descending count with first-appearance order
// breaking ties; rows keep their relative order inside each group. Sentinel
// rows are held aside and appended after every other group.
func reorderByGroupPriority(rows []model.Row, groupField string) []model.Row {
	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		group := row.String(groupField)
		if _, ok := counts[group]; !ok {
			order = append(order, group)
		}
		counts[group]++
	}

	ranked := make([]string, 0, len(order))
	firstSeen := make(map[string]int, len(order))
	for i, group := range order {
		firstSeen[group] = i
		if group != model.SentinelReason {
			ranked = append(ranked, group)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})
	if counts[model.SentinelReason] > 0 {
		ranked = append(ranked, model.SentinelReason)
	}

	byGroup := make(map[string][]model.Row, len(ranked))
	for _, row := range rows {
		group := row.String(groupField)
		byGroup[group] = append(byGroup[group], row)
	}

	reordered := make([]model.Row, 0, len(rows))
	for _, group := range ranked {
		reordered = append(reordered, byGroup[group]...)
	}
	return reordered
}
