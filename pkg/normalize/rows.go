// pkg/normalize/rows.go
package normalize

import (
	"strings"

	"github.com/zhaowt/limitup-export/pkg/model"
)

// NormalizeRows renames the four resolved source columns to their canonical
// names and drops every disclosure column. Values are snapshotted before the
// source columns are deleted, so a source column that already carries a
// canonical name round-trips correctly. Returns the rewritten rows together
// with the cleaned column list.
func NormalizeRows(rows []model.Row, columns []string, resolved model.ResolvedColumns) ([]model.Row, []string) {
	sourceNames := map[string]struct{}{
		resolved.FinalLimitTime:      {},
		resolved.ConsecutiveDays:     {},
		resolved.LimitReason:         {},
		resolved.LimitReasonCategory: {},
	}

	newRows := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		newRow := row.Clone()

		// Snapshot before deleting: a resolved column may itself be named
		// like a canonical column.
		finalTime := row[resolved.FinalLimitTime]
		days := row[resolved.ConsecutiveDays]
		reason := row[resolved.LimitReason]
		category := row[resolved.LimitReasonCategory]

		for name := range sourceNames {
			delete(newRow, name)
		}

		newRow[model.ColFinalLimitTime] = emptyIfNil(finalTime)
		newRow[model.ColConsecutiveDays] = emptyIfNil(days)
		newRow[model.ColLimitReason] = emptyIfNil(reason)
		newRow[model.ColLimitReasonCategory] = emptyIfNil(category)

		for key := range newRow {
			if isDisclosureColumn(key) {
				delete(newRow, key)
			}
		}

		newRows = append(newRows, newRow)
	}

	return newRows, cleanColumns(columns, sourceNames)
}

// cleanColumns rewrites the header list to match the normalized rows: the
// resolved source names and disclosure columns go away, the four canonical
// names are appended at the end.
func cleanColumns(columns []string, sourceNames map[string]struct{}) []string {
	canonical := []string{
		model.ColFinalLimitTime,
		model.ColConsecutiveDays,
		model.ColLimitReason,
		model.ColLimitReasonCategory,
	}

	canonicalSet := make(map[string]struct{}, len(canonical))
	for _, name := range canonical {
		canonicalSet[name] = struct{}{}
	}

	cleaned := make([]string, 0, len(columns)+len(canonical))
	for _, col := range columns {
		if _, ok := sourceNames[col]; ok {
			continue
		}
		if _, ok := canonicalSet[col]; ok {
			continue
		}
		if isDisclosureColumn(col) {
			continue
		}
		cleaned = append(cleaned, col)
	}

	return append(cleaned, canonical...)
}

func isDisclosureColumn(name string) bool {
	return strings.Contains(name, model.DisclosureColumnSubstring)
}

func emptyIfNil(v interface{}) interface{} {
	if v == nil {
		return ""
	}
	return v
}
