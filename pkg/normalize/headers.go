// pkg/normalize/headers.go
package normalize

import (
	"regexp"

	"github.com/zhaowt/limitup-export/pkg/model"
)

// dateSuffixPattern matches a trailing date of the form 2024.03.15. Only
// this literal delimiter convention is stripped; other date formats pass
// through untouched.
var dateSuffixPattern = regexp.MustCompile(`\d{4}\.\d{2}\.\d{2}$`)

// StripDateSuffix removes a trailing YYYY.MM.DD from a header name.
func StripDateSuffix(header string) string {
	return dateSuffixPattern.ReplaceAllString(header, "")
}

// NormalizeHeaders strips trailing date suffixes from every column name and
// applies the resulting old-to-new rename uniformly to all rows. When two
// distinct headers normalize to the same name, the later one wins; this
// mirrors plain mapping assignment and is the documented collision policy.
// An empty dataset is returned unchanged.
func NormalizeHeaders(rows []model.Row, columns []string) ([]model.Row, []string) {
	if len(rows) == 0 {
		return rows, columns
	}

	rename := make(map[string]string, len(columns))
	changed := false
	for _, col := range columns {
		stripped := StripDateSuffix(col)
		rename[col] = stripped
		if stripped != col {
			changed = true
		}
	}

	if !changed {
		return rows, columns
	}

	newColumns := make([]string, 0, len(columns))
	seen := make(map[string]int, len(columns))
	for _, col := range columns {
		stripped := rename[col]
		if idx, ok := seen[stripped]; ok {
			// Collision: keep a single column at its first position.
			newColumns[idx] = stripped
			continue
		}
		seen[stripped] = len(newColumns)
		newColumns = append(newColumns, stripped)
	}

	newRows := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		newRow := make(model.Row, len(row))
		// Walk columns in header order so that on a collision the later
		// column deterministically overwrites the earlier one.
		for _, col := range columns {
			value, ok := row[col]
			if !ok {
				continue
			}
			newRow[rename[col]] = value
		}
		// Stray keys outside the shared header set keep their own name,
		// date-stripped.
		for key, value := range row {
			if _, ok := rename[key]; ok {
				continue
			}
			newRow[StripDateSuffix(key)] = value
		}
		newRows = append(newRows, newRow)
	}

	return newRows, newColumns
}
