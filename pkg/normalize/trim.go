// pkg/normalize/trim.go
package normalize

import (
	"fmt"
	"strings"

	"github.com/zhaowt/limitup-export/pkg/model"
)

// DefaultCategoryWidth is the display-width budget for the trimmed
// category field.
const DefaultCategoryWidth = 36

// CategoryWidth computes the display width of a string: CJK ideographs
// (U+4E00–U+9FFF) count as two columns, everything else as one.
func CategoryWidth(s string) int {
	width := 0
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			width += 2
		} else {
			width++
		}
	}
	return width
}

// TrimCategory normalizes whitespace in a raw category cell and truncates
// it to the given width budget. Truncation prefers to cut at the last
// interior '+' separator of the widest fitting prefix, and the result never
// ends in '+'. A value whose first character alone exceeds the budget
// becomes the empty string.
func TrimCategory(value interface{}, maxWidth int) string {
	normalized := collapseWhitespace(model.CellString(value))

	if CategoryWidth(normalized) <= maxWidth {
		return strings.TrimRight(normalized, "+")
	}

	runes := []rune(normalized)
	for length := len(runes); length >= 1; length-- {
		candidate := string(runes[:length])
		if CategoryWidth(candidate) > maxWidth {
			continue
		}
		if idx := strings.LastIndex(candidate, "+"); idx >= 0 && idx < len(candidate)-1 {
			candidate = candidate[:idx]
		}
		return strings.TrimRight(candidate, "+")
	}

	return ""
}

// TrimCategoryValue is the guarded form of TrimCategory used on untrusted
// per-row data: any panic during trimming is converted into an error so one
// bad cell cannot abort the dataset.
func TrimCategoryValue(value interface{}, maxWidth int) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = fmt.Errorf("category trim failed: %v", r)
		}
	}()

	return TrimCategory(value, maxWidth), nil
}

// collapseWhitespace trims the ends and squeezes interior whitespace runs
// down to a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
