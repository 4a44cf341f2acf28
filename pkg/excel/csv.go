// pkg/excel/csv.go
package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/zhaowt/limitup-export/pkg/model"
)

// utf8BOM keeps spreadsheet applications from misreading the CSV as a
// legacy codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodeStatsCSV renders the reason frequency table as a UTF-8 CSV with a
// leading byte-order mark and the header 涨停原因,出现次数.
func EncodeStatsCSV(stats []model.CategoryStat) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"涨停原因", "出现次数"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, stat := range stats {
		if err := w.Write([]string{stat.Category, strconv.Itoa(stat.Count)}); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
