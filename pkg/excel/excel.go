// pkg/excel/excel.go
package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zhaowt/limitup-export/pkg/model"
)

// ErrNoSheet indicates a workbook without any worksheet.
var ErrNoSheet = errors.New("workbook contains no sheets")

// ReadSheet decodes the first worksheet of an xlsx stream into rows keyed
// by the header row. Cells missing from short rows and blank header cells
// default to the empty string; every returned row carries the full header
// key set.
func ReadSheet(r io.Reader) ([]model.Row, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrNoSheet
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, nil, nil
	}

	columns := make([]string, len(raw[0]))
	copy(columns, raw[0])

	rows := make([]model.Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(model.Row, len(columns))
		for i, col := range columns {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, columns, nil
}

// WriteSheet encodes rows into a single-sheet xlsx workbook and returns the
// encoded bytes. Column order follows the columns argument; the header row
// comes first.
func WriteSheet(sheetLabel string, columns []string, rows []model.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if sheetLabel != "" && sheetLabel != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetLabel); err != nil {
			return nil, fmt.Errorf("failed to rename sheet: %w", err)
		}
	} else if sheetLabel == "" {
		sheetLabel = defaultSheet
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetLabel, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(columns))
		for j, col := range columns {
			cells[j] = row[col]
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell address: %w", err)
		}
		if err := f.SetSheetRow(sheetLabel, addr, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
