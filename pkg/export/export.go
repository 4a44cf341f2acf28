// pkg/export/export.go
package export

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/zhaowt/limitup-export/pkg/excel"
	"github.com/zhaowt/limitup-export/pkg/model"
)

// Exporter writes a processed dataset to disk: one workbook per page plus
// one reason-statistics CSV. Writes are sequential; each file lands
// atomically so a failure partway through leaves no half-written output.
type Exporter struct {
	logger    *zap.Logger
	sheetName string
}

// NewExporter creates an Exporter that labels every written sheet with
// sheetName.
func NewExporter(logger *zap.Logger, sheetName string) (*Exporter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &Exporter{logger: logger, sheetName: sheetName}, nil
}

// WriteResult writes every page of the result as <base>_第N页.xlsx and the
// statistics table as <base>_涨停原因统计.csv, all under outputDir. Returns
// the paths written, in write order.
func (e *Exporter) WriteResult(outputDir, base string, result *model.ProcessResult) ([]string, error) {
	var written []string

	for _, page := range result.Pages {
		data, err := excel.WriteSheet(e.sheetName, result.CleanedColumns, page.Data)
		if err != nil {
			return written, fmt.Errorf("failed to encode page %d: %w", page.PageNumber, err)
		}

		path := filepath.Join(outputDir, fmt.Sprintf("%s_第%d页.xlsx", base, page.PageNumber))
		if err := excel.WriteFileAtomic(path, data); err != nil {
			return written, fmt.Errorf("failed to write page %d: %w", page.PageNumber, err)
		}
		written = append(written, path)

		e.logger.Info("Wrote page workbook",
			zap.String("path", path),
			zap.Int("page", page.PageNumber),
			zap.Int("records", page.RecordCount))
	}

	csvData, err := excel.EncodeStatsCSV(result.CategoryStats)
	if err != nil {
		return written, fmt.Errorf("failed to encode statistics: %w", err)
	}
	csvPath := filepath.Join(outputDir, base+"_涨停原因统计.csv")
	if err := excel.WriteFileAtomic(csvPath, csvData); err != nil {
		return written, fmt.Errorf("failed to write statistics: %w", err)
	}
	written = append(written, csvPath)

	e.logger.Info("Wrote statistics CSV",
		zap.String("path", csvPath),
		zap.Int("reasons", len(result.CategoryStats)))

	return written, nil
}
