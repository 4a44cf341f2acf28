// pkg/pipeline/pipeline.go
package pipeline

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/zhaowt/limitup-export/pkg/model"
	"github.com/zhaowt/limitup-export/pkg/normalize"
	"github.com/zhaowt/limitup-export/pkg/pager"
)

// Processor runs the full normalization and pagination pipeline over one
// in-memory dataset. It holds no state between runs.
type Processor struct {
	logger *zap.Logger
}

// NewProcessor creates a Processor backed by the given logger.
func NewProcessor(logger *zap.Logger) (*Processor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Processor{logger: logger}, nil
}

// Process normalizes the dataset, sorts it, splits it into
// constraint-bounded pages and aggregates reason statistics. columns is the
// ordered header list from the source sheet; maxConstraint <= 0 selects the
// default budget. Fails with a normalize.MissingColumnError when any of the
// four required columns cannot be resolved.
func (p *Processor) Process(rows []model.Row, columns []string, maxConstraint int) (*model.ProcessResult, error) {
	if maxConstraint <= 0 {
		maxConstraint = pager.DefaultMaxConstraint
	}

	originalColumns := make([]string, len(columns))
	copy(originalColumns, columns)

	rows, columns = normalize.NormalizeHeaders(rows, columns)

	// Resolution works off the row key set; a dataset with no data rows has
	// nothing to resolve against, headers or not.
	if len(rows) == 0 {
		columns = nil
	}

	resolved, err := normalize.ResolveRequired(columns)
	if err != nil {
		return nil, err
	}
	p.logger.Info("Resolved required columns",
		zap.String("finalLimitTime", resolved.FinalLimitTime),
		zap.String("consecutiveDays", resolved.ConsecutiveDays),
		zap.String("limitReason", resolved.LimitReason),
		zap.String("limitReasonCategory", resolved.LimitReasonCategory))

	rows, cleanedColumns := normalize.NormalizeRows(rows, columns, resolved)

	sorted := pager.SortRows(rows)

	diagnostics := p.trimCategories(sorted)

	pages := pager.Paginate(sorted, model.ColLimitReason, maxConstraint)
	stats := pager.ReasonStats(sorted, model.ColLimitReason)

	p.logger.Info("Processed dataset",
		zap.Int("records", len(sorted)),
		zap.Int("pages", len(pages)),
		zap.Int("reasons", len(stats)),
		zap.Int("maxConstraint", maxConstraint),
		zap.Int("diagnostics", len(diagnostics)))

	return &model.ProcessResult{
		OriginalColumns: originalColumns,
		CleanedColumns:  cleanedColumns,
		ResolvedColumns: resolved,
		RecordCount:     len(sorted),
		Pages:           pages,
		CategoryStats:   stats,
		MaxConstraint:   maxConstraint,
		Diagnostics:     diagnostics,
	}, nil
}

// trimCategories rewrites the category field of every row in place under
// the display-width budget. A cell that cannot be trimmed degrades to the
// empty string and is recorded as a diagnostic; the run continues.
func (p *Processor) trimCategories(rows []model.Row) []model.Diagnostic {
	var diagnostics []model.Diagnostic
	for i, row := range rows {
		raw := row[model.ColLimitReasonCategory]
		trimmed, err := normalize.TrimCategoryValue(raw, normalize.DefaultCategoryWidth)
		if err != nil {
			p.logger.Warn("Category trim failed, cell degraded to empty",
				zap.Int("row", i),
				zap.Error(err))
			diagnostics = append(diagnostics, model.Diagnostic{
				RowIndex:      i,
				ColumnName:    model.ColLimitReasonCategory,
				OriginalValue: model.CellString(raw),
				Reason:        err.Error(),
				OccurredAt:    time.Now(),
			})
			trimmed = ""
		}
		row[model.ColLimitReasonCategory] = trimmed
	}
	return diagnostics
}
