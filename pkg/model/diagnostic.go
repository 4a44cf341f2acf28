// pkg/model/diagnostic.go
package model

import "time"

// Diagnostic records a single non-fatal cell repair performed during the
// pipeline run. A diagnostic never aborts processing; the affected cell is
// degraded to the empty string and the run continues.
type Diagnostic struct {
	RowIndex      int       `json:"rowIndex"`      // Zero-based index in the sorted dataset
	ColumnName    string    `json:"columnName"`    // Column that was repaired
	OriginalValue string    `json:"originalValue"` // Value before the repair
	Reason        string    `json:"reason"`        // Why the cell could not be processed
	OccurredAt    time.Time `json:"occurredAt"`
}
