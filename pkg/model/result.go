// pkg/model/result.go
package model

// ResolvedColumns records which source headers satisfied the four required
// semantic fields, as found by the column resolver before renaming.
type ResolvedColumns struct {
	FinalLimitTime      string `json:"finalLimitTime"`
	ConsecutiveDays     string `json:"consecutiveDays"`
	LimitReason         string `json:"limitReason"`
	LimitReasonCategory string `json:"limitReasonCategory"`
}

// Page is one bounded batch of rows. Every page satisfies
// 2*distinctReasons + len(Data) <= MaxConstraint, except a forced
// single-row page whose lone row alone exceeds the budget.
type Page struct {
	PageNumber  int   `json:"pageNumber"`
	RecordCount int   `json:"recordCount"`
	Data        []Row `json:"data"`
}

// CategoryStat is one entry of the reason frequency table.
type CategoryStat struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ProcessResult is the full outcome of one pipeline run over one dataset.
type ProcessResult struct {
	OriginalColumns []string        `json:"originalColumns"`
	CleanedColumns  []string        `json:"cleanedColumns"`
	ResolvedColumns ResolvedColumns `json:"resolvedColumns"`
	RecordCount     int             `json:"recordCount"`
	Pages           []Page          `json:"pages"`
	CategoryStats   []CategoryStat  `json:"categoryStats"`
	MaxConstraint   int             `json:"maxConstraint"`
	Diagnostics     []Diagnostic    `json:"diagnostics,omitempty"`
}
