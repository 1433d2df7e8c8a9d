package model

import "time"

// Run statuses recorded in the store.
const (
	StatusPending              = "pending"
	StatusProcessing           = "processing"
	StatusCompleted            = "completed"
	StatusCompletedWithNotices = "completed_with_notices"
	StatusFailed               = "failed"
)

// Run is one processing invocation: a set of uploaded files stamped with one
// selected date, producing up to three summary files.
type Run struct {
	ID           string    `json:"id"`
	SelectedDate string    `json:"selected_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OutputFile records one downloadable summary produced by a run.
type OutputFile struct {
	ID          int    `json:"id"`
	RunID       string `json:"run_id"`
	ReportType  string `json:"report_type"`
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	FileSize    int64  `json:"file_size"`
	RecordCount int    `json:"record_count"`
	DownloadURL string `json:"download_url"`
}

// ProcessResult is what one pipeline invocation yields: three independent
// summary tables plus every notice raised along the way. A summary being
// empty together with an error notice for its type means that type failed;
// empty without one means the inputs genuinely aggregated to nothing.
type ProcessResult struct {
	SPSummary Table    `json:"sp_summary"`
	SDSummary Table    `json:"sd_summary"`
	SBSummary Table    `json:"sb_summary"`
	Notices   []Notice `json:"notices"`
}

// Summary returns the summary table for the given report type.
func (pr ProcessResult) Summary(rt ReportType) Table {
	switch rt {
	case ReportSP:
		return pr.SPSummary
	case ReportSD:
		return pr.SDSummary
	default:
		return pr.SBSummary
	}
}

// HasErrors reports whether any error-level notice was raised.
func (pr ProcessResult) HasErrors() bool {
	for _, n := range pr.Notices {
		if n.Level == LevelError {
			return true
		}
	}
	return false
}
