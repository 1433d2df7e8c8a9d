package model

import "fmt"

// NoticeLevel distinguishes recoverable warnings from per-type errors.
type NoticeLevel string

const (
	LevelWarning NoticeLevel = "warning"
	LevelError   NoticeLevel = "error"
)

// NoticeCode identifies the failure taxonomy entry a notice belongs to.
type NoticeCode string

const (
	// NoticeUnsupportedFormat: file extension outside {xlsx, csv}; an empty
	// table is substituted and the pipeline continues.
	NoticeUnsupportedFormat NoticeCode = "unsupported_format"
	// NoticeMissingExpectedColumns: neither the 14-day nor the 7-day rename
	// set matched; original columns are kept.
	NoticeMissingExpectedColumns NoticeCode = "missing_expected_columns"
	// NoticeMissingAggregationColumns: a required metric column is absent
	// after the join; the whole summary for that report type is empty.
	NoticeMissingAggregationColumns NoticeCode = "missing_aggregation_columns"
	// NoticeMissingInputGroup: one of SP/SD/SB had zero files; the pipeline
	// is not invoked at all.
	NoticeMissingInputGroup NoticeCode = "missing_input_group"
	// NoticeLoadFailed: the extension was supported but the file itself could
	// not be parsed; an empty table is substituted.
	NoticeLoadFailed NoticeCode = "load_failed"
)

// Notice is a structured, user-visible warning or error produced by a run.
// It replaces the "return empty table and print a message" style: callers
// branch on notices instead of guessing why a table is empty.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Code    NoticeCode  `json:"code"`
	Message string      `json:"message"`
	File    string      `json:"file,omitempty"`
}

func (n Notice) String() string {
	if n.File != "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", n.Level, n.Code, n.Message, n.File)
	}
	return fmt.Sprintf("[%s] %s: %s", n.Level, n.Code, n.Message)
}

// WarnNotice builds a warning-level notice.
func WarnNotice(code NoticeCode, file, message string) Notice {
	return Notice{Level: LevelWarning, Code: code, Message: message, File: file}
}

// ErrorNotice builds an error-level notice.
func ErrorNotice(code NoticeCode, file, message string) Notice {
	return Notice{Level: LevelError, Code: code, Message: message, File: file}
}
