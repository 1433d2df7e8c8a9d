package pipeline

import (
	"errors"
	"fmt"
	"time"

	"ad-report-pipeline/internal/mapping"
	"ad-report-pipeline/internal/model"
)

// ------------------- Run Orchestrator -------------------

// Selectable date bounds for a run.
var (
	MinSelectedDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxSelectedDate = time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC)
)

// ValidateSelectedDate checks the run date against the allowed range.
func ValidateSelectedDate(date time.Time) error {
	if date.Before(MinSelectedDate) || date.After(MaxSelectedDate) {
		return fmt.Errorf("selected date %s outside allowed range %s..%s",
			date.Format("2006-01-02"),
			MinSelectedDate.Format("2006-01-02"),
			MaxSelectedDate.Format("2006-01-02"))
	}
	return nil
}

// ProcessFiles runs the full load → normalize → concat → stamp → join →
// aggregate pipeline for one invocation. It is a pure function of the
// uploaded files, the reference mappings and the selected date; every
// degraded step surfaces as a notice in the result instead of aborting the
// run, and a failure in one report type never touches its siblings.
func ProcessFiles(sp, sd, sb []model.UploadedFile, maps *mapping.Mappings, date time.Time) model.ProcessResult {
	start := time.Now()
	fmt.Printf("🚀 Processing run: %d SP, %d SD, %d SB file(s)\n", len(sp), len(sd), len(sb))

	result := model.ProcessResult{}
	dateStr := date.Format("2006-01-02")

	result.SPSummary = processReportType(model.ReportSP, sp, maps, dateStr, &result.Notices)
	result.SDSummary = processReportType(model.ReportSD, sd, maps, dateStr, &result.Notices)
	result.SBSummary = processReportType(model.ReportSB, sb, maps, dateStr, &result.Notices)

	fmt.Printf("🏁 Run completed in %v with %d notice(s)\n", time.Since(start), len(result.Notices))
	return result
}

// processReportType runs the per-type pipeline to completion. Load failures
// degrade to empty tables (recorded as notices) rather than aborting; the
// aggregation precondition then decides whether a summary can be produced.
func processReportType(rt model.ReportType, files []model.UploadedFile, maps *mapping.Mappings, date string, notices *[]model.Notice) model.Table {
	tables := make([]model.Table, 0, len(files))
	for _, file := range files {
		table, err := LoadFile(file)
		if err != nil {
			var unsupported *UnsupportedFormatError
			if errors.As(err, &unsupported) {
				*notices = append(*notices, model.ErrorNotice(model.NoticeUnsupportedFormat, file.Name,
					"unsupported file format, continuing with an empty table"))
			} else {
				*notices = append(*notices, model.ErrorNotice(model.NoticeLoadFailed, file.Name, err.Error()))
			}
			table = model.Table{}
		} else if rt.Normalized() {
			var notice *model.Notice
			table, notice = NormalizeASINColumns(table, file.Name)
			if notice != nil {
				*notices = append(*notices, *notice)
			}
		}
		tables = append(tables, table)
	}

	combined := Concat(tables...)
	StampDate(&combined, date)

	joined := LeftJoin(combined, maps.For(rt), rt.JoinColumn(), rt.MappingColumn())

	summary, err := Aggregate(joined, rt)
	if err != nil {
		*notices = append(*notices, model.ErrorNotice(model.NoticeMissingAggregationColumns, "", err.Error()))
		return model.Table{}
	}
	return summary
}
