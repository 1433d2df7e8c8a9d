package pipeline

import (
	"ad-report-pipeline/internal/model"
)

// ------------------- Column Normalizer -------------------

// SchemaKind tags which attribution-window naming convention an ASIN-keyed
// report uses.
type SchemaKind int

const (
	SchemaUnrecognized SchemaKind = iota
	SchemaFourteenDay
	SchemaSevenDay
)

func (k SchemaKind) String() string {
	switch k {
	case SchemaFourteenDay:
		return "14-day"
	case SchemaSevenDay:
		return "7-day"
	default:
		return "unrecognized"
	}
}

// renameFourteenDay maps the 14-day attribution window headers to the
// canonical metric names.
var renameFourteenDay = map[string]string{
	"14 Day Total Sales (₹)":  "Total Sales",
	"14 Day Total Orders (#)": "Total Orders",
	"14 Day Total Units (#)":  "Total Units",
}

// renameSevenDay is the analogous map for 7-day window headers.
var renameSevenDay = map[string]string{
	"7 Day Total Sales (₹)":  "Total Sales",
	"7 Day Total Orders (#)": "Total Orders",
	"7 Day Total Units (#)":  "Total Units",
}

// DetectSchema checks the 14-day header set first, then the 7-day one. A
// table pathologically carrying both full sets is treated as 14-day:
// first-checked wins.
func DetectSchema(t model.Table) SchemaKind {
	if hasAllSources(t, renameFourteenDay) {
		return SchemaFourteenDay
	}
	if hasAllSources(t, renameSevenDay) {
		return SchemaSevenDay
	}
	return SchemaUnrecognized
}

func hasAllSources(t model.Table, renames map[string]string) bool {
	for src := range renames {
		if !t.HasColumn(src) {
			return false
		}
	}
	return true
}

// NormalizeASINColumns renames the attribution-window metric columns of an
// SP/SD report to the canonical set. On an unrecognized schema the table is
// returned untouched along with a warning notice; processing continues with
// whatever columns exist and the aggregation precondition catches the rest.
func NormalizeASINColumns(t model.Table, fileName string) (model.Table, *model.Notice) {
	switch DetectSchema(t) {
	case SchemaFourteenDay:
		return t.RenameColumns(renameFourteenDay), nil
	case SchemaSevenDay:
		return t.RenameColumns(renameSevenDay), nil
	default:
		notice := model.WarnNotice(model.NoticeMissingExpectedColumns, fileName,
			"expected columns not found, keeping the original columns")
		return t, &notice
	}
}
