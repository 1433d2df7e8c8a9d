package model

// UploadedFile is one file received from the client. The extension on Name
// decides how the loader parses Data.
type UploadedFile struct {
	Name string
	Data []byte
}

// ReportType identifies one of the three advertising report categories. Each
// type has its own column schema, join target and metric set.
type ReportType string

const (
	ReportSP ReportType = "SP"
	ReportSD ReportType = "SD"
	ReportSB ReportType = "SB"
)

// Grouping columns shared by all three summaries.
const (
	ColumnSelectedDate = "Selected Date"
	ColumnSubCategory  = "Sub-Category"
)

// Join key columns.
const (
	ColumnAdvertisedASIN = "Advertised ASIN"  // SP/SD report side
	ColumnASIN           = "ASIN"             // ASIN mapping side
	ColumnCampaigns      = "Campaigns"        // SB report side
	ColumnSBCampaignName = "SB Campaign Name" // campaign mapping side
)

// MetricColumns returns the fixed set of columns summed for this report type.
// Every column must exist in the joined table or aggregation fails as a whole.
func (rt ReportType) MetricColumns() []string {
	switch rt {
	case ReportSB:
		return []string{"Orders", "Clicks", "Sales(INR)", "Spend(INR)"}
	default: // SP and SD share the canonical ASIN-report metrics
		return []string{"Total Orders", "Total Units", "Total Sales", "Spend"}
	}
}

// JoinColumn returns the report-side key column used for the mapping join.
func (rt ReportType) JoinColumn() string {
	if rt == ReportSB {
		return ColumnCampaigns
	}
	return ColumnAdvertisedASIN
}

// MappingColumn returns the mapping-side key column joined against.
func (rt ReportType) MappingColumn() string {
	if rt == ReportSB {
		return ColumnSBCampaignName
	}
	return ColumnASIN
}

// Normalized reports whether uploads of this type go through the ASIN column
// normalizer before concatenation. SB reports are campaign-keyed and skip it.
func (rt ReportType) Normalized() bool {
	return rt != ReportSB
}

// SummaryFileName returns the fixed download name for this type's summary.
func (rt ReportType) SummaryFileName() string {
	return string(rt) + "_Summary.csv"
}
