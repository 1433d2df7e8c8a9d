package pipeline

import (
	"testing"

	"ad-report-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableWithColumns(columns ...string) model.Table {
	t := model.NewTable(columns...)
	row := model.Row{}
	for i, c := range columns {
		row[c] = i + 1
	}
	t.Rows = append(t.Rows, row)
	return t
}

func TestDetectSchemaFourteenDay(t *testing.T) {
	table := tableWithColumns(
		"Advertised ASIN",
		"14 Day Total Sales (₹)", "14 Day Total Orders (#)", "14 Day Total Units (#)",
	)
	assert.Equal(t, SchemaFourteenDay, DetectSchema(table))
}

func TestDetectSchemaSevenDay(t *testing.T) {
	table := tableWithColumns(
		"Advertised ASIN",
		"7 Day Total Sales (₹)", "7 Day Total Orders (#)", "7 Day Total Units (#)",
	)
	assert.Equal(t, SchemaSevenDay, DetectSchema(table))
}

func TestDetectSchemaPartialSetIsUnrecognized(t *testing.T) {
	// Two of three 14-day columns is not a match.
	table := tableWithColumns("14 Day Total Sales (₹)", "14 Day Total Orders (#)")
	assert.Equal(t, SchemaUnrecognized, DetectSchema(table))
}

func TestNormalizeRenamesFourteenDayColumns(t *testing.T) {
	table := tableWithColumns(
		"Advertised ASIN",
		"14 Day Total Sales (₹)", "14 Day Total Orders (#)", "14 Day Total Units (#)",
	)
	out, notice := NormalizeASINColumns(table, "sp.csv")

	require.Nil(t, notice)
	assert.Equal(t, []string{"Advertised ASIN", "Total Sales", "Total Orders", "Total Units"}, out.Columns)
	assert.Equal(t, 2, out.Rows[0]["Total Sales"])
	assert.NotContains(t, out.Rows[0], "14 Day Total Sales (₹)")
}

func TestNormalizeTieBreakPrefersFourteenDay(t *testing.T) {
	// A table pathologically carrying both full sets is renamed via the
	// 14-day map only; the 7-day source columns stay as they are.
	table := tableWithColumns(
		"14 Day Total Sales (₹)", "14 Day Total Orders (#)", "14 Day Total Units (#)",
		"7 Day Total Sales (₹)", "7 Day Total Orders (#)", "7 Day Total Units (#)",
	)
	out, notice := NormalizeASINColumns(table, "sp.csv")

	require.Nil(t, notice)
	assert.True(t, out.HasColumns("Total Sales", "Total Orders", "Total Units"))
	assert.True(t, out.HasColumn("7 Day Total Sales (₹)"))
}

func TestNormalizeUnrecognizedKeepsColumnsAndWarns(t *testing.T) {
	table := tableWithColumns("Total Sales", "Total Orders", "Total Units", "Spend")
	out, notice := NormalizeASINColumns(table, "sp.csv")

	// Already-canonical tables match neither source set: the table is
	// untouched and the warning is raised rather than an error.
	require.NotNil(t, notice)
	assert.Equal(t, model.LevelWarning, notice.Level)
	assert.Equal(t, model.NoticeMissingExpectedColumns, notice.Code)
	assert.Equal(t, "sp.csv", notice.File)
	assert.Equal(t, table.Columns, out.Columns)
}
