package pipeline

import (
	"testing"

	"ad-report-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableToCSV(t *testing.T) {
	table := model.Table{
		Columns: []string{model.ColumnSelectedDate, model.ColumnSubCategory, "Spend"},
		Rows: []model.Row{
			{model.ColumnSelectedDate: "2024-01-01", model.ColumnSubCategory: "Shoes", "Spend": 12.5},
			{model.ColumnSelectedDate: "2024-01-01", "Spend": 3.0},
		},
	}

	buf, err := TableToCSV(table)
	require.NoError(t, err)

	assert.Equal(t,
		"Selected Date,Sub-Category,Spend\n"+
			"2024-01-01,Shoes,12.5\n"+
			"2024-01-01,,3\n",
		buf.String())
}

func TestTableToCSVQuotesEmbeddedDelimiters(t *testing.T) {
	table := model.Table{
		Columns: []string{"Campaigns"},
		Rows:    []model.Row{{"Campaigns": `brand, "summer" push`}},
	}

	buf, err := TableToCSV(table)
	require.NoError(t, err)
	assert.Equal(t, "Campaigns\n\"brand, \"\"summer\"\" push\"\n", buf.String())
}

func TestTableToCSVFloatFormatting(t *testing.T) {
	// Large sums must serialize in plain decimal, not exponent notation.
	table := model.Table{
		Columns: []string{"Spend"},
		Rows:    []model.Row{{"Spend": 1234567.89}},
	}

	buf, err := TableToCSV(table)
	require.NoError(t, err)
	assert.Equal(t, "Spend\n1234567.89\n", buf.String())
}
