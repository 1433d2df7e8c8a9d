package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"ad-report-pipeline/internal/model"
	"ad-report-pipeline/pkg/utils"
)

// ------------------- Aggregation -------------------

// MissingColumnsError reports metric columns absent from a joined table. The
// aggregation is skipped as a whole when any is missing; partial sums are
// never produced.
type MissingColumnsError struct {
	ReportType model.ReportType
	Missing    []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s aggregation: missing required columns: %s",
		e.ReportType, strings.Join(e.Missing, ", "))
}

// group accumulates metric sums for one (date, subcategory) pair.
type group struct {
	date     string
	category interface{} // nil for rows with no mapping match
	sums     map[string]float64
}

// Aggregate groups the joined table by (Selected Date, Sub-Category) and sums
// the report type's fixed metric set. Rows whose key had no mapping match
// keep a nil Sub-Category and aggregate into their own bucket rather than
// being dropped. Output rows are ordered by date then subcategory, the nil
// bucket first.
func Aggregate(t model.Table, rt model.ReportType) (model.Table, error) {
	metrics := rt.MetricColumns()

	var missing []string
	for _, m := range metrics {
		if !t.HasColumn(m) {
			missing = append(missing, m)
		}
	}
	if len(missing) > 0 {
		return model.Table{}, &MissingColumnsError{ReportType: rt, Missing: missing}
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, row := range t.Rows {
		date := utils.FormatCell(row[model.ColumnSelectedDate])
		category := row[model.ColumnSubCategory]
		key := date + "\x00" + utils.FormatCell(category)

		g, ok := groups[key]
		if !ok {
			g = &group{date: date, category: category, sums: make(map[string]float64, len(metrics))}
			groups[key] = g
			order = append(order, key)
		}
		for _, m := range metrics {
			if v, ok := utils.Numeric(row[m]); ok {
				g.sums[m] += v
			}
		}
	}

	// Grouping-key order: date, then subcategory text (nil sorts first as "").
	sort.Strings(order)

	out := model.NewTable(append([]string{model.ColumnSelectedDate, model.ColumnSubCategory}, metrics...)...)
	for _, key := range order {
		g := groups[key]
		row := model.Row{model.ColumnSelectedDate: g.date}
		if g.category != nil {
			row[model.ColumnSubCategory] = g.category
		}
		for _, m := range metrics {
			row[m] = g.sums[m]
		}
		out.Rows = append(out.Rows, row)
	}

	fmt.Printf("📊 %s aggregation: %d groups from %d rows\n", rt, len(out.Rows), len(t.Rows))
	return out, nil
}
