package pipeline

import (
	"fmt"

	"ad-report-pipeline/internal/model"
	"ad-report-pipeline/pkg/utils"
)

// ------------------- Concat / Stamp / Join -------------------

// Concat appends tables row-wise with column-union semantics: the output
// declares every column any input declares, in first-seen order, and rows
// simply lack the keys their source table never had (read back as nil).
func Concat(tables ...model.Table) model.Table {
	var out model.Table
	for _, t := range tables {
		for _, col := range t.Columns {
			out.AddColumn(col)
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}

// StampDate assigns the formatted selected date to every row in a new
// "Selected Date" column, overwriting any prior column of that name.
func StampDate(t *model.Table, date string) {
	t.SetColumn(model.ColumnSelectedDate, date)
}

// LeftJoin joins every report row against the mapping table on
// leftKey = rightKey. Every left row is preserved; unmatched rows keep nil
// mapping fields. Duplicate keys in the mapping fan the row out, one output
// row per match, matching the original merge behavior. Mapping columns that
// collide with an existing report column are not copied (left wins).
func LeftJoin(left, right model.Table, leftKey, rightKey string) model.Table {
	// Index the mapping side by key text.
	index := make(map[string][]model.Row, len(right.Rows))
	for _, row := range right.Rows {
		key := joinKey(row[rightKey])
		if key == "" {
			continue
		}
		index[key] = append(index[key], row)
	}

	// Mapping columns carried over into the joined table.
	var carried []string
	out := model.Table{Columns: append([]string{}, left.Columns...)}
	for _, col := range right.Columns {
		if !left.HasColumn(col) {
			carried = append(carried, col)
			out.AddColumn(col)
		}
	}

	for _, row := range left.Rows {
		matches := index[joinKey(row[leftKey])]
		if len(matches) == 0 {
			out.Rows = append(out.Rows, row)
			continue
		}
		for _, match := range matches {
			joined := make(model.Row, len(row)+len(carried))
			for k, v := range row {
				joined[k] = v
			}
			for _, col := range carried {
				if v, ok := match[col]; ok {
					joined[col] = v
				}
			}
			out.Rows = append(out.Rows, joined)
		}
	}
	return out
}

// joinKey renders a cell to its comparison form. Numeric cells compare by
// their text rendering so a CSV-typed int matches an xlsx-typed string key.
func joinKey(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := utils.Numeric(v); ok {
		return utils.FormatCell(f)
	}
	return fmt.Sprintf("%v", v)
}
