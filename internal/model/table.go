package model

// Row is a schema-agnostic record keyed by column name. A missing key and a
// nil value both mean the cell is empty.
type Row map[string]interface{}

// Table is an in-memory tabular structure with ordered named columns. It is
// created by the loader, passed through the pipeline stages and discarded
// after aggregation; nothing mutates a table that another stage still holds.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) Table {
	return Table{Columns: append([]string{}, columns...)}
}

// Empty reports whether the table has neither columns nor rows, which is how
// a failed load is represented downstream.
func (t Table) Empty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// HasColumn reports whether the table declares the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// HasColumns reports whether every named column is declared.
func (t Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// AddColumn declares a column if it is not already present. Existing rows are
// left alone; absent keys read as empty cells.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// SetColumn overwrites (or declares) a column and assigns the same value to
// every row.
func (t *Table) SetColumn(name string, value interface{}) {
	t.AddColumn(name)
	for _, row := range t.Rows {
		row[name] = value
	}
}

// RenameColumns returns a copy of the table with columns renamed per the
// given map. Columns not present in the map keep their names.
func (t Table) RenameColumns(renames map[string]string) Table {
	out := Table{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, c := range t.Columns {
		if to, ok := renames[c]; ok {
			out.Columns[i] = to
		} else {
			out.Columns[i] = c
		}
	}
	for i, row := range t.Rows {
		newRow := make(Row, len(row))
		for k, v := range row {
			if to, ok := renames[k]; ok {
				newRow[to] = v
			} else {
				newRow[k] = v
			}
		}
		out.Rows[i] = newRow
	}
	return out
}
