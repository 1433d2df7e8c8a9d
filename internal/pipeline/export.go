package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"ad-report-pipeline/internal/model"
	"ad-report-pipeline/pkg/utils"
)

// ------------------- Export Sink -------------------

// TableToCSV serializes a table as comma-delimited text in memory: a header
// row followed by every row in order, no index column, UTF-8, standard csv
// quoting. Empty cells serialize as empty fields.
func TableToCSV(t model.Table) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	if err := writer.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = utils.FormatCell(row[col])
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf, nil
}
