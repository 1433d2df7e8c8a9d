package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"ad-report-pipeline/internal/model"
	"ad-report-pipeline/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// ------------------- Tabular Loader -------------------

// UnsupportedFormatError reports an upload whose extension is neither .xlsx
// nor .csv.
type UnsupportedFormatError struct {
	FileName string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (expected .xlsx or .csv)", e.FileName)
}

// LoadFile reads an uploaded file into a Table based on its extension. On an
// unrecognized extension it returns an empty table together with an
// UnsupportedFormatError; callers must treat that table as "could not load",
// not as "legitimately no data".
func LoadFile(file model.UploadedFile) (model.Table, error) {
	switch strings.ToLower(filepath.Ext(file.Name)) {
	case ".xlsx":
		return loadXLSX(file)
	case ".csv":
		return loadCSV(file)
	default:
		return model.Table{}, &UnsupportedFormatError{FileName: file.Name}
	}
}

// loadCSV parses comma-delimited text: first row is the header, each cell is
// typed via utils.ParseValue.
func loadCSV(file model.UploadedFile) (model.Table, error) {
	reader := csv.NewReader(bytes.NewReader(file.Data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	headers, err := reader.Read()
	if err == io.EOF {
		return model.Table{}, nil
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to read CSV header of %s: %w", file.Name, err)
	}

	table := model.Table{Columns: make([]string, len(headers))}
	for i, h := range headers {
		table.Columns[i] = utils.CleanHeader(h)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("CSV read error in %s: %w", file.Name, err)
		}
		row := make(model.Row, len(table.Columns))
		for i, col := range table.Columns {
			if i >= len(record) {
				break
			}
			if v := utils.ParseValue(record[i]); v != nil {
				row[col] = v
			}
		}
		table.Rows = append(table.Rows, row)
	}

	fmt.Printf("📄 Loaded %d rows, %d columns from %s\n", len(table.Rows), len(table.Columns), file.Name)
	return table, nil
}

// loadXLSX parses the first sheet of a spreadsheet held in memory.
func loadXLSX(file model.UploadedFile) (model.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to open spreadsheet %s: %w", file.Name, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.Table{}, fmt.Errorf("no sheets found in %s", file.Name)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to read sheet of %s: %w", file.Name, err)
	}
	if len(rows) == 0 {
		return model.Table{}, nil
	}

	table := model.Table{Columns: make([]string, len(rows[0]))}
	for i, h := range rows[0] {
		table.Columns[i] = utils.CleanHeader(h)
	}

	for _, raw := range rows[1:] {
		row := make(model.Row, len(table.Columns))
		for i, col := range table.Columns {
			// excelize truncates trailing empty cells per row
			if i >= len(raw) {
				break
			}
			if v := utils.ParseValue(raw[i]); v != nil {
				row[col] = v
			}
		}
		table.Rows = append(table.Rows, row)
	}

	fmt.Printf("📄 Loaded %d rows, %d columns from %s\n", len(table.Rows), len(table.Columns), file.Name)
	return table, nil
}
