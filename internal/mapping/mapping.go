// Package mapping holds the two static reference tables joined against every
// run: ASIN → subcategory and SB campaign name → subcategory. They are loaded
// once at process start and read-only for the process lifetime.
package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"ad-report-pipeline/internal/model"
	"ad-report-pipeline/pkg/utils"
)

// Mappings bundles the two reference tables.
type Mappings struct {
	ASIN     model.Table // key column "ASIN"
	Campaign model.Table // key column "SB Campaign Name"
}

// Load reads both reference CSVs. A missing or unreadable file is returned as
// an error; the caller treats that as fatal at startup.
func Load(asinPath, campaignPath string) (*Mappings, error) {
	asin, err := loadReference(asinPath, model.ColumnASIN)
	if err != nil {
		return nil, err
	}
	campaign, err := loadReference(campaignPath, model.ColumnSBCampaignName)
	if err != nil {
		return nil, err
	}

	fmt.Printf("🗂️ Reference mappings loaded: %d ASIN rows, %d campaign rows\n",
		len(asin.Rows), len(campaign.Rows))
	return &Mappings{ASIN: asin, Campaign: campaign}, nil
}

func loadReference(path, keyColumn string) (model.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to open reference mapping %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to read header of %s: %w", path, err)
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
			return model.Table{}, fmt.Errorf("read error in %s: %w", path, err)
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

	if !table.HasColumn(keyColumn) {
		return model.Table{}, fmt.Errorf("reference mapping %s lacks key column %q", path, keyColumn)
	}
	if !table.HasColumn(model.ColumnSubCategory) {
		return model.Table{}, fmt.Errorf("reference mapping %s lacks column %q", path, model.ColumnSubCategory)
	}
	return table, nil
}

// For returns the mapping table the given report type joins against.
func (m *Mappings) For(rt model.ReportType) model.Table {
	if rt == model.ReportSB {
		return m.Campaign
	}
	return m.ASIN
}
