package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"ad-report-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMappings(t *testing.T) {
	dir := t.TempDir()
	asinPath := writeFile(t, dir, "ASIN_Mapping_Report.csv",
		"ASIN,Sub-Category\nB0001,Shoes\nB0002,Socks\n")
	campaignPath := writeFile(t, dir, "Campaign_Mapping.csv",
		"SB Campaign Name,Sub-Category\nbrand-shoes,Shoes\n")

	maps, err := Load(asinPath, campaignPath)
	require.NoError(t, err)

	assert.Len(t, maps.ASIN.Rows, 2)
	assert.Len(t, maps.Campaign.Rows, 1)
	assert.Equal(t, "Shoes", maps.ASIN.Rows[0][model.ColumnSubCategory])
}

func TestLoadMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	campaignPath := writeFile(t, dir, "Campaign_Mapping.csv",
		"SB Campaign Name,Sub-Category\nbrand-shoes,Shoes\n")

	_, err := Load(filepath.Join(dir, "nope.csv"), campaignPath)
	assert.Error(t, err)
}

func TestLoadMissingKeyColumnFails(t *testing.T) {
	dir := t.TempDir()
	asinPath := writeFile(t, dir, "asin.csv", "Product,Sub-Category\nB0001,Shoes\n")
	campaignPath := writeFile(t, dir, "campaign.csv",
		"SB Campaign Name,Sub-Category\nbrand-shoes,Shoes\n")

	_, err := Load(asinPath, campaignPath)
	assert.ErrorContains(t, err, `lacks key column "ASIN"`)
}

func TestForSelectsJoinTarget(t *testing.T) {
	maps := &Mappings{
		ASIN:     model.NewTable(model.ColumnASIN),
		Campaign: model.NewTable(model.ColumnSBCampaignName),
	}
	assert.Equal(t, maps.ASIN, maps.For(model.ReportSP))
	assert.Equal(t, maps.ASIN, maps.For(model.ReportSD))
	assert.Equal(t, maps.Campaign, maps.For(model.ReportSB))
}
