package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "reports.db", cfg.Data.DBPath)
	assert.Equal(t, "ASIN_Mapping_Report.csv", cfg.Data.ASINMappingPath)
	assert.Equal(t, "Campaign_Mapping.csv", cfg.Data.CampaignMappingPath)
	assert.Equal(t, "outputs", cfg.Data.OutputDir)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[server]\nport = 9000\n\n[data]\noutput_dir = \"artifacts\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "artifacts", cfg.Data.OutputDir)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "reports.db", cfg.Data.DBPath)
}

func TestLoadInvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
