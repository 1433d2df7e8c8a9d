package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, read from an optional
// config.toml next to the working directory.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// DataConfig holds file locations: the run-tracking database, the two
// reference mapping CSVs and the directory summaries are written under.
type DataConfig struct {
	DBPath              string `toml:"db_path"`
	ASINMappingPath     string `toml:"asin_mapping_path"`
	CampaignMappingPath string `toml:"campaign_mapping_path"`
	OutputDir           string `toml:"output_dir"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port: 8080,
		},
		Data: DataConfig{
			DBPath:              "reports.db",
			ASINMappingPath:     "ASIN_Mapping_Report.csv",
			CampaignMappingPath: "Campaign_Mapping.csv",
			OutputDir:           "outputs",
		},
	}
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. Fields absent from the file keep their default values.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
