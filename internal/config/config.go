package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Dataset   DatasetConfig  `yaml:"dataset"`
	OutputDir string         `yaml:"output_dir"`
	LogLevel  string         `yaml:"log_level"`
	Filter    FilterConfig   `yaml:"filter"`
	Discount  DiscountConfig `yaml:"discount"`
	Screen    ScreenConfig   `yaml:"screen"`
	Pairing   PairingConfig  `yaml:"pairing"`
	History   HistoryConfig  `yaml:"history"`
}

type DatasetConfig struct {
	Path string `yaml:"path"`
	// Meta points at the metadata CSV and is only required when Path is a
	// CSV dataset; workbooks carry their metadata on a "meta" sheet.
	Meta string `yaml:"meta"`
}

type FilterConfig struct {
	Categories []string `yaml:"categories"`
	VettedOnly bool     `yaml:"vetted_only"`
	Region     string   `yaml:"region"`
	Variables  []string `yaml:"variables"`
	// PriceVariable is the timeseries the discounted transform runs on.
	PriceVariable string `yaml:"price_variable"`
}

type DiscountConfig struct {
	Rate     float64 `yaml:"rate"`
	BaseYear int     `yaml:"base_year"`
	EndYear  int     `yaml:"end_year"`
}

type ScreenConfig struct {
	MaxPrice   float64 `yaml:"max_price"`
	MinYears   int     `yaml:"min_years"`
	UnitPrefix string  `yaml:"unit_prefix"`
}

type PairingConfig struct {
	// Map maps each 2C scenario name to its 1.5C counterpart. Pairing is
	// applied per model: both scenarios must exist under the same model.
	Map map[string]string `yaml:"map"`
}

type HistoryConfig struct {
	Path string `yaml:"path"`
}

func Default() Config {
	return Config{
		OutputDir: "out",
		LogLevel:  "info",
		Filter: FilterConfig{
			Categories:    []string{"C1", "C1a", "C2"},
			VettedOnly:    true,
			Region:        "World",
			Variables:     []string{"Emissions|CO2", "Price|Carbon"},
			PriceVariable: "Price|Carbon",
		},
		Discount: DiscountConfig{
			Rate:     0.05,
			BaseYear: 2020,
			EndYear:  2100,
		},
		Screen: ScreenConfig{
			MaxPrice:   10000,
			MinYears:   3,
			UnitPrefix: "US$",
		},
	}
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("SCENREPORT_DATASET")); v != "" {
		c.Dataset.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("SCENREPORT_META")); v != "" {
		c.Dataset.Meta = v
	}
	if v := strings.TrimSpace(os.Getenv("SCENREPORT_OUTPUT_DIR")); v != "" {
		c.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv("SCENREPORT_LOG_LEVEL")); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("SCENREPORT_HISTORY")); v != "" {
		c.History.Path = v
	}
}
