package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Default()
	cfg.Dataset.Path = "ensemble.xlsx"
	cfg.Pairing.Map = map[string]string{"SSP1-26": "SSP1-19"}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing dataset path",
			mutate:  func(c *Config) { c.Dataset.Path = "" },
			wantErr: "dataset.path is required",
		},
		{
			name:    "csv dataset without meta",
			mutate:  func(c *Config) { c.Dataset.Path = "ensemble.csv" },
			wantErr: "dataset.meta is required",
		},
		{
			name: "csv dataset with meta",
			mutate: func(c *Config) {
				c.Dataset.Path = "ensemble.csv"
				c.Dataset.Meta = "meta.csv"
			},
		},
		{
			name:    "no categories",
			mutate:  func(c *Config) { c.Filter.Categories = nil },
			wantErr: "filter.categories",
		},
		{
			name:    "missing price variable",
			mutate:  func(c *Config) { c.Filter.PriceVariable = " " },
			wantErr: "filter.price_variable is required",
		},
		{
			name:    "rate at lower bound",
			mutate:  func(c *Config) { c.Discount.Rate = -1 },
			wantErr: "discount.rate",
		},
		{
			name:   "negative but valid rate",
			mutate: func(c *Config) { c.Discount.Rate = -0.01 },
		},
		{
			name:    "inverted horizon",
			mutate:  func(c *Config) { c.Discount.BaseYear = 2100; c.Discount.EndYear = 2020 },
			wantErr: "must precede",
		},
		{
			name:    "base year equals end year",
			mutate:  func(c *Config) { c.Discount.BaseYear = 2050; c.Discount.EndYear = 2050 },
			wantErr: "must precede",
		},
		{
			name:    "non-positive price cap",
			mutate:  func(c *Config) { c.Screen.MaxPrice = 0 },
			wantErr: "screen.max_price",
		},
		{
			name:    "zero min years",
			mutate:  func(c *Config) { c.Screen.MinYears = 0 },
			wantErr: "screen.min_years",
		},
		{
			name:    "empty pairing entry",
			mutate:  func(c *Config) { c.Pairing.Map = map[string]string{"SSP1-26": ""} },
			wantErr: "must not be empty",
		},
		{
			name:    "self-referential pairing entry",
			mutate:  func(c *Config) { c.Pairing.Map = map[string]string{"SSP1-26": "SSP1-26"} },
			wantErr: "maps a scenario to itself",
		},
		{
			name: "two scenarios sharing one counterpart",
			mutate: func(c *Config) {
				c.Pairing.Map = map[string]string{"SSP1-26": "SSP1-19", "SSP2-26": "SSP1-19"}
			},
			wantErr: "maps multiple scenarios to",
		},
		{
			name: "scenario on both sides of the table",
			mutate: func(c *Config) {
				c.Pairing.Map = map[string]string{"SSP1-26": "SSP1-19", "SSP1-19": "SSP1-10"}
			},
			wantErr: "appears as both",
		},
		{
			name: "disjoint entries are allowed",
			mutate: func(c *Config) {
				c.Pairing.Map = map[string]string{"SSP1-26": "SSP1-19", "SSP5-34": "SSP5-19"}
			},
		},
		{
			name:   "empty pairing map is allowed",
			mutate: func(c *Config) { c.Pairing.Map = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
