package config

import (
	"fmt"
	"strings"
)

// Validate checks the constraints the analysis depends on. It is called
// once after file load and env overrides.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Dataset.Path) == "" {
		return fmt.Errorf("dataset.path is required")
	}
	if strings.HasSuffix(strings.ToLower(c.Dataset.Path), ".csv") && strings.TrimSpace(c.Dataset.Meta) == "" {
		return fmt.Errorf("dataset.meta is required for CSV datasets")
	}

	if len(c.Filter.Categories) == 0 {
		return fmt.Errorf("filter.categories must name at least one category")
	}
	if strings.TrimSpace(c.Filter.PriceVariable) == "" {
		return fmt.Errorf("filter.price_variable is required")
	}

	if c.Discount.Rate <= -1 {
		return fmt.Errorf("discount.rate must be > -1, got %f", c.Discount.Rate)
	}
	if c.Discount.BaseYear >= c.Discount.EndYear {
		return fmt.Errorf("discount.base_year %d must precede end_year %d", c.Discount.BaseYear, c.Discount.EndYear)
	}

	if c.Screen.MaxPrice <= 0 {
		return fmt.Errorf("screen.max_price must be > 0, got %f", c.Screen.MaxPrice)
	}
	if c.Screen.MinYears < 1 {
		return fmt.Errorf("screen.min_years must be >= 1, got %d", c.Screen.MinYears)
	}

	lows := make(map[string]struct{}, len(c.Pairing.Map))
	for high, low := range c.Pairing.Map {
		if strings.TrimSpace(high) == "" || strings.TrimSpace(low) == "" {
			return fmt.Errorf("pairing.map entries must not be empty")
		}
		if high == low {
			return fmt.Errorf("pairing.map entry %q maps a scenario to itself", high)
		}
		// A scenario may appear in at most one pair, so counterparts must
		// be unique and no scenario can sit on both sides of the table.
		if _, dup := lows[low]; dup {
			return fmt.Errorf("pairing.map maps multiple scenarios to %q", low)
		}
		lows[low] = struct{}{}
	}
	for high := range c.Pairing.Map {
		if _, ok := lows[high]; ok {
			return fmt.Errorf("pairing.map scenario %q appears as both a 2C entry and a 1.5C counterpart", high)
		}
	}

	return nil
}
