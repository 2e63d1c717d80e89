package analysis

import (
	"strings"

	"github.com/climetrics/scenreport/internal/types"
)

// Exclusion reasons for misreported carbon-price series.
const (
	ReasonBadUnit     = "unit_mismatch"
	ReasonTooFewYears = "too_few_years"
	ReasonNonPositive = "non_positive"
	ReasonImplausible = "implausible_magnitude"
	ReasonNoOverlap   = "outside_horizon"
)

// Exclusion records one series removed by the screen, with the rule that
// fired.
type Exclusion struct {
	Key    types.ScenarioKey `json:"key"`
	Reason string            `json:"reason"`
}

// Screener removes misreported carbon-price series before the discounted
// transform. The magnitude cap catches unit misreports, e.g. $/ktCO2
// submitted as $/tCO2.
type Screener struct {
	MaxPrice   float64
	MinYears   int
	UnitPrefix string
}

// NewScreener creates a screener with the given thresholds.
func NewScreener(maxPrice float64, minYears int, unitPrefix string) *Screener {
	return &Screener{MaxPrice: maxPrice, MinYears: minYears, UnitPrefix: unitPrefix}
}

// Check returns the exclusion reason for a series, or "" when it passes.
// Rules are checked in a fixed order so reasons stay deterministic.
func (s *Screener) Check(row types.Row) string {
	if s.UnitPrefix != "" && !strings.HasPrefix(row.Unit, s.UnitPrefix) {
		return ReasonBadUnit
	}
	if len(row.Points) < s.MinYears {
		return ReasonTooFewYears
	}

	anyPositive := false
	for _, p := range row.Points {
		if p.Value > 0 {
			anyPositive = true
		}
		if p.Value >= s.MaxPrice {
			return ReasonImplausible
		}
	}
	if !anyPositive {
		return ReasonNonPositive
	}

	return ""
}

// Screen splits the rows into survivors and exclusions.
func (s *Screener) Screen(rows []types.Row) ([]types.Row, []Exclusion) {
	var kept []types.Row
	var excluded []Exclusion
	for _, r := range rows {
		if reason := s.Check(r); reason != "" {
			excluded = append(excluded, Exclusion{Key: r.Key, Reason: reason})
			continue
		}
		kept = append(kept, r)
	}
	return kept, excluded
}
