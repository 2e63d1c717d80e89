package analysis

import (
	"sort"

	"github.com/climetrics/scenreport/internal/dataset"
	"github.com/climetrics/scenreport/internal/types"
)

// Band is the quantile fan of a warming target's carbon-price
// trajectories: per year, the median and interquartile range across the
// surviving scenarios.
type Band struct {
	Target string    `json:"target"`
	Years  []int     `json:"years"`
	Median []float64 `json:"median"`
	Q25    []float64 `json:"q25"`
	Q75    []float64 `json:"q75"`
}

// TrajectoryBands computes one band per warming target from the screened
// price rows, on the annual grid of the discounter's horizon. Years where
// fewer than two scenarios are covered are omitted from the band.
func TrajectoryBands(rows []types.Row, frame *dataset.Frame, d *Discounter) []Band {
	perTarget := make(map[string]map[int][]float64)

	for _, r := range rows {
		meta, ok := frame.MetaOf(r.Key)
		if !ok {
			continue
		}
		byYear := perTarget[meta.Target]
		if byYear == nil {
			byYear = make(map[int][]float64)
			perTarget[meta.Target] = byYear
		}
		for year := d.BaseYear; year <= d.EndYear; year++ {
			if v, found := interpolate(r.Points, year); found {
				byYear[year] = append(byYear[year], v)
			}
		}
	}

	targets := make([]string, 0, len(perTarget))
	for t := range perTarget {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	bands := make([]Band, 0, len(targets))
	for _, target := range targets {
		byYear := perTarget[target]
		years := make([]int, 0, len(byYear))
		for y, vs := range byYear {
			if len(vs) >= 2 {
				years = append(years, y)
			}
		}
		sort.Ints(years)

		band := Band{Target: target, Years: years}
		for _, y := range years {
			vs := byYear[y]
			sort.Float64s(vs)
			band.Median = append(band.Median, quantile(vs, 0.5))
			band.Q25 = append(band.Q25, quantile(vs, 0.25))
			band.Q75 = append(band.Q75, quantile(vs, 0.75))
		}
		bands = append(bands, band)
	}

	return bands
}
