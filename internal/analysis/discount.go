package analysis

import (
	"math"

	"github.com/climetrics/scenreport/internal/types"
)

// NPVResult is the discounted transform of one scenario's carbon-price
// series.
type NPVResult struct {
	Key      types.ScenarioKey `json:"key"`
	Category string            `json:"category"`
	Target   string            `json:"target"`
	// NPV is the mean of the annual prices discounted to the base year.
	NPV float64 `json:"npv"`
	// RawMean is the undiscounted mean over the same annual grid.
	RawMean float64 `json:"raw_mean"`
	// FirstYear and LastYear are the covered span: the overlap of the
	// horizon with the series' reported span.
	FirstYear int `json:"first_year"`
	LastYear  int `json:"last_year"`
}

// Discounter turns a sparse timeseries into a present-value summary.
// Reported years are linearly interpolated to an annual grid; values
// outside the reported span are never extrapolated.
type Discounter struct {
	Rate     float64
	BaseYear int
	EndYear  int
}

// NewDiscounter creates a discounter over [baseYear, endYear].
func NewDiscounter(rate float64, baseYear, endYear int) *Discounter {
	return &Discounter{Rate: rate, BaseYear: baseYear, EndYear: endYear}
}

// Factor returns the discount factor for a year relative to the base year.
func (d *Discounter) Factor(year int) float64 {
	return math.Pow(1+d.Rate, -float64(year-d.BaseYear))
}

// Value computes the discounted and raw means of a series over the
// horizon. ok is false when the reported span does not overlap the
// horizon or the series is empty.
func (d *Discounter) Value(points []types.Point) (npv, raw float64, first, last int, ok bool) {
	if len(points) == 0 {
		return 0, 0, 0, 0, false
	}

	first = points[0].Year
	last = points[len(points)-1].Year
	if first < d.BaseYear {
		first = d.BaseYear
	}
	if last > d.EndYear {
		last = d.EndYear
	}
	if first > last {
		return 0, 0, 0, 0, false
	}

	n := 0
	for year := first; year <= last; year++ {
		v, found := interpolate(points, year)
		if !found {
			continue
		}
		npv += v * d.Factor(year)
		raw += v
		n++
	}
	if n == 0 {
		return 0, 0, 0, 0, false
	}

	return npv / float64(n), raw / float64(n), first, last, true
}

// interpolate returns the series value at year, linearly interpolated
// between the neighbouring reported years. found is false outside the
// reported span.
func interpolate(points []types.Point, year int) (float64, bool) {
	if len(points) == 0 || year < points[0].Year || year > points[len(points)-1].Year {
		return 0, false
	}

	for i, p := range points {
		if p.Year == year {
			return p.Value, true
		}
		if p.Year > year {
			prev := points[i-1]
			span := float64(p.Year - prev.Year)
			frac := float64(year-prev.Year) / span
			return prev.Value + frac*(p.Value-prev.Value), true
		}
	}
	return 0, false
}
