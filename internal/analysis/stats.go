package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/climetrics/scenreport/internal/dataset"
)

// SummaryRow is one line of the descriptive-statistics table: the values a
// category's scenarios report for a variable in one year.
type SummaryRow struct {
	Category string  `json:"category"`
	Variable string  `json:"variable"`
	Year     int     `json:"year"`
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Q25      float64 `json:"q25"`
	Median   float64 `json:"median"`
	Q75      float64 `json:"q75"`
	Max      float64 `json:"max"`
}

// Describe computes descriptive statistics per (category, variable, year)
// over the filtered frame. Rows are ordered category, variable, year.
func Describe(frame *dataset.Frame, variables []string) []SummaryRow {
	type cell struct {
		category, variable string
		year               int
	}
	values := make(map[cell][]float64)

	wanted := make(map[string]struct{}, len(variables))
	for _, v := range variables {
		wanted[v] = struct{}{}
	}

	for _, r := range frame.Rows {
		if _, ok := wanted[r.Variable]; !ok {
			continue
		}
		meta, ok := frame.MetaOf(r.Key)
		if !ok {
			continue
		}
		for _, p := range r.Points {
			c := cell{category: meta.Category, variable: r.Variable, year: p.Year}
			values[c] = append(values[c], p.Value)
		}
	}

	rows := make([]SummaryRow, 0, len(values))
	for c, xs := range values {
		sort.Float64s(xs)
		rows = append(rows, SummaryRow{
			Category: c.category,
			Variable: c.variable,
			Year:     c.year,
			N:        len(xs),
			Mean:     stat.Mean(xs, nil),
			Std:      sampleStd(xs),
			Min:      xs[0],
			Q25:      quantile(xs, 0.25),
			Median:   quantile(xs, 0.5),
			Q75:      quantile(xs, 0.75),
			Max:      xs[len(xs)-1],
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		if rows[i].Variable != rows[j].Variable {
			return rows[i].Variable < rows[j].Variable
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}

// sampleStd is zero for a single observation instead of NaN.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// quantile interpolates linearly between order statistics. xs must be
// sorted and non-empty.
func quantile(xs []float64, p float64) float64 {
	if len(xs) == 1 {
		return xs[0]
	}
	pos := p * float64(len(xs)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return xs[lo]
	}
	frac := pos - float64(lo)
	return xs[lo]*(1-frac) + xs[hi]*frac
}

// Median returns the middle value of the sample.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	return quantile(cp, 0.5)
}

// MAD returns the median absolute deviation, floored at 1 so robust-z
// stays defined for constant samples.
func MAD(xs []float64) float64 {
	if len(xs) == 0 {
		return 1
	}
	m := Median(xs)
	res := make([]float64, len(xs))
	for i, v := range xs {
		res[i] = math.Abs(v - m)
	}
	md := Median(res)
	if md == 0 {
		return 1
	}
	return md
}

// RobustZ computes asinh((x - med)/(1.4826*MAD)).
func RobustZ(x float64, sample []float64) float64 {
	med := Median(sample)
	s := 1.4826 * MAD(sample)
	if s == 0 {
		s = 1
	}
	return math.Asinh((x - med) / s)
}
