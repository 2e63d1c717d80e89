package dataset

import (
	"sort"

	"github.com/climetrics/scenreport/internal/types"
)

// Frame is the in-memory ensemble: the data rows plus the metadata joined
// by scenario key. Filter operations return a new Frame sharing row values;
// the receiver is never mutated.
type Frame struct {
	Rows []types.Row
	Meta map[types.ScenarioKey]types.Meta

	// DroppedNoMeta counts data rows dropped at load time because their
	// scenario had no metadata record.
	DroppedNoMeta int
}

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.Rows) }

// MetaOf returns the metadata for a scenario key.
func (f *Frame) MetaOf(key types.ScenarioKey) (types.Meta, bool) {
	m, ok := f.Meta[key]
	return m, ok
}

func (f *Frame) filter(keep func(types.Row) bool) *Frame {
	out := &Frame{Meta: f.Meta, DroppedNoMeta: f.DroppedNoMeta}
	for _, r := range f.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// FilterCategories keeps rows whose scenario belongs to one of the given
// categories.
func (f *Frame) FilterCategories(categories []string) *Frame {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return f.filter(func(r types.Row) bool {
		m, ok := f.Meta[r.Key]
		if !ok {
			return false
		}
		_, keep := set[m.Category]
		return keep
	})
}

// FilterVetted keeps rows of scenarios that passed vetting.
func (f *Frame) FilterVetted() *Frame {
	return f.filter(func(r types.Row) bool {
		m, ok := f.Meta[r.Key]
		return ok && m.Vetted
	})
}

// FilterRegion keeps rows reported for the given region.
func (f *Frame) FilterRegion(region string) *Frame {
	return f.filter(func(r types.Row) bool { return r.Region == region })
}

// FilterVariable keeps rows of one variable.
func (f *Frame) FilterVariable(variable string) *Frame {
	return f.filter(func(r types.Row) bool { return r.Variable == variable })
}

// Series returns the sorted points a scenario reports for a variable, or
// false when the scenario does not report it.
func (f *Frame) Series(key types.ScenarioKey, variable string) ([]types.Point, bool) {
	for _, r := range f.Rows {
		if r.Key == key && r.Variable == variable {
			return r.Points, true
		}
	}
	return nil, false
}

// Scenarios returns the distinct scenario keys of the frame, sorted by
// model then scenario for deterministic output.
func (f *Frame) Scenarios() []types.ScenarioKey {
	seen := make(map[types.ScenarioKey]struct{})
	var keys []types.ScenarioKey
	for _, r := range f.Rows {
		if _, ok := seen[r.Key]; ok {
			continue
		}
		seen[r.Key] = struct{}{}
		keys = append(keys, r.Key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Model != keys[j].Model {
			return keys[i].Model < keys[j].Model
		}
		return keys[i].Scenario < keys[j].Scenario
	})
	return keys
}

// Categories returns the distinct category labels present in the frame,
// sorted.
func (f *Frame) Categories() []string {
	seen := make(map[string]struct{})
	for _, k := range f.Scenarios() {
		if m, ok := f.Meta[k]; ok {
			seen[m.Category] = struct{}{}
		}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Years returns the union of reported years across all rows, sorted.
func (f *Frame) Years() []int {
	seen := make(map[int]struct{})
	for _, r := range f.Rows {
		for _, p := range r.Points {
			seen[p.Year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
