package types

import "fmt"

// Targets the ensemble is split into. Pairing always maps a TargetHigh
// scenario to its TargetLow counterpart within the same model.
const (
	TargetLow  = "1.5C"
	TargetHigh = "2C"
)

// ScenarioKey identifies one scenario of the ensemble.
type ScenarioKey struct {
	Model    string `json:"model"`
	Scenario string `json:"scenario"`
}

func (k ScenarioKey) String() string {
	return fmt.Sprintf("%s|%s", k.Model, k.Scenario)
}

// Meta is the metadata record attached to a scenario.
type Meta struct {
	Category string `json:"category"`
	Target   string `json:"target"`
	Vetted   bool   `json:"vetted"`
}

// Point is one reported (year, value) observation of a timeseries.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Row is one dataset row: a variable timeseries reported by a scenario
// for a region. Points are sorted by year and contain only reported years.
type Row struct {
	Key      ScenarioKey `json:"key"`
	Region   string      `json:"region"`
	Variable string      `json:"variable"`
	Unit     string      `json:"unit"`
	Points   []Point     `json:"points"`
}

// Years returns the reported years of the row in order.
func (r Row) Years() []int {
	years := make([]int, len(r.Points))
	for i, p := range r.Points {
		years[i] = p.Year
	}
	return years
}

// ValueAt returns the reported value for a year, if any.
func (r Row) ValueAt(year int) (float64, bool) {
	for _, p := range r.Points {
		if p.Year == year {
			return p.Value, true
		}
	}
	return 0, false
}
