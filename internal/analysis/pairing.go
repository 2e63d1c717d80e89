package analysis

import (
	"sort"

	"github.com/climetrics/scenreport/internal/types"
)

// Reasons a mapped pair can be dropped.
const (
	DropHighMissing  = "2c_side_missing"
	DropLowMissing   = "1.5c_side_missing"
	DropHighExcluded = "2c_side_excluded"
	DropLowExcluded  = "1.5c_side_excluded"
	DropZeroBase     = "zero_2c_npv"
)

// Pair is one comparable scenario pair: the same model run toward both
// warming targets.
type Pair struct {
	Model        string  `json:"model"`
	ScenarioHigh string  `json:"scenario_2c"`
	ScenarioLow  string  `json:"scenario_1_5c"`
	Category     string  `json:"category"`
	NPVHigh      float64 `json:"npv_2c"`
	NPVLow       float64 `json:"npv_1_5c"`
	// Ratio is NPV(1.5C) / NPV(2C): the carbon-price premium of the
	// tighter target.
	Ratio float64 `json:"ratio"`
}

// DroppedPair records a mapped pair that could not be formed.
type DroppedPair struct {
	Model        string `json:"model"`
	ScenarioHigh string `json:"scenario_2c"`
	Reason       string `json:"reason"`
}

// RatioSummary is the per-category distribution of pair ratios. The
// category comes from the 1.5C side's metadata.
type RatioSummary struct {
	Category string  `json:"category"`
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Q25      float64 `json:"q25"`
	Median   float64 `json:"median"`
	Q75      float64 `json:"q75"`
	Max      float64 `json:"max"`
}

// Pairer maps 2C scenario names to their 1.5C counterparts. Pairing never
// crosses models: both sides must exist under the same model.
type Pairer struct {
	table map[string]string
}

// NewPairer creates a pairer from the lookup table.
func NewPairer(table map[string]string) *Pairer {
	return &Pairer{table: table}
}

// BuildPairs forms ratio pairs from the per-scenario NPV results.
// scenarios is the filtered frame's scenario universe: table entries whose
// 2C side never appears in it are ignored, while a frame-present side
// without a usable price series drops the pair with that side's missing
// reason. excluded holds the keys removed by the screen; mapped pairs
// touching them are dropped with a side-specific reason instead.
func (p *Pairer) BuildPairs(scenarios []types.ScenarioKey, npvs []NPVResult, excluded []Exclusion) ([]Pair, []DroppedPair) {
	models := make(map[string]struct{})
	scenariosByModel := make(map[string]map[string]struct{})
	for _, key := range scenarios {
		models[key.Model] = struct{}{}
		set := scenariosByModel[key.Model]
		if set == nil {
			set = make(map[string]struct{})
			scenariosByModel[key.Model] = set
		}
		set[key.Scenario] = struct{}{}
	}

	byKey := make(map[types.ScenarioKey]NPVResult, len(npvs))
	for _, r := range npvs {
		byKey[r.Key] = r
	}

	excludedByKey := make(map[types.ScenarioKey]string, len(excluded))
	for _, e := range excluded {
		excludedByKey[e.Key] = e.Reason
	}

	modelList := make([]string, 0, len(models))
	for m := range models {
		modelList = append(modelList, m)
	}
	sort.Strings(modelList)

	highs := make([]string, 0, len(p.table))
	for high := range p.table {
		highs = append(highs, high)
	}
	sort.Strings(highs)

	var pairs []Pair
	var dropped []DroppedPair
	for _, model := range modelList {
		present := scenariosByModel[model]
		for _, high := range highs {
			if _, ok := present[high]; !ok {
				continue
			}
			low := p.table[high]

			highKey := types.ScenarioKey{Model: model, Scenario: high}
			lowKey := types.ScenarioKey{Model: model, Scenario: low}

			if _, isExcluded := excludedByKey[highKey]; isExcluded {
				dropped = append(dropped, DroppedPair{Model: model, ScenarioHigh: high, Reason: DropHighExcluded})
				continue
			}
			if _, isExcluded := excludedByKey[lowKey]; isExcluded {
				dropped = append(dropped, DroppedPair{Model: model, ScenarioHigh: high, Reason: DropLowExcluded})
				continue
			}

			highNPV, ok := byKey[highKey]
			if !ok {
				dropped = append(dropped, DroppedPair{Model: model, ScenarioHigh: high, Reason: DropHighMissing})
				continue
			}
			lowNPV, ok := byKey[lowKey]
			if !ok {
				dropped = append(dropped, DroppedPair{Model: model, ScenarioHigh: high, Reason: DropLowMissing})
				continue
			}
			if highNPV.NPV == 0 {
				dropped = append(dropped, DroppedPair{Model: model, ScenarioHigh: high, Reason: DropZeroBase})
				continue
			}

			pairs = append(pairs, Pair{
				Model:        model,
				ScenarioHigh: high,
				ScenarioLow:  low,
				Category:     lowNPV.Category,
				NPVHigh:      highNPV.NPV,
				NPVLow:       lowNPV.NPV,
				Ratio:        lowNPV.NPV / highNPV.NPV,
			})
		}
	}

	return pairs, dropped
}

// SummarizeRatios computes the per-category ratio distribution, sorted by
// category.
func SummarizeRatios(pairs []Pair) []RatioSummary {
	byCategory := make(map[string][]float64)
	for _, p := range pairs {
		byCategory[p.Category] = append(byCategory[p.Category], p.Ratio)
	}

	summaries := make([]RatioSummary, 0, len(byCategory))
	for category, ratios := range byCategory {
		sort.Float64s(ratios)
		mean := 0.0
		for _, r := range ratios {
			mean += r
		}
		mean /= float64(len(ratios))

		summaries = append(summaries, RatioSummary{
			Category: category,
			N:        len(ratios),
			Mean:     mean,
			Min:      ratios[0],
			Q25:      quantile(ratios, 0.25),
			Median:   quantile(ratios, 0.5),
			Q75:      quantile(ratios, 0.75),
			Max:      ratios[len(ratios)-1],
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Category < summaries[j].Category })
	return summaries
}
