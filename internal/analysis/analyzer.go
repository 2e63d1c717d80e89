package analysis

import (
	"fmt"
	"sort"

	"github.com/climetrics/scenreport/internal/dataset"
	apperrors "github.com/climetrics/scenreport/internal/errors"
	"github.com/climetrics/scenreport/internal/monitoring"
	"github.com/climetrics/scenreport/internal/types"
)

// Result bundles everything one analysis run produces.
type Result struct {
	Stats      []SummaryRow   `json:"stats"`
	NPVs       []NPVResult    `json:"npvs"`
	Exclusions []Exclusion    `json:"exclusions"`
	Pairs      []Pair         `json:"pairs"`
	Dropped    []DroppedPair  `json:"dropped_pairs"`
	Ratios     []RatioSummary `json:"ratio_summaries"`
	Bands      []Band         `json:"bands"`
}

// Analyzer orchestrates the full analysis pipeline over a filtered frame.
type Analyzer struct {
	screener   *Screener
	discounter *Discounter
	pairer     *Pairer
	variables  []string
	priceVar   string
	logger     *monitoring.Logger
}

// NewAnalyzer creates an analyzer with all components wired.
func NewAnalyzer(screener *Screener, discounter *Discounter, pairer *Pairer, variables []string, priceVariable string, logger *monitoring.Logger) *Analyzer {
	return &Analyzer{
		screener:   screener,
		discounter: discounter,
		pairer:     pairer,
		variables:  variables,
		priceVar:   priceVariable,
		logger:     logger,
	}
}

// Run executes statistics, screening, the discounted transform, and the
// paired comparison over the already-filtered frame.
func (a *Analyzer) Run(frame *dataset.Frame) (*Result, error) {
	if frame.Len() == 0 {
		return nil, apperrors.NewDataQualityError("no scenario rows survive the configured filter", "")
	}

	result := &Result{
		Stats: Describe(frame, a.variables),
	}

	priceRows := frame.FilterVariable(a.priceVar).Rows
	kept, excluded := a.screener.Screen(priceRows)
	result.Exclusions = excluded
	for _, e := range excluded {
		a.logger.ScreenLogger(e.Key.String(), e.Reason)
	}

	for _, r := range kept {
		npv, raw, first, last, ok := a.discounter.Value(r.Points)
		if !ok {
			result.Exclusions = append(result.Exclusions, Exclusion{Key: r.Key, Reason: ReasonNoOverlap})
			a.logger.ScreenLogger(r.Key.String(), ReasonNoOverlap)
			continue
		}
		meta, ok := frame.MetaOf(r.Key)
		if !ok {
			return nil, apperrors.NewInternalError(
				fmt.Sprintf("scenario %s lost its metadata after filtering", r.Key), nil)
		}
		result.NPVs = append(result.NPVs, NPVResult{
			Key:       r.Key,
			Category:  meta.Category,
			Target:    meta.Target,
			NPV:       npv,
			RawMean:   raw,
			FirstYear: first,
			LastYear:  last,
		})
	}

	sort.Slice(result.NPVs, func(i, j int) bool {
		if result.NPVs[i].Key.Model != result.NPVs[j].Key.Model {
			return result.NPVs[i].Key.Model < result.NPVs[j].Key.Model
		}
		return result.NPVs[i].Key.Scenario < result.NPVs[j].Key.Scenario
	})

	// Bands come from the rows that survived all exclusions.
	surviving := make([]types.Row, 0, len(kept))
	excludedKeys := make(map[types.ScenarioKey]struct{}, len(result.Exclusions))
	for _, e := range result.Exclusions {
		excludedKeys[e.Key] = struct{}{}
	}
	for _, r := range kept {
		if _, ok := excludedKeys[r.Key]; !ok {
			surviving = append(surviving, r)
		}
	}
	result.Bands = TrajectoryBands(surviving, frame, a.discounter)

	result.Pairs, result.Dropped = a.pairer.BuildPairs(frame.Scenarios(), result.NPVs, result.Exclusions)
	result.Ratios = SummarizeRatios(result.Pairs)

	return result, nil
}
