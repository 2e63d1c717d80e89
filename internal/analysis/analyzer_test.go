package analysis

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climetrics/scenreport/internal/dataset"
	"github.com/climetrics/scenreport/internal/monitoring"
	"github.com/climetrics/scenreport/internal/types"
)

func analyzerTestFrame() *dataset.Frame {
	lowA := types.ScenarioKey{Model: "ModelA", Scenario: "SSP1-19"}
	highA := types.ScenarioKey{Model: "ModelA", Scenario: "SSP1-26"}
	lowB := types.ScenarioKey{Model: "ModelB", Scenario: "SSP1-19"}
	highB := types.ScenarioKey{Model: "ModelB", Scenario: "SSP1-26"}

	series := func(key types.ScenarioKey, unit string, v2030, v2050 float64) types.Row {
		return types.Row{
			Key: key, Region: "World", Variable: "Price|Carbon", Unit: unit,
			Points: []types.Point{
				{Year: 2030, Value: v2030},
				{Year: 2040, Value: (v2030 + v2050) / 2},
				{Year: 2050, Value: v2050},
			},
		}
	}

	return &dataset.Frame{
		Rows: []types.Row{
			series(lowA, "US$2010/t CO2", 100, 300),
			series(highA, "US$2010/t CO2", 40, 120),
			series(lowB, "US$2010/t CO2", 200, 600),
			// ModelB's 2C run misreports its unit and must be screened out.
			series(highB, "EUR2015/t CO2", 80, 240),
		},
		Meta: map[types.ScenarioKey]types.Meta{
			lowA:  {Category: "C1", Target: types.TargetLow, Vetted: true},
			highA: {Category: "C3", Target: types.TargetHigh, Vetted: true},
			lowB:  {Category: "C1", Target: types.TargetLow, Vetted: true},
			highB: {Category: "C3", Target: types.TargetHigh, Vetted: true},
		},
	}
}

func testAnalyzer() *Analyzer {
	return NewAnalyzer(
		NewScreener(10000, 3, "US$"),
		NewDiscounter(0.05, 2020, 2100),
		NewPairer(map[string]string{"SSP1-26": "SSP1-19"}),
		[]string{"Price|Carbon"},
		"Price|Carbon",
		monitoring.NewLogger(slog.LevelError),
	)
}

func TestAnalyzerRun(t *testing.T) {
	result, err := testAnalyzer().Run(analyzerTestFrame())
	require.NoError(t, err)

	// One series screened out, three NPVs survive.
	require.Len(t, result.Exclusions, 1)
	assert.Equal(t, ReasonBadUnit, result.Exclusions[0].Reason)
	assert.Equal(t, "ModelB", result.Exclusions[0].Key.Model)

	require.Len(t, result.NPVs, 3)
	for _, n := range result.NPVs {
		assert.Greater(t, n.NPV, 0.0)
		assert.Greater(t, n.RawMean, n.NPV)
		assert.Equal(t, 2030, n.FirstYear)
		assert.Equal(t, 2050, n.LastYear)
	}

	// ModelA pairs; ModelB's pair is dropped on the screened 2C side.
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "ModelA", result.Pairs[0].Model)
	assert.Equal(t, "C1", result.Pairs[0].Category)
	assert.InDelta(t, 2.5, result.Pairs[0].Ratio, 1e-9)

	require.Len(t, result.Dropped, 1)
	assert.Equal(t, "ModelB", result.Dropped[0].Model)
	assert.Equal(t, DropHighExcluded, result.Dropped[0].Reason)

	require.Len(t, result.Ratios, 1)
	assert.Equal(t, "C1", result.Ratios[0].Category)
	assert.Equal(t, 1, result.Ratios[0].N)

	assert.NotEmpty(t, result.Stats)
	require.Len(t, result.Bands, 2)
	assert.Equal(t, types.TargetLow, result.Bands[0].Target)
	assert.NotEmpty(t, result.Bands[0].Years)
	// Only one 2C series survives, so its band covers no years.
	assert.Empty(t, result.Bands[1].Years)
}

func TestAnalyzerRunNPVsSorted(t *testing.T) {
	result, err := testAnalyzer().Run(analyzerTestFrame())
	require.NoError(t, err)

	for i := 1; i < len(result.NPVs); i++ {
		prev, cur := result.NPVs[i-1].Key, result.NPVs[i].Key
		ordered := prev.Model < cur.Model || (prev.Model == cur.Model && prev.Scenario < cur.Scenario)
		assert.True(t, ordered, "NPVs out of order at %d", i)
	}
}

func TestAnalyzerRunEmptyFrame(t *testing.T) {
	frame := &dataset.Frame{Meta: map[types.ScenarioKey]types.Meta{}}
	_, err := testAnalyzer().Run(frame)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_QUALITY_ERROR")
}

func TestAnalyzerRunDropsPairWhenPriceSeriesMissing(t *testing.T) {
	lowA := types.ScenarioKey{Model: "ModelA", Scenario: "SSP1-19"}
	highA := types.ScenarioKey{Model: "ModelA", Scenario: "SSP1-26"}

	// The 2C run is in the frame but reports only emissions, no carbon
	// price. The mapped pair must surface in the dropped accounting.
	frame := &dataset.Frame{
		Rows: []types.Row{
			{
				Key: lowA, Region: "World", Variable: "Price|Carbon", Unit: "US$2010/t CO2",
				Points: []types.Point{
					{Year: 2030, Value: 100},
					{Year: 2040, Value: 200},
					{Year: 2050, Value: 300},
				},
			},
			{
				Key: highA, Region: "World", Variable: "Emissions|CO2", Unit: "Mt CO2/yr",
				Points: []types.Point{{Year: 2030, Value: 20000}},
			},
		},
		Meta: map[types.ScenarioKey]types.Meta{
			lowA:  {Category: "C1", Target: types.TargetLow, Vetted: true},
			highA: {Category: "C3", Target: types.TargetHigh, Vetted: true},
		},
	}

	result, err := testAnalyzer().Run(frame)
	require.NoError(t, err)

	assert.Empty(t, result.Pairs)
	assert.Empty(t, result.Exclusions)
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, "ModelA", result.Dropped[0].Model)
	assert.Equal(t, "SSP1-26", result.Dropped[0].ScenarioHigh)
	assert.Equal(t, DropHighMissing, result.Dropped[0].Reason)
}

func TestAnalyzerRunHorizonMiss(t *testing.T) {
	key := types.ScenarioKey{Model: "ModelA", Scenario: "SSP1-19"}
	frame := &dataset.Frame{
		Rows: []types.Row{
			{
				Key: key, Region: "World", Variable: "Price|Carbon", Unit: "US$2010/t CO2",
				Points: []types.Point{
					{Year: 2000, Value: 10},
					{Year: 2005, Value: 12},
					{Year: 2010, Value: 15},
				},
			},
		},
		Meta: map[types.ScenarioKey]types.Meta{
			key: {Category: "C1", Target: types.TargetLow, Vetted: true},
		},
	}

	result, err := testAnalyzer().Run(frame)
	require.NoError(t, err)

	require.Len(t, result.Exclusions, 1)
	assert.Equal(t, ReasonNoOverlap, result.Exclusions[0].Reason)
	assert.Empty(t, result.NPVs)
	assert.Empty(t, result.Pairs)
}
