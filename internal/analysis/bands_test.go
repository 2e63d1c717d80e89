package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climetrics/scenreport/internal/dataset"
	"github.com/climetrics/scenreport/internal/types"
)

func TestTrajectoryBands(t *testing.T) {
	keyA := types.ScenarioKey{Model: "ModelA", Scenario: "SSP1-19"}
	keyB := types.ScenarioKey{Model: "ModelB", Scenario: "SSP1-19"}
	keyC := types.ScenarioKey{Model: "ModelA", Scenario: "SSP1-26"}

	rows := []types.Row{
		{Key: keyA, Variable: "Price|Carbon", Points: []types.Point{{Year: 2020, Value: 100}, {Year: 2030, Value: 200}}},
		{Key: keyB, Variable: "Price|Carbon", Points: []types.Point{{Year: 2020, Value: 200}, {Year: 2030, Value: 400}}},
		{Key: keyC, Variable: "Price|Carbon", Points: []types.Point{{Year: 2020, Value: 50}, {Year: 2030, Value: 80}}},
	}
	frame := &dataset.Frame{
		Rows: rows,
		Meta: map[types.ScenarioKey]types.Meta{
			keyA: {Category: "C1", Target: types.TargetLow, Vetted: true},
			keyB: {Category: "C1", Target: types.TargetLow, Vetted: true},
			keyC: {Category: "C3", Target: types.TargetHigh, Vetted: true},
		},
	}

	bands := TrajectoryBands(rows, frame, NewDiscounter(0.05, 2020, 2030))
	require.Len(t, bands, 2)

	// Targets sort lexically: "1.5C" before "2C".
	low := bands[0]
	assert.Equal(t, types.TargetLow, low.Target)
	require.Len(t, low.Years, 11)
	assert.Equal(t, 2020, low.Years[0])
	assert.Equal(t, 2030, low.Years[10])
	assert.InDelta(t, 150, low.Median[0], 1e-12)
	assert.InDelta(t, 300, low.Median[10], 1e-12)

	// Only one 2C scenario covers each year, so its band has no years.
	high := bands[1]
	assert.Equal(t, types.TargetHigh, high.Target)
	assert.Empty(t, high.Years)
}

func TestTrajectoryBandsSkipsRowsWithoutMeta(t *testing.T) {
	keyA := types.ScenarioKey{Model: "ModelA", Scenario: "SSP1-19"}
	rows := []types.Row{
		{Key: keyA, Variable: "Price|Carbon", Points: []types.Point{{Year: 2020, Value: 100}}},
	}
	frame := &dataset.Frame{Rows: rows, Meta: map[types.ScenarioKey]types.Meta{}}

	bands := TrajectoryBands(rows, frame, NewDiscounter(0.05, 2020, 2030))
	assert.Empty(t, bands)
}
