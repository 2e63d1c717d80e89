package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climetrics/scenreport/internal/analysis"
	"github.com/climetrics/scenreport/internal/types"
)

func assertPNGWritten(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestWriteTrajectoryFan(t *testing.T) {
	bands := []analysis.Band{
		{
			Target: types.TargetLow,
			Years:  []int{2030, 2040, 2050},
			Median: []float64{120, 200, 320},
			Q25:    []float64{100, 170, 280},
			Q75:    []float64{140, 240, 370},
		},
		{
			Target: types.TargetHigh,
			Years:  []int{2030, 2040, 2050},
			Median: []float64{50, 80, 120},
			Q25:    []float64{40, 65, 100},
			Q75:    []float64{60, 95, 145},
		},
	}

	path := filepath.Join(t.TempDir(), "trajectory_fan.png")
	require.NoError(t, WriteTrajectoryFan(path, bands))
	assertPNGWritten(t, path)
}

func TestWriteTrajectoryFanEmptyBands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_fan.png")
	require.NoError(t, WriteTrajectoryFan(path, nil))
	assertPNGWritten(t, path)
}

func TestWritePairScatter(t *testing.T) {
	pairs := []analysis.Pair{
		{Model: "ModelA", ScenarioHigh: "SSP1-26", ScenarioLow: "SSP1-19", NPVHigh: 60, NPVLow: 150, Ratio: 2.5},
		{Model: "ModelB", ScenarioHigh: "SSP1-26", ScenarioLow: "SSP1-19", NPVHigh: 90, NPVLow: 210, Ratio: 210.0 / 90},
	}

	path := filepath.Join(t.TempDir(), "pair_scatter.png")
	require.NoError(t, WritePairScatter(path, pairs))
	assertPNGWritten(t, path)
}

func TestWritePairScatterNoPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_scatter.png")
	require.NoError(t, WritePairScatter(path, nil))
	assertPNGWritten(t, path)
}

func TestBandColor(t *testing.T) {
	assert.NotEqual(t, bandColor(types.TargetLow), bandColor(types.TargetHigh))
	// Unknown targets fall back to a neutral grey.
	assert.Equal(t, bandColor("3C"), bandColor("4C"))
}
