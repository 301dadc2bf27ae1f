package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJitterStatsTracksMeanAndCount(t *testing.T) {
	j := NewJitterStats()
	for _, v := range []float64{1, 2, 3, 4, 5} {
		j.Observe(v)
	}

	require.EqualValues(t, 5, j.Count())
	require.InDelta(t, 3.0, j.Mean(), 1e-9)
}

func TestJitterStatsStdDevZeroForConstantInput(t *testing.T) {
	j := NewJitterStats()
	for i := 0; i < 10; i++ {
		j.Observe(2.0)
	}
	require.InDelta(t, 0.0, j.StdDev(), 1e-9)
}
