package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/equivtech/timesig/station"
	"github.com/equivtech/timesig/waveform"
)

type recordingSink struct {
	quanta [][]float32
}

func (r *recordingSink) WriteQuantum(samples []float32) error {
	cp := make([]float32, len(samples))
	copy(cp, samples)
	r.quanta = append(r.quanta, cp)
	return nil
}

func TestRenderLifecycleWritesNonSilentQuantaWhileRunning(t *testing.T) {
	sink := &recordingSink{}
	err := renderLifecycle(1000, station.UserParams{Station: station.WWVB}, 50*time.Millisecond, sink)
	require.NoError(t, err)
	require.NotEmpty(t, sink.quanta)

	sawNonZero := false
	for _, q := range sink.quanta {
		for _, s := range q {
			if s != 0 {
				sawNonZero = true
			}
		}
	}
	require.True(t, sawNonZero, "expected at least one non-silent render quantum")

	for _, q := range sink.quanta {
		require.Len(t, q, waveform.RenderQuantum)
	}
}

func TestRenderLifecycleCompletesWithZeroDuration(t *testing.T) {
	sink := &recordingSink{}
	err := renderLifecycle(1000, station.UserParams{Station: station.BPC}, 0, sink)
	require.NoError(t, err)
	require.NotEmpty(t, sink.quanta)
}
