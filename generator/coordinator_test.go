package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/equivtech/timesig/station"
)

// drainNotifications forwards every pending Process-initiated notification
// into the mock controller, the way a host's own goroutine would.
func drainNotifications(t *testing.T, c *Coordinator, mc *mockController) {
	t.Helper()
	for {
		select {
		case s := <-c.Notifications():
			mc.NotifyState(s)
		default:
			return
		}
	}
}

func TestCoordinatorFullLifecycle(t *testing.T) {
	mc := newMockController()
	// Small sample rate keeps the Startup/Suspend delays and fade envelope
	// within a handful of render quanta so the test runs fast.
	c := NewCoordinator(1000, mc, nil)
	require.Equal(t, StateIdle, c.State())

	c.Start()
	require.Equal(t, StateStartup, c.State())

	out := make([]float32, 128)

	// Startup delay: (1000*465)/(1000*128) = 3 quantums.
	for i := 0; i < 10 && c.State() == StateStartup; i++ {
		c.Process(0, out)
	}
	drainNotifications(t, c, mc)
	require.Equal(t, StateReqParams, c.State())
	require.Equal(t, StateReqParams, mc.last())

	c.LoadParams(station.UserParams{Station: station.WWVB})
	require.Equal(t, StateLoadParams, c.State())

	c.Process(0, out)
	drainNotifications(t, c, mc)
	require.Equal(t, StateFadeIn, c.State())
	require.Equal(t, StateFadeIn, mc.last())

	// Fade-in envelope: max_fade_gain = sample_rate*fade_ms/1000 = 35 samples.
	for i := 0; i < 100 && c.State() == StateFadeIn; i++ {
		c.Process(0, out)
	}
	drainNotifications(t, c, mc)
	require.Equal(t, StateRunning, c.State())
	require.Equal(t, StateRunning, mc.last())

	c.Process(0, out)
	require.Equal(t, StateRunning, c.State(), "Running persists until Stop")

	c.Stop()
	require.Equal(t, StateFadeOut, c.State())

	for i := 0; i < 100 && c.State() == StateFadeOut; i++ {
		c.Process(0, out)
	}
	drainNotifications(t, c, mc)
	require.Equal(t, StateSuspend, c.State())
	require.Equal(t, StateSuspend, mc.last())

	for i := 0; i < 10 && c.State() == StateSuspend; i++ {
		c.Process(0, out)
	}
	drainNotifications(t, c, mc)
	require.Equal(t, StateIdle, c.State())
	require.Equal(t, StateIdle, mc.last())
}

func TestCoordinatorStopBeforeFadeInGoesDirectlyToIdle(t *testing.T) {
	mc := newMockController()
	c := NewCoordinator(1000, mc, nil)

	c.Start()
	c.Stop()

	require.Equal(t, StateIdle, c.State())
	require.Equal(t, StateIdle, mc.last())
}

func TestCoordinatorEveryProcessTransitionIsNotified(t *testing.T) {
	mc := newMockController()
	c := NewCoordinator(1000, mc, nil)

	c.Start()
	c.LoadParams(station.UserParams{Station: station.BPC})

	out := make([]float32, 128)
	seenStates := map[State]bool{}
	for i := 0; i < 500; i++ {
		before := c.State()
		c.Process(0, out)
		after := c.State()
		if after != before {
			select {
			case s := <-c.Notifications():
				require.Equal(t, after, s, "every store must be paired with exactly the same notified state")
				seenStates[s] = true
			default:
				t.Fatalf("state changed from %v to %v with no notification queued", before, after)
			}
		}
	}
	require.True(t, seenStates[StateFadeIn] || seenStates[StateRunning])
}
