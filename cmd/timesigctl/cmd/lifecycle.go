package cmd

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/equivtech/timesig/generator"
	"github.com/equivtech/timesig/station"
	"github.com/equivtech/timesig/waveform"
)

// lifecycleHandler reacts to generator.Coordinator state transitions by
// supplying params once REQ_PARAMS is reached. It implements
// generator.Controller.
type lifecycleHandler struct {
	coordinator *generator.Coordinator
	params      station.UserParams
}

func (h *lifecycleHandler) NotifyState(state generator.State) {
	if state == generator.StateReqParams {
		h.coordinator.LoadParams(h.params)
	}
}

// drainNotifications forwards every pending Process-initiated
// notification to handler, the way a real host's own goroutine would.
func drainNotifications(c *generator.Coordinator, handler *lifecycleHandler) {
	for {
		select {
		case s := <-c.Notifications():
			handler.NotifyState(s)
		default:
			return
		}
	}
}

// renderLifecycle drives a Coordinator through Idle -> ... -> Running
// (for runDuration) -> ... -> Idle, writing every render quantum
// (including startup/shutdown silence) to sink.
func renderLifecycle(sampleRate uint32, params station.UserParams, runDuration time.Duration, sink waveform.Sink) error {
	handler := &lifecycleHandler{params: params}
	c := generator.NewCoordinator(sampleRate, handler, logrus.StandardLogger())
	handler.coordinator = c

	quantumMs := 1000.0 * float64(waveform.RenderQuantum) / float64(sampleRate)
	targetQuanta := int(runDuration.Seconds() * float64(sampleRate) / float64(waveform.RenderQuantum))

	buf := make([]float32, waveform.RenderQuantum)
	nowMs := float64(time.Now().UnixMilli())
	runningQuanta := 0
	reachedRunning := false

	c.Start()
	for {
		c.Process(nowMs, buf)
		if err := sink.WriteQuantum(buf); err != nil {
			return err
		}
		drainNotifications(c, handler)

		if c.State() == generator.StateRunning {
			reachedRunning = true
			runningQuanta++
			if runningQuanta >= targetQuanta {
				c.Stop()
			}
		}

		nowMs += quantumMs

		if reachedRunning && c.State() == generator.StateIdle {
			return nil
		}
	}
}
