package generator

import (
	"github.com/sirupsen/logrus"

	"github.com/equivtech/timesig/station"
	"github.com/equivtech/timesig/waveform"
)

// notifyBacklog is the depth of the Process-driven notification channel.
// A host draining Notifications every render quantum will never come
// close to filling it; it exists so Process can never block on a slow
// consumer.
const notifyBacklog = 8

// Coordinator drives one waveform.Context through the full lifecycle:
// Idle, Startup, ReqParams, LoadParams, FadeIn, Running, FadeOut, Suspend.
// Start, LoadParams and Stop are called by the controlling host (the
// "main thread"); Process is called once per render quantum by whatever
// owns the actual audio output (the "audio thread").
//
// A Coordinator is not safe for concurrent calls to Start/LoadParams/Stop
// and Process from multiple goroutines simultaneously mutating params or
// waveformCtx, beyond the state field itself, which is atomic. This
// matches the original single-audio-thread, single-main-thread design.
type Coordinator struct {
	atom atomicState

	sampleRate    uint32
	delayQuantums uint32

	params      station.UserParams
	waveformCtx waveform.Context

	controller Controller
	notifyCh   chan State
	log        logrus.FieldLogger
}

// NewCoordinator creates a Coordinator for a host producing samples at
// sampleRate. controller receives direct, synchronous notification of
// transitions initiated by Start/LoadParams/Stop; transitions Process
// initiates itself are delivered asynchronously and must be drained via
// Notifications.
func NewCoordinator(sampleRate uint32, controller Controller, log logrus.FieldLogger) *Coordinator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Coordinator{
		sampleRate: sampleRate,
		controller: controller,
		notifyCh:   make(chan State, notifyBacklog),
		log:        log,
	}
	c.waveformCtx.SampleRate = sampleRate
	c.atom.store(StateIdle)
	c.rearmDelay()
	return c
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() State { return c.atom.load() }

// Notifications returns the channel on which Process-initiated state
// transitions are delivered. The host must drain it continuously (e.g.
// in its own goroutine, forwarding each State to its Controller) or risk
// notifications being dropped under backlog.
func (c *Coordinator) Notifications() <-chan State { return c.notifyCh }

func (c *Coordinator) rearmDelay() {
	c.delayQuantums = (c.sampleRate * DelayMs) / (1000 * waveform.RenderQuantum)
}

func (c *Coordinator) delayFinished() bool {
	if c.delayQuantums == 0 {
		return false
	}
	c.delayQuantums--
	if c.delayQuantums == 0 {
		c.rearmDelay()
		return true
	}
	return false
}

// Start requests a transition out of Idle. Once Process notices the
// startup delay has elapsed, the coordinator moves to ReqParams and waits
// for LoadParams.
func (c *Coordinator) Start() {
	c.atom.store(StateStartup)
	c.controller.NotifyState(StateStartup)
}

// LoadParams supplies the user parameters the coordinator should begin
// generating a signal for. Should be called in response to the
// controller observing a transition to StateReqParams.
func (c *Coordinator) LoadParams(params station.UserParams) {
	c.params = params
	c.atom.store(StateLoadParams)
	c.controller.NotifyState(StateLoadParams)
}

// Stop requests a transition toward Idle. If playback never started,
// this is immediate; otherwise it fades out first.
func (c *Coordinator) Stop() {
	next := StateFadeOut
	if c.atom.load() < StateFadeIn {
		c.rearmDelay()
		next = StateIdle
	}
	c.atom.store(next)
	c.controller.NotifyState(next)
}

func (c *Coordinator) notifyAsync(s State) {
	select {
	case c.notifyCh <- s:
	default:
		c.log.WithField("state", s).Warn("dropped lifecycle state-change notification: consumer not keeping up")
	}
}

// Process advances the coordinator by one render quantum, writing
// synthesized samples (or silence, outside FadeIn/Running/FadeOut) into
// out. nowMs is the host's current wall-clock time in milliseconds since
// the Unix epoch, sampled once per call the way the original consults
// emscripten_get_now().
func (c *Coordinator) Process(nowMs float64, out []float32) {
	state := c.atom.load()
	next := state
	silent := true

	switch state {
	case StateIdle:

	case StateStartup:
		if c.delayFinished() {
			next = StateReqParams
		}

	case StateReqParams:

	case StateLoadParams:
		waveform.Init(&c.waveformCtx, c.params, nowMs)
		next = StateFadeIn

	case StateFadeIn, StateRunning, StateFadeOut:
		fade := waveform.FadeNone
		switch state {
		case StateFadeIn:
			fade = waveform.FadeIn
		case StateFadeOut:
			fade = waveform.FadeOut
		}

		complete := waveform.Generate(&c.waveformCtx, c.params, fade, out)
		silent = false

		if complete {
			switch state {
			case StateFadeIn:
				next = StateRunning
			case StateFadeOut:
				next = StateSuspend
			}
		}

	case StateSuspend:
		if c.delayFinished() {
			next = StateIdle
		}
	}

	if next != state {
		c.atom.store(next)
		c.notifyAsync(next)
	}

	if silent {
		waveform.GenerateSilence(out)
	}
}
