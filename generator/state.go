// Package generator drives the lifecycle state machine that coordinates a
// waveform.Context through startup, playback and shutdown: the Go stand-in
// for the AudioWorkletProcessor-side coordination logic. It does not touch
// an audio API directly; Process is meant to be called once per render
// quantum by whatever real-time or offline host owns the actual output.
package generator

import "sync/atomic"

// State is the lifecycle coordinator's current state, held in a single
// atomic cell per spec.md's single-atomic-cell requirement.
type State int32

// State transition graph:
//
//	Idle -> Startup -> ReqParams -> LoadParams -> FadeIn -> Running -> FadeOut -> Suspend -> Idle
//
// Start initiates Idle -> Startup; Stop initiates Running -> FadeOut (or
// a direct return to Idle before FadeIn); ReqParams waits for a LoadParams
// call. Every other transition is initiated internally by Process once its
// condition is met.
const (
	StateIdle State = iota
	StateStartup
	StateReqParams
	StateLoadParams
	StateFadeIn
	StateRunning
	StateFadeOut
	StateSuspend
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStartup:
		return "startup"
	case StateReqParams:
		return "req_params"
	case StateLoadParams:
		return "load_params"
	case StateFadeIn:
		return "fade_in"
	case StateRunning:
		return "running"
	case StateFadeOut:
		return "fade_out"
	case StateSuspend:
		return "suspend"
	default:
		return "unknown"
	}
}

// DelayMs is the delay, in milliseconds, inserted during Startup (waiting
// for the host's output-latency info to settle) and Suspend (ensuring no
// audible pop before the host actually stops pulling samples).
const DelayMs = 465

type atomicState struct {
	v int32
}

func (a *atomicState) load() State    { return State(atomic.LoadInt32(&a.v)) }
func (a *atomicState) store(s State)  { atomic.StoreInt32(&a.v, int32(s)) }
