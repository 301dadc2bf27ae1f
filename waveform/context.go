// Package waveform synthesizes an emulated time station waveform from a
// station's per-minute XmitPattern. It mirrors the render loop a Web Audio
// AudioWorkletProcessor would run, but drives an arbitrary Sink instead of
// a browser's audio graph.
package waveform

import "github.com/equivtech/timesig/station"

// RenderQuantum is the count of samples produced by one Generate call.
const RenderQuantum = 128

// FadeMs is the duration of the fade envelope applied on startup/shutdown.
const FadeMs = 35

const (
	lerpRate          = 0.015
	lerpMinDelta      = 0.005
	subharmonicThresh = 10000
	subharmonicFifth  = 5
	subharmonicSeventh = 7
)

// Context holds all per-sample synthesis state for one station's waveform.
// It is regenerated from scratch by Init at the start of each playback
// session; Generate advances it sample by sample.
type Context struct {
	SampleRate uint32

	Pattern station.XmitPattern // current station minute's transmit levels

	Timestamp float64 // base timestamp (ms) of this context
	Samples   uint32  // sample count since Timestamp
	NextTick  uint32  // sample count at which the next tick begins
	MorseEnd  uint32  // sample count when JJY on-off keying should stop, or 0
	Tick      uint16  // tick index within the current station minute

	PhaseDelta uint32 // phase numerator delta per generated sample
	PhaseBase  uint32 // phase denominator
	Phase      uint32 // phase numerator

	MaxFadeGain uint32 // fade envelope ceiling, in samples
	FadeGain    uint32 // fade envelope position, in samples
	Gain        float32

	Scale int32 // integer quantization scale factor
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// calculateSubharmonic picks the subharmonic (5th or 7th) used to keep the
// emulated carrier within audible range: stations at or under 50kHz play
// back at 1/5 their real frequency, anything higher at 1/7.
func calculateSubharmonic(targetHz uint32) uint8 {
	if targetHz/subharmonicFifth <= subharmonicThresh {
		return subharmonicFifth
	}
	return subharmonicSeventh
}

// Subharmonic reports which subharmonic (5th or 7th) Init would choose
// for a station whose real carrier is targetHz, and the resulting
// emulated playback frequency.
func Subharmonic(targetHz uint32) (divisor uint8, playbackHz uint32) {
	divisor = calculateSubharmonic(targetHz)
	return divisor, targetHz / uint32(divisor)
}

// Init prepares ctx to begin synthesizing params.Station's waveform. nowMs
// is the caller's current wall-clock time in milliseconds since the Unix
// epoch; ctx.SampleRate must already be set.
func Init(ctx *Context, params station.UserParams, nowMs float64) {
	profile := station.Profiles[params.Station]
	renderQuantumMs := 1000.0 * float64(RenderQuantum) / float64(ctx.SampleRate)
	sampleRate := ctx.SampleRate

	targetHz := station.TargetHz(params)
	subharmonic := uint32(calculateSubharmonic(targetHz))
	g := gcd(targetHz, sampleRate*subharmonic)

	ctx.Timestamp = nowMs + float64(profile.UTCOffsetMs) + renderQuantumMs
	ctx.Samples = 0
	ctx.NextTick = 0
	ctx.MorseEnd = 0

	ctx.PhaseDelta = targetHz / g
	ctx.PhaseBase = sampleRate * subharmonic / g
	ctx.Phase = 0

	ctx.MaxFadeGain = sampleRate * FadeMs / 1000
	ctx.FadeGain = 0
	ctx.Gain = 0

	ctx.Scale = int32(sampleRate / subharmonic)
}
