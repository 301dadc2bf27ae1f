package waveform

import (
	"math"

	"github.com/equivtech/timesig/calendar"
	"github.com/equivtech/timesig/station"
)

// FadePhase tells Generate which fade envelope, if any, is in effect for
// this render quantum. It mirrors the subset of the lifecycle coordinator's
// states that the waveform synthesizer itself needs to know about.
type FadePhase uint8

const (
	FadeNone FadePhase = iota
	FadeIn
	FadeOut
)

const msecsPerMinute = uint32(calendar.MsecsPerMinute)

func lerp(targetGain, gain float32) float32 {
	delta := targetGain - gain
	if delta < 0 {
		delta = -delta
	}
	if delta > lerpMinDelta {
		return (1.0-lerpRate)*gain + lerpRate*targetGain
	}
	return targetGain
}

func nextSample(ctx *Context) float32 {
	angle := 2 * math.Pi * float64(ctx.Phase) / float64(ctx.PhaseBase)
	lpcmSample := int32(math.Sin(angle) * float64(ctx.Gain) * float64(ctx.Scale))
	return float32(lpcmSample) / float32(ctx.Scale)
}

// Generate advances ctx by len(out) samples (normally RenderQuantum),
// writing one synthesized sample per element of out. fade selects the
// envelope in effect, matching whichever of the lifecycle coordinator's
// FADE_IN/RUNNING/FADE_OUT states drove this call (pass FadeNone for
// RUNNING). It returns true once the requested fade envelope has reached
// its endpoint (gain fully settled on its target gain) and the caller should advance
// to the next lifecycle state.
func Generate(ctx *Context, params station.UserParams, fade FadePhase, out []float32) bool {
	profile := station.Profiles[params.Station]
	xmitLowBase := profile.XmitLow
	complete := false

	for i := range out {
		if ctx.Samples == ctx.NextTick {
			adjTimestamp := 1000.0*float64(ctx.Samples)/float64(ctx.SampleRate) + ctx.Timestamp + params.OffsetMs
			adjDatetime := calendar.Parse(adjTimestamp)

			msecSinceMin := uint32(1000)*uint32(adjDatetime.Sec) + uint32(adjDatetime.Msec)
			ctx.Tick = uint16(msecSinceMin / station.TickMs)

			if ctx.Samples == 0 || ctx.Tick == 0 {
				ctx.Pattern = profile.Encode(adjDatetime, params)
			}

			msecSinceTick := uint32(adjDatetime.Msec) % station.TickMs
			msecToTick := uint32(station.TickMs) - msecSinceTick
			ctx.NextTick += msecToTick * ctx.SampleRate / 1000

			// Per DCF77's signal format, each minute and power change occurs at a
			// rising zero crossing; adjust the initial phase so minute start
			// lands on one. Harmless for the other stations.
			if ctx.Samples == 0 {
				msecToMin := msecsPerMinute - msecSinceMin
				toMin := msecToMin * ctx.SampleRate / 1000
				phaseToMin := (toMin * ctx.PhaseDelta) % ctx.PhaseBase
				if phaseToMin != 0 {
					ctx.Phase = ctx.PhaseBase - phaseToMin
				}
			}

			if params.Station == station.JJY && ctx.MorseEnd == 0 {
				min := adjDatetime.Min
				isAnnounce := min == station.JJYAnnounceMin1 || min == station.JJYAnnounceMin2
				if isAnnounce {
					sec := adjDatetime.Sec
					msec := adjDatetime.Msec
					isMorse := ((sec == station.JJYMorseSec && msec >= station.JJYMorseMs) ||
						station.JJYMorseSec < sec) && sec < station.JJYMorseEndSec
					if isMorse {
						msecToMorseEnd := uint32(1000*station.JJYMorseEndSec) - msecSinceMin
						ctx.MorseEnd = ctx.Samples + msecToMorseEnd*ctx.SampleRate/1000
					}
				}
			}
		}

		xmitLow := xmitLowBase
		if ctx.MorseEnd != 0 {
			if ctx.Samples < ctx.MorseEnd {
				xmitLow = 0
			} else {
				ctx.MorseEnd = 0
			}
		}

		isXmitHigh := ctx.Pattern.Bit(int(ctx.Tick))
		targetGain := xmitLow
		if isXmitHigh {
			targetGain = 1.0
		}
		gain := ctx.Gain

		if ctx.FadeGain != ctx.MaxFadeGain {
			ratio := float32(ctx.FadeGain) * float32(ctx.FadeGain) /
				(float32(ctx.MaxFadeGain) * float32(ctx.MaxFadeGain))
			targetGain *= ratio
		}

		if params.NoClip {
			ctx.Gain = lerp(targetGain, gain)
		} else {
			ctx.Gain = targetGain
		}

		out[i] = nextSample(ctx)

		ctx.Phase += ctx.PhaseDelta
		if ctx.Phase >= ctx.PhaseBase {
			ctx.Phase -= ctx.PhaseBase
		}
		ctx.Samples++

		switch fade {
		case FadeIn:
			if ctx.FadeGain < ctx.MaxFadeGain {
				ctx.FadeGain++
			} else if targetGain == ctx.Gain {
				complete = true
			}
		case FadeOut:
			if ctx.FadeGain > 0 {
				ctx.FadeGain--
			} else if targetGain == ctx.Gain {
				complete = true
			}
		}
	}

	return complete
}

// GenerateSilence fills out with zeroes, matching the idle/suspend-delay
// states in which the real processor callback must still produce a
// render quantum's worth of samples without advancing ctx.
func GenerateSilence(out []float32) {
	for i := range out {
		out[i] = 0
	}
}
