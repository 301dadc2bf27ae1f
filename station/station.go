// Package station implements the per-minute bit-level transmission pattern
// for five low-frequency time stations: BPC, DCF77, JJY, MSF and WWVB.
// Each station's Encode function is a pure mapping from a station-local
// Datetime and UserParams to a 1200-tick XmitPattern; callers are
// responsible for shifting the input Datetime into station-local time
// using Profile.UTCOffsetMs before calling Encode.
package station

import "github.com/equivtech/timesig/calendar"

// Station identifies a time station. Values are preserved bit-for-bit
// across the external interface.
type Station uint8

// Station enumeration, numbered as the external interface requires.
const (
	BPC Station = iota
	DCF77
	JJY
	MSF
	WWVB
)

func (s Station) String() string {
	switch s {
	case BPC:
		return "BPC"
	case DCF77:
		return "DCF77"
	case JJY:
		return "JJY"
	case MSF:
		return "MSF"
	case WWVB:
		return "WWVB"
	default:
		return "unknown"
	}
}

// JJYFreq selects which of JJY's two carrier frequencies to emulate.
type JJYFreq uint8

// JJY frequency enumeration.
const (
	JJY40kHz JJYFreq = iota
	JJY60kHz
)

// UserParams are the parameters a controller supplies before the generator
// can begin producing a signal. Snapshot-copied into the generator at the
// LOAD_PARAMS transition and never read directly from the real-time path
// thereafter.
type UserParams struct {
	OffsetMs float64 // user-supplied clock offset, milliseconds
	Station  Station
	JJYKHz   JJYFreq
	DUT1Ms   int16 // DUT1 (UT1 - UTC), milliseconds
	NoClip   bool  // whether to LERP gain changes instead of stepping
}

// TicksPerSec is the count of 50ms ticks in one second.
const TicksPerSec = 1000 / TickMs

// TickMs is the duration, in milliseconds, of one tick.
const TickMs = 50

// syncMarker is the sentinel distinguishing a marker symbol from data in a
// station's per-second/per-symbol working array.
const syncMarker = 0xff

// EncodeFunc generates one minute's XmitPattern for a station-local
// Datetime and the current UserParams.
type EncodeFunc func(dt calendar.Datetime, params UserParams) XmitPattern

// Profile holds the static, per-station constants needed by the waveform
// synthesizer: which encoder to call, what "station-local time" means,
// the real broadcast frequency, and the attenuated gain used for the
// low-carrier keying state.
type Profile struct {
	Encode     EncodeFunc
	UTCOffsetMs uint32  // usual (non-summer-time) UTC offset, milliseconds
	TargetHz   uint32  // nominal carrier frequency
	XmitLow    float32 // gain in [0,1] used for the "low" keying state
}

// Profiles holds the static profile for every station, indexed by Station.
var Profiles = [...]Profile{
	BPC: {
		Encode:      EncodeBPC,
		UTCOffsetMs: 28800000, // CST is UTC+0800
		TargetHz:    68500,
		XmitLow:     0.31622776, // -10 dB
	},
	DCF77: {
		Encode:      EncodeDCF77,
		UTCOffsetMs: 3600000, // CET is UTC+0100
		TargetHz:    77500,
		XmitLow:     0.14962357, // -16.5 dB
	},
	JJY: {
		Encode:      EncodeJJY,
		UTCOffsetMs: 32400000, // JST is UTC+0900
		TargetHz:    40000,
		XmitLow:     0.31622776, // -10 dB
	},
	MSF: {
		Encode:      EncodeMSF,
		UTCOffsetMs: 0,
		TargetHz:    60000,
		XmitLow:     0.0, // on-off keying
	},
	WWVB: {
		Encode:      EncodeWWVB,
		UTCOffsetMs: 0,
		TargetHz:    60000,
		XmitLow:     0.14125375, // -17 dB
	},
}

// TargetHz returns the actual carrier frequency to be emulated for the
// given params, accounting for JJY's two selectable frequencies.
func TargetHz(params UserParams) uint32 {
	if params.Station == JJY && params.JJYKHz == JJY60kHz {
		return 60000
	}
	return Profiles[params.Station].TargetHz
}

func evenParity(data []uint8, lo, hi int) uint8 {
	var parity uint8
	for i := lo; i < hi; i++ {
		for b := data[i]; b != 0; b &= b - 1 {
			parity ^= 1
		}
	}
	return parity
}

func oddParity(data []uint8, lo, hi int) uint8 {
	return 1 - evenParity(data, lo, hi)
}
