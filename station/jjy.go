package station

import "github.com/equivtech/timesig/calendar"

// JJY announcement minutes: during minutes 15 and 45, the year/day-of-week
// fields are suppressed and a Morse-code station ID is transmitted.
//
// These are exported (rather than kept package-private like the other
// stations' constants) because the waveform synthesizer needs them to
// detect when to key the Morse overlay in and out at the sample level,
// independent of this package's own per-minute bit painting.
const (
	JJYAnnounceMin1 = 15
	JJYAnnounceMin2 = 45

	JJYMorseSec    = 40
	JJYMorseMs     = 550
	JJYMorseEndSec = 49

	jjyAnnounceMin1 = JJYAnnounceMin1
	jjyAnnounceMin2 = JJYAnnounceMin2
	jjyMorseSec     = JJYMorseSec
	jjyMorseMs      = JJYMorseMs
	jjyMorseEndSec  = JJYMorseEndSec

	jjyMorseTick    = jjyMorseSec*TicksPerSec + jjyMorseMs/TickMs
	jjyMorseEndTick = jjyMorseEndSec * TicksPerSec
)

// Morse symbol durations, in ticks.
const (
	ticksPerDit = 2
	ticksPerDah = 5
	ticksPerIEG = 1  // inter-element gap
	ticksPerICG = 6  // inter-character gap
	ticksPerIWG = 10 // inter-word gap
)

func jjyMorsePulse(pattern *XmitPattern, k *int, ticks int) {
	for i := 0; i < ticks; i++ {
		pattern.setBit(*k)
		*k++
	}
}

// jjyMorse overwrites ticks [jjyMorseSec*TicksPerSec, jjyMorseEndSec*TicksPerSec)
// with the Morse code for "JJY JJY".
func jjyMorse(pattern *XmitPattern) {
	lo := jjyMorseSec * TicksPerSec
	hi := jjyMorseEndSec * TicksPerSec
	for i := lo; i < hi; i++ {
		pattern.clearBit(i)
	}

	k := jjyMorseTick
	for i := 0; i < 2; i++ {
		// "JJ", i.e. .--- .---
		for j := 0; j < 2; j++ {
			jjyMorsePulse(pattern, &k, ticksPerDit)
			k += ticksPerIEG
			jjyMorsePulse(pattern, &k, ticksPerDah)
			k += ticksPerIEG
			jjyMorsePulse(pattern, &k, ticksPerDah)
			k += ticksPerIEG
			jjyMorsePulse(pattern, &k, ticksPerDah)
			k += ticksPerICG
		}
		// "Y", i.e. -.--
		jjyMorsePulse(pattern, &k, ticksPerDah)
		k += ticksPerIEG
		jjyMorsePulse(pattern, &k, ticksPerDit)
		k += ticksPerIEG
		jjyMorsePulse(pattern, &k, ticksPerDah)
		k += ticksPerIEG
		jjyMorsePulse(pattern, &k, ticksPerDah)
		k += ticksPerIWG
	}
}

// EncodeJJY generates JJY's 1200-tick pattern for the current station-local
// minute, for either the 40kHz or 60kHz carrier (the bit pattern itself
// does not depend on which).
func EncodeJJY(dt calendar.Datetime, _ UserParams) XmitPattern {
	var pattern XmitPattern
	var bits [60]uint8
	for _, sec := range []int{0, 9, 19, 29, 39, 49, 59} {
		bits[sec] = syncMarker
	}

	min10 := dt.Min / 10
	bits[1] = min10 & 4
	bits[2] = min10 & 2
	bits[3] = min10 & 1

	min := dt.Min % 10
	bits[5] = min & 8
	bits[6] = min & 4
	bits[7] = min & 2
	bits[8] = min & 1

	hour10 := dt.Hour / 10
	bits[12] = hour10 & 2
	bits[13] = hour10 & 1

	hour := dt.Hour % 10
	bits[15] = hour & 8
	bits[16] = hour & 4
	bits[17] = hour & 2
	bits[18] = hour & 1

	doy100 := uint8(dt.DayOfYear / 100)
	bits[22] = doy100 & 2
	bits[23] = doy100 & 1

	doy10 := uint8((dt.DayOfYear % 100) / 10)
	bits[25] = doy10 & 8
	bits[26] = doy10 & 4
	bits[27] = doy10 & 2
	bits[28] = doy10 & 1

	doy := uint8(dt.DayOfYear % 10)
	bits[30] = doy & 8
	bits[31] = doy & 4
	bits[32] = doy & 2
	bits[33] = doy & 1

	bits[36] = evenParity(bits[:], 12, 19)
	bits[37] = evenParity(bits[:], 1, 9)

	isAnnounce := dt.Min == jjyAnnounceMin1 || dt.Min == jjyAnnounceMin2
	if !isAnnounce {
		year10 := uint8((dt.Year % 100) / 10)
		bits[41] = year10 & 8
		bits[42] = year10 & 4
		bits[43] = year10 & 2
		bits[44] = year10 & 1

		year := uint8(dt.Year % 10)
		bits[45] = year & 8
		bits[46] = year & 4
		bits[47] = year & 2
		bits[48] = year & 1

		dow := dt.DayOfWeek
		bits[50] = dow & 4
		bits[51] = dow & 2
		bits[52] = dow & 1
	}

	j := 0
	// Marker: high for 200ms, 0: 800ms, 1: 500ms, then low for the remainder.
	for i := 0; i < len(bits); i++ {
		if isAnnounce && i == jjyMorseSec {
			jjyMorse(&pattern)
			i = jjyMorseEndSec
			j = jjyMorseEndTick
		}

		hiDsec := 8
		switch {
		case bits[i] == syncMarker:
			hiDsec = 2
		case bits[i] != 0:
			hiDsec = 5
		}
		pattern.paintSecond(&j, TicksPerSec-deciSecToTicks(hiDsec), true)
	}

	return pattern
}
