package station

import "github.com/equivtech/timesig/calendar"

// EncodeBPC generates BPC's 1200-tick pattern for the current station-local
// minute. BPC repeats a 20-symbol frame three times; each symbol occupies
// one second and encodes either a 2-bit data value or the sync marker.
//
// Symbol 10 is XORed with 1 on the second repeat only, and the p-th
// repeat's frame-index field (symbol 1) is only written for p > 0 — both
// exactly as observed in the reference implementation, which does not
// explain either. See DESIGN.md's Open Question entry.
func EncodeBPC(dt calendar.Datetime, _ UserParams) XmitPattern {
	var pattern XmitPattern
	var bits [20]uint8
	bits[0] = syncMarker

	hour12h := dt.Hour % 12
	bits[3] = (hour12h >> 2) & 0x3
	bits[4] = hour12h & 0x3

	min := dt.Min
	bits[5] = (min >> 4) & 0x3
	bits[6] = (min >> 2) & 0x3
	bits[7] = min & 0x3

	dow := dt.DayOfWeek
	if dow == 0 {
		dow = 7
	}
	bits[8] = (dow >> 2) & 0x1
	bits[9] = dow & 0x3

	isPM := uint8(0)
	if dt.Hour >= 12 {
		isPM = 1
	}
	bits[10] = (isPM << 1) | evenParity(bits[:], 1, 10)

	day := dt.Day
	bits[11] = (day >> 4) & 0x1
	bits[12] = (day >> 2) & 0x3
	bits[13] = day & 0x3

	mon := dt.Month
	bits[14] = (mon >> 2) & 0x3
	bits[15] = mon & 0x3

	year := uint8(dt.Year % 100)
	bits[16] = (year >> 4) & 0x3
	bits[17] = (year >> 2) & 0x3
	bits[18] = year & 0x3
	bits[19] = ((year >> 5) & 0x2) | evenParity(bits[:], 11, 19)

	j := 0
	for p := 0; p < 3; p++ {
		if p != 0 {
			bits[1] = 1 << uint(p)
		}
		if p == 1 {
			bits[10] ^= 1
		}

		// Marker: low for 0ms then high. 00: 100ms, 01: 200ms, 10: 300ms, 11: 400ms.
		for i := range bits {
			loDsec := 0
			if bits[i] != syncMarker {
				loDsec = int(bits[i]) + 1
			}
			pattern.paintSecond(&j, deciSecToTicks(loDsec), false)
		}
	}

	return pattern
}
