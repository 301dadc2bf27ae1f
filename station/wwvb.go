package station

import "github.com/equivtech/timesig/calendar"

// EncodeWWVB generates WWVB's 1200-tick pattern for the current UTC minute.
func EncodeWWVB(dt calendar.Datetime, params UserParams) XmitPattern {
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

	dut1 := int8(params.DUT1Ms / 100)
	if dut1 >= 0 {
		bits[36] = 1
		bits[38] = 1
	} else {
		bits[37] = 1
	}
	if dut1 < 0 {
		dut1 = -dut1
	}
	bits[40] = uint8(dut1) & 8
	bits[41] = uint8(dut1) & 4
	bits[42] = uint8(dut1) & 2
	bits[43] = uint8(dut1) & 1

	year10 := uint8((dt.Year % 100) / 10)
	bits[45] = year10 & 8
	bits[46] = year10 & 4
	bits[47] = year10 & 2
	bits[48] = year10 & 1

	year := uint8(dt.Year % 10)
	bits[50] = year & 8
	bits[51] = year & 4
	bits[52] = year & 2
	bits[53] = year & 1

	if calendar.IsLeap(dt.Year) {
		bits[55] = 1
	}

	startOfDay, endOfDay := calendar.IsUSDST(dt)
	if endOfDay {
		bits[57] = 1
	}
	if startOfDay {
		bits[58] = 1
	}

	j := 0
	// Marker: low for 800ms, 0: 200ms, 1: 500ms, then high for the remainder.
	for i := range bits {
		dsecLo := 2
		switch {
		case bits[i] == syncMarker:
			dsecLo = 8
		case bits[i] != 0:
			dsecLo = 5
		}
		pattern.paintSecond(&j, deciSecToTicks(dsecLo), false)
	}

	return pattern
}
