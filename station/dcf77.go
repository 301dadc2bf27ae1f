package station

import "github.com/equivtech/timesig/calendar"

// EncodeDCF77 generates DCF77's 1200-tick pattern. DCF77 encodes the
// CET/CEST minute that is *about to begin*, not the current minute, and
// omits a pulse entirely on second 59 (the minute marker).
func EncodeDCF77(dt calendar.Datetime, _ UserParams) XmitPattern {
	var pattern XmitPattern
	var bits [60]uint8
	bits[20] = 1
	bits[59] = syncMarker

	// IsEUDST expects a UTC datetime; dt is CET (UTC+0100).
	const utcOffsetMs = calendar.MsecsPerHour
	utcDatetime := calendar.Parse(dt.Timestamp - utcOffsetMs)

	isCEST, inMins := calendar.IsEUDST(utcDatetime)
	if inMins <= 60 {
		bits[16] = 1
	}
	if isCEST {
		bits[17] = 1
	} else {
		bits[18] = 1
	}

	// Transmitted time is the CET/CEST time at the next UTC minute.
	isXmitCEST := (isCEST && inMins > 1) || (!isCEST && inMins == 1)
	cestOffset := float64(0)
	if isXmitCEST {
		cestOffset = calendar.MsecsPerHour
	}
	xmitTimestamp := dt.Timestamp + cestOffset + calendar.MsecsPerMinute
	xmit := calendar.Parse(xmitTimestamp)

	bits[20] = 1

	min := xmit.Min % 10
	bits[21] = min & 1
	bits[22] = min & 2
	bits[23] = min & 4
	bits[24] = min & 8

	min10 := xmit.Min / 10
	bits[25] = min10 & 1
	bits[26] = min10 & 2
	bits[27] = min10 & 4

	bits[28] = evenParity(bits[:], 21, 28)

	hour := xmit.Hour % 10
	bits[29] = hour & 1
	bits[30] = hour & 2
	bits[31] = hour & 4
	bits[32] = hour & 8

	hour10 := xmit.Hour / 10
	bits[33] = hour10 & 1
	bits[34] = hour10 & 2

	bits[35] = evenParity(bits[:], 29, 35)

	day := xmit.Day % 10
	bits[36] = day & 1
	bits[37] = day & 2
	bits[38] = day & 4
	bits[39] = day & 8

	day10 := xmit.Day / 10
	bits[40] = day10 & 1
	bits[41] = day10 & 2

	dow := xmit.DayOfWeek
	if dow == 0 {
		dow = 7
	}
	bits[42] = dow & 1
	bits[43] = dow & 2
	bits[44] = dow & 4

	mon := xmit.Month % 10
	bits[45] = mon & 1
	bits[46] = mon & 2
	bits[47] = mon & 4
	bits[48] = mon & 8

	mon10 := xmit.Month / 10
	bits[49] = mon10 & 1

	year := uint8(xmit.Year % 10)
	bits[50] = year & 1
	bits[51] = year & 2
	bits[52] = year & 4
	bits[53] = year & 8

	year10 := uint8((xmit.Year % 100) / 10)
	bits[54] = year10 & 1
	bits[55] = year10 & 2
	bits[56] = year10 & 4
	bits[57] = year10 & 8

	bits[58] = evenParity(bits[:], 36, 58)

	j := 0
	// Marker: low for 0ms, 0: 100ms, 1: 200ms.
	for i := range bits {
		loDsec := 0
		if bits[i] != syncMarker {
			v := uint8(0)
			if bits[i] != 0 {
				v = 1
			}
			loDsec = int(v) + 1
		}
		pattern.paintSecond(&j, deciSecToTicks(loDsec), false)
	}

	return pattern
}
