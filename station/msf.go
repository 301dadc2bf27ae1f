package station

import "github.com/equivtech/timesig/calendar"

// EncodeMSF generates MSF's 1200-tick pattern for the upcoming UTC/BST
// minute. DUT1 is unary-encoded across seconds 1..16 (positive magnitude
// in 1..8, negative magnitude in 9..16); a secondary minute-marker
// overlay is painted across seconds 53..58.
func EncodeMSF(dt calendar.Datetime, params UserParams) XmitPattern {
	var pattern XmitPattern
	var bits [60]uint8
	bits[0] = syncMarker

	dut1 := int8(params.DUT1Ms / 100)
	lt0 := uint8(0)
	if dut1 < 0 {
		lt0 = 8
		dut1 = -dut1
	}
	set := func(idx int, cond bool) {
		if cond {
			bits[idx] = 1
		}
	}
	set(1+int(lt0), dut1 >= 1)
	set(2+int(lt0), dut1 >= 2)
	set(3+int(lt0), dut1 >= 3)
	set(4+int(lt0), dut1 >= 4)
	set(5+int(lt0), dut1 >= 5)
	set(6+int(lt0), dut1 >= 6)
	set(7+int(lt0), dut1 >= 7)
	set(8+int(lt0), dut1 >= 8)

	isBST, inMins := calendar.IsEUDST(dt)

	// Transmitted time is the UTC/BST time at the next UTC minute.
	isXmitBST := (isBST && inMins > 1) || (!isBST && inMins == 1)
	bstOffset := float64(0)
	if isXmitBST {
		bstOffset = calendar.MsecsPerHour
	}
	xmitTimestamp := dt.Timestamp + bstOffset + calendar.MsecsPerMinute
	xmit := calendar.Parse(xmitTimestamp)

	year10 := uint8((xmit.Year % 100) / 10)
	bits[17] = year10 & 8
	bits[18] = year10 & 4
	bits[19] = year10 & 2
	bits[20] = year10 & 1

	year := uint8(xmit.Year % 10)
	bits[21] = year & 8
	bits[22] = year & 4
	bits[23] = year & 2
	bits[24] = year & 1

	mon10 := xmit.Month / 10
	bits[25] = mon10 & 1

	mon := xmit.Month % 10
	bits[26] = mon & 8
	bits[27] = mon & 4
	bits[28] = mon & 2
	bits[29] = mon & 1

	day10 := xmit.Day / 10
	bits[30] = day10 & 2
	bits[31] = day10 & 1

	day := xmit.Day % 10
	bits[32] = day & 8
	bits[33] = day & 4
	bits[34] = day & 2
	bits[35] = day & 1

	dow := xmit.DayOfWeek
	bits[36] = dow & 4
	bits[37] = dow & 2
	bits[38] = dow & 1

	hour10 := xmit.Hour / 10
	bits[39] = hour10 & 2
	bits[40] = hour10 & 1

	hour := xmit.Hour % 10
	bits[41] = hour & 8
	bits[42] = hour & 4
	bits[43] = hour & 2
	bits[44] = hour & 1

	min10 := xmit.Min / 10
	bits[45] = min10 & 4
	bits[46] = min10 & 2
	bits[47] = min10 & 1

	min := xmit.Min % 10
	bits[48] = min & 8
	bits[49] = min & 4
	bits[50] = min & 2
	bits[51] = min & 1

	if inMins <= 61 {
		bits[53] = 1
	}
	bits[54] = oddParity(bits[:], 17, 25)
	bits[55] = oddParity(bits[:], 25, 36)
	bits[56] = oddParity(bits[:], 36, 39)
	bits[57] = oddParity(bits[:], 39, 52)
	if isXmitBST {
		bits[58] = 1
	}

	j := 0
	// Marker: low for 500ms, 00: 100ms, 01: 200ms, 11: 300ms (11 only occurs
	// during the secondary minute marker overlay in seconds 53..58).
	for i := range bits {
		dsecLo := 0
		switch {
		case bits[i] == syncMarker:
			dsecLo = 5
		case bits[i] != 0:
			dsecLo = 2
		default:
			dsecLo = 1
		}
		if i >= 53 && i <= 58 {
			dsecLo++
		}
		pattern.paintSecond(&j, deciSecToTicks(dsecLo), false)
	}

	return pattern
}
