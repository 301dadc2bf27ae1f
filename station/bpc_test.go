package station

import (
	"testing"
	"time"

	"github.com/equivtech/timesig/calendar"
	"github.com/stretchr/testify/require"
)

func localDatetime(t time.Time) calendar.Datetime {
	return calendar.Parse(float64(t.UnixMilli()))
}

func decodeBPCSymbol(t *testing.T, p *XmitPattern, sec int) uint8 {
	t.Helper()
	low := lowRunTicks(p, sec)
	if low == 0 {
		return syncMarker
	}
	return uint8(low/2 - 1)
}

func TestEncodeBPC(t *testing.T) {
	dt := localDatetime(time.Date(2024, 6, 15, 15, 30, 0, 0, time.UTC))
	pattern := EncodeBPC(dt, UserParams{})

	wantHour := dt.Hour % 12
	wantMin := dt.Min
	wantDow := dt.DayOfWeek
	if wantDow == 0 {
		wantDow = 7
	}
	wantDay := dt.Day
	wantMon := dt.Month
	wantYear := uint8(dt.Year % 100)
	wantPM := dt.Hour >= 12

	for p := 0; p < 3; p++ {
		base := p * 20
		require.Equal(t, uint8(syncMarker), decodeBPCSymbol(t, &pattern, base+0), "repeat %d symbol 0 (marker)", p)

		if p == 0 {
			require.Equal(t, uint8(0), decodeBPCSymbol(t, &pattern, base+1), "repeat 0 symbol 1 suppressed")
		} else {
			require.Equal(t, uint8(1<<uint(p)), decodeBPCSymbol(t, &pattern, base+1), "repeat %d symbol 1", p)
		}

		gotHour := bcd(decodeBPCSymbol(t, &pattern, base+3)>>1&1, decodeBPCSymbol(t, &pattern, base+3)&1,
			decodeBPCSymbol(t, &pattern, base+4)>>1&1, decodeBPCSymbol(t, &pattern, base+4)&1)
		require.Equal(t, wantHour, gotHour, "repeat %d hour", p)

		gotMin := bcd(decodeBPCSymbol(t, &pattern, base+5)>>1&1, decodeBPCSymbol(t, &pattern, base+5)&1,
			decodeBPCSymbol(t, &pattern, base+6)>>1&1, decodeBPCSymbol(t, &pattern, base+6)&1,
			decodeBPCSymbol(t, &pattern, base+7)>>1&1, decodeBPCSymbol(t, &pattern, base+7)&1)
		require.Equal(t, wantMin, gotMin, "repeat %d minute", p)

		gotDow := bcd(decodeBPCSymbol(t, &pattern, base+8)&1,
			decodeBPCSymbol(t, &pattern, base+9)>>1&1, decodeBPCSymbol(t, &pattern, base+9)&1)
		require.Equal(t, wantDow, gotDow, "repeat %d day of week", p)

		gotPM := decodeBPCSymbol(t, &pattern, base+10)>>1&1 != 0
		require.Equal(t, wantPM, gotPM, "repeat %d AM/PM", p)

		gotDay := bcd(decodeBPCSymbol(t, &pattern, base+11)&1,
			decodeBPCSymbol(t, &pattern, base+12)>>1&1, decodeBPCSymbol(t, &pattern, base+12)&1,
			decodeBPCSymbol(t, &pattern, base+13)>>1&1, decodeBPCSymbol(t, &pattern, base+13)&1)
		require.Equal(t, wantDay, gotDay, "repeat %d day", p)

		gotMon := bcd(decodeBPCSymbol(t, &pattern, base+14)>>1&1, decodeBPCSymbol(t, &pattern, base+14)&1,
			decodeBPCSymbol(t, &pattern, base+15)>>1&1, decodeBPCSymbol(t, &pattern, base+15)&1)
		require.Equal(t, wantMon, gotMon, "repeat %d month", p)

		gotYear := bcd(decodeBPCSymbol(t, &pattern, base+16)>>1&1, decodeBPCSymbol(t, &pattern, base+16)&1,
			decodeBPCSymbol(t, &pattern, base+17)>>1&1, decodeBPCSymbol(t, &pattern, base+17)&1,
			decodeBPCSymbol(t, &pattern, base+18)>>1&1, decodeBPCSymbol(t, &pattern, base+18)&1)
		require.Equal(t, wantYear, gotYear, "repeat %d year", p)
	}
}
