package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func unixMilli(y int, m time.Month, d, hh, mm, ss int) float64 {
	t := time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
	return float64(t.UnixMilli())
}

func TestIsLeap(t *testing.T) {
	require.True(t, IsLeap(2000))
	require.False(t, IsLeap(1900))
	require.True(t, IsLeap(2024))
	require.False(t, IsLeap(2023))
}

func TestParseRoundTrip(t *testing.T) {
	cases := []struct {
		y    int
		mon  time.Month
		d    int
		h, m, s int
	}{
		{1970, time.January, 1, 0, 0, 0},
		{2000, time.February, 29, 23, 59, 59},
		{2024, time.March, 31, 1, 0, 0},
		{2024, time.December, 31, 23, 59, 59},
		{2100, time.January, 1, 0, 0, 0},
	}

	for _, c := range cases {
		want := time.Date(c.y, c.mon, c.d, c.h, c.m, c.s, 0, time.UTC)
		dt := Parse(float64(want.UnixMilli()))

		require.Equal(t, uint16(want.Year()), dt.Year)
		require.Equal(t, uint8(want.Month()), dt.Month)
		require.Equal(t, uint8(want.Day()), dt.Day)
		require.Equal(t, uint8(want.Hour()), dt.Hour)
		require.Equal(t, uint8(want.Minute()), dt.Min)
		require.Equal(t, uint8(want.Second()), dt.Sec)
		require.Equal(t, uint16(want.YearDay()), dt.DayOfYear)
		require.Equal(t, uint8(want.Weekday()), dt.DayOfWeek)
	}
}

func TestIsEUDST(t *testing.T) {
	dt := Parse(unixMilli(2024, time.March, 31, 1, 0, 0))
	in, mins := IsEUDST(dt)
	require.True(t, in)
	require.Equal(t, uint32(0), mins)

	dt = Parse(unixMilli(2024, time.March, 31, 0, 30, 0))
	in, mins = IsEUDST(dt)
	require.False(t, in)
	require.Equal(t, uint32(30), mins)

	dt = Parse(unixMilli(2024, time.June, 15, 12, 0, 0))
	in, mins = IsEUDST(dt)
	require.True(t, in)
	require.Equal(t, NotSoon, mins)

	dt = Parse(unixMilli(2024, time.January, 15, 12, 0, 0))
	in, mins = IsEUDST(dt)
	require.False(t, in)
	require.Equal(t, NotSoon, mins)
}

func TestIsUSDST(t *testing.T) {
	// 2024-03-10 is the second Sunday of March.
	dt := Parse(unixMilli(2024, time.March, 10, 0, 0, 0))
	start, end := IsUSDST(dt)
	require.False(t, start)
	require.True(t, end)

	dt = Parse(unixMilli(2024, time.July, 1, 0, 0, 0))
	start, end = IsUSDST(dt)
	require.True(t, start)
	require.True(t, end)

	dt = Parse(unixMilli(2024, time.January, 1, 0, 0, 0))
	start, end = IsUSDST(dt)
	require.False(t, start)
	require.False(t, end)
}
