// Package calendar converts a millisecond Unix timestamp into broken-down
// UTC date/time fields, and computes the EU and US daylight-saving
// transitions needed by the time-station encoders. It deliberately avoids
// time.Time and the system timezone database: the civil-date arithmetic
// below is exact on its own for any non-negative timestamp.
package calendar

const (
	// MsecsPerDay is the number of milliseconds in a day.
	MsecsPerDay = 86400000
	// MsecsPerHour is the number of milliseconds in an hour.
	MsecsPerHour = 3600000
	// MsecsPerMinute is the number of milliseconds in a minute.
	MsecsPerMinute = 60000

	// NotSoon is returned by IsEUDST unless the current UTC day is a DST
	// changeover day (before the changeover) or the day before one.
	NotSoon = ^uint32(0)
)

// Datetime is a broken-down UTC date and time derived from a millisecond
// Unix timestamp. It is a plain value type; nothing here mutates it.
type Datetime struct {
	Timestamp float64 // source Unix timestamp in milliseconds, preserved verbatim
	Year      uint16  // year, 0 and up
	Month     uint8   // 1-12
	Day       uint8   // day of month, 1-31
	DayOfYear uint16  // 1-366
	DayOfWeek uint8   // 0 (Sunday) - 6 (Saturday)
	Hour      uint8
	Min       uint8
	Sec       uint8
	Msec      uint16
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year uint16) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Parse converts a Unix timestamp in milliseconds into a Datetime.
//
// Uses the civil-from-days technique with the era set to 400-year cycles
// and the year epoch shifted to March 1, so that leap-day handling falls
// at the end of the shifted year. Exact for all timestamps corresponding
// to year >= 0.
//
// cf. https://howardhinnant.github.io/date_algorithms.html
func Parse(timestamp float64) Datetime {
	dt := Datetime{Timestamp: timestamp}

	msec := uint64(timestamp)

	day := msec / MsecsPerDay
	dse := day + 719468
	era := dse / 146097
	doe := dse - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	m := (5*doy + 2) / 153

	year := uint16(y)
	if m >= 10 {
		year++
	}
	dt.Year = year

	if m < 10 {
		dt.Month = uint8(m + 3)
	} else {
		dt.Month = uint8(m - 9)
	}

	dt.Day = uint8(doy - (153*m+2)/5 + 1)

	if m < 10 {
		extra := uint64(0)
		if IsLeap(dt.Year) {
			extra = 1
		}
		dt.DayOfYear = uint16(doy + 60 + extra)
	} else {
		dt.DayOfYear = uint16(doy - 305)
	}

	dt.DayOfWeek = uint8((day + 4) % 7)

	rem := msec % MsecsPerDay
	dt.Hour = uint8(rem / MsecsPerHour)
	rem %= MsecsPerHour
	dt.Min = uint8(rem / MsecsPerMinute)
	rem %= MsecsPerMinute
	dt.Sec = uint8(rem / 1000)
	dt.Msec = uint16(rem % 1000)

	return dt
}
