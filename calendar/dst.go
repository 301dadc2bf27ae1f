package calendar

// IsEUDST reports whether Central European Summer Time / British Summer
// Time is in effect in the EU/UK at the given UTC datetime, i.e. whether
// summer time is running: 01:00 UTC on the last Sunday of March through
// 01:00 UTC on the last Sunday of October.
//
// inMins is the count of minutes remaining until the next changeover, but
// only when the current UTC day is the changeover day (before 01:00 UTC)
// or the day before it; otherwise inMins is NotSoon. Despite the name, this is an exact
// "is the changeover today or tomorrow" check, not a 25-hour window: the
// behavior is inherited unchanged from the reference implementation (see
// DESIGN.md's Open Question entry).
func IsEUDST(dt Datetime) (inEffect bool, inMins uint32) {
	inMins = NotSoon
	mon := dt.Month

	switch {
	case mon > 3 && mon < 10:
		inEffect = true
	case mon == 3 || mon == 10:
		hour, min, day, dow := dt.Hour, dt.Min, dt.Day, dt.DayOfWeek

		rem := uint8(0)
		if dow != 0 {
			rem = 7 - dow
		}
		fsom := ((day-1+rem)%7 + 1)
		lsom := fsom + ((31-fsom)/7)*7
		isChanged := (day == lsom && hour >= 1) || day > lsom

		inEffect = (mon == 3) == isChanged

		switch {
		case day == lsom-1:
			inMins = uint32(60*(24-int(hour)) + 60 - int(min))
		case day == lsom && hour < 1:
			inMins = uint32(60 - int(min))
		}
	}

	return inEffect, inMins
}

// IsUSDST reports whether Daylight Saving Time is in effect in the United
// States at 00:00 UTC on the given UTC day: second Sunday of March at
// 02:00 local through first Sunday of November at 02:00 local.
//
// endOfDay reports whether DST will be in effect at the end of the same
// UTC day, distinguishing days on which the UTC day straddles a
// transition.
func IsUSDST(dt Datetime) (startOfDay, endOfDay bool) {
	mon := dt.Month

	switch {
	case mon > 3 && mon < 11:
		startOfDay, endOfDay = true, true
	case mon == 3 || mon == 11:
		sunday := uint8(1)
		if mon == 3 {
			sunday = 8
		}

		day, dow := dt.Day, dt.DayOfWeek

		rem := uint8(0)
		if dow != 0 {
			rem = 7 - dow
		}
		changeDay := (day-1+rem)%7 + sunday

		if mon == 3 {
			endOfDay = day >= changeDay
			startOfDay = day > changeDay
		} else {
			endOfDay = day < changeDay
			startOfDay = day <= changeDay
		}
	}

	return startOfDay, endOfDay
}
