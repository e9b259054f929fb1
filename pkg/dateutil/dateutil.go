// Package dateutil holds the pure calendar and clock arithmetic: civil dates
// and epoch days, minutes in day, millisecond timestamps and ages.
package dateutil

import "time"

// Calendar units
const (
	SecondsInDay   = 86400
	SecondsInHour  = 3600
	SecondsInMin   = 60
	MinutesInHour  = 60
	MinutesPerDay  = 1440
	HoursInDay     = 24
	DaysInWeek     = 7
	MonthsInYear   = 12
	MaxDaysInMonth = 31
)

// StartOfDay returns the first instant of date's calendar day in its own
// location. On a day whose midnight is skipped by DST this is the first wall
// clock time that exists.
func StartOfDay(date time.Time) time.Time {
	return CivilDateOf(date).In(date.Location())
}

// EndOfDay returns the last nanosecond before the next day starts, so a
// 23h or 25h DST day still ends just before the following midnight
func EndOfDay(date time.Time) time.Time {
	return CivilDateOf(date).AddDays(1).In(date.Location()).Add(-time.Nanosecond)
}

// IsSameDay returns true if two dates fall on the same calendar day.
// Each date is read in its own location.
func IsSameDay(date1, date2 time.Time) bool {
	return EpochDayOf(date1) == EpochDayOf(date2)
}

// DaysBetween returns the number of calendar days from date1 to date2.
// It counts midnights rather than 24h spans, so DST shifts do not matter.
func DaysBetween(date1, date2 time.Time) int {
	return int(EpochDayOf(date2) - EpochDayOf(date1))
}

// Today returns the current civil date in loc
func Today(loc *time.Location) CivilDate {
	return CivilDateOf(time.Now().In(loc))
}

// Yesterday returns the civil date before Today(loc)
func Yesterday(loc *time.Location) CivilDate {
	return Today(loc).AddDays(-1)
}

// Tomorrow returns the civil date after Today(loc)
func Tomorrow(loc *time.Location) CivilDate {
	return Today(loc).AddDays(1)
}
