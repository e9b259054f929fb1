package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a year/month/day triple does not name a
// real day of the proleptic Gregorian calendar.
var ErrInvalidDate = errors.New("invalid civil date")

const (
	// days from 0000-03-01 style zero day to 1970-01-01
	daysZeroTo1970 = 719528
	// days in a 400 year cycle
	daysPerCycle = 146097
)

// EpochDay is a signed count of days relative to 1970-01-01 (day 0).
type EpochDay int64

// CivilDate is a year/month/day triple in the proleptic Gregorian calendar.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCivilDate returns a validated CivilDate
func NewCivilDate(year int, month time.Month, day int) (CivilDate, error) {
	c := CivilDate{Year: year, Month: month, Day: day}
	if !c.Valid() {
		return CivilDate{}, fmt.Errorf("%w: %d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	return c, nil
}

// CivilDateOf returns the calendar date of t in t's location
func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// ParseCivilDate parses a strict [-]YYYY-MM-DD date.
// Negative and zero years are accepted.
func ParseCivilDate(s string) (CivilDate, error) {
	s = strings.TrimSpace(s)
	sign := 1
	rest := s
	if strings.HasPrefix(rest, "-") {
		sign = -1
		rest = rest[1:]
	}

	parts := strings.Split(rest, "-")
	if len(parts) != 3 || len(parts[1]) != 2 || len(parts[2]) != 2 || len(parts[0]) < 4 {
		return CivilDate{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || strings.HasPrefix(p, "+") {
			return CivilDate{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	return NewCivilDate(sign*nums[0], time.Month(nums[1]), nums[2])
}

// Valid reports whether c names a real calendar day
func (c CivilDate) Valid() bool {
	if c.Month < time.January || c.Month > time.December {
		return false
	}
	return c.Day >= 1 && c.Day <= DaysInMonth(c.Year, c.Month)
}

// String formats c as YYYY-MM-DD, with a leading minus for negative years
func (c CivilDate) String() string {
	if c.Year < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -c.Year, int(c.Month), c.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", c.Year, int(c.Month), c.Day)
}

// In returns midnight of c in loc
func (c CivilDate) In(loc *time.Location) time.Time {
	return time.Date(c.Year, c.Month, c.Day, 0, 0, 0, 0, loc)
}

// EpochDay returns c as a day count relative to 1970-01-01
func (c CivilDate) EpochDay() EpochDay {
	return ToEpochDay(c)
}

// AddDays returns the date n days after c (n may be negative)
func (c CivilDate) AddDays(n int) CivilDate {
	return FromEpochDay(ToEpochDay(c) + EpochDay(n))
}

// Weekday returns the day of the week of c. 1970-01-01 was a Thursday.
func (c CivilDate) Weekday() time.Weekday {
	return time.Weekday(floorMod(int64(ToEpochDay(c))+int64(time.Thursday), DaysInWeek))
}

// Before reports whether c is an earlier day than other
func (c CivilDate) Before(other CivilDate) bool {
	return ToEpochDay(c) < ToEpochDay(other)
}

// IsLeapYear reports whether year is a leap year in the proleptic
// Gregorian calendar
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in month of year.
// It returns 0 for a month outside January..December.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return MaxDaysInMonth
	}
	return 0
}

// ToEpochDay converts a civil date to days since 1970-01-01.
// Leap days before y are counted with floor division so negative years
// need no special branch.
func ToEpochDay(c CivilDate) EpochDay {
	y := int64(c.Year)
	m := int64(c.Month)

	total := 365 * y
	total += floorDiv(y+3, 4) - floorDiv(y+99, 100) + floorDiv(y+399, 400)
	total += (367*m - 362) / 12
	total += int64(c.Day - 1)
	if m > 2 {
		total--
		if !IsLeapYear(c.Year) {
			total--
		}
	}

	return EpochDay(total - daysZeroTo1970)
}

// FromEpochDay converts days since 1970-01-01 back to a civil date.
// The year is computed on a March-based calendar so February (and its leap
// day) is the last month of the computational year.
func FromEpochDay(epochDay EpochDay) CivilDate {
	zeroDay := int64(epochDay) + daysZeroTo1970
	// shift so the computational year starts on March 1st
	zeroDay -= 60

	var adjust int64
	if zeroDay < 0 {
		// move into the non-negative range by whole 400 year cycles
		cycles := floorDiv(zeroDay+1, daysPerCycle) - 1
		adjust = cycles * 400
		zeroDay += -cycles * daysPerCycle
	}

	yearEst := (400*zeroDay + 591) / daysPerCycle
	doyEst := zeroDay - daysBeforeMarchYear(yearEst)
	if doyEst < 0 {
		yearEst--
		doyEst = zeroDay - daysBeforeMarchYear(yearEst)
	}
	yearEst += adjust

	marchMonth0 := (doyEst*5 + 2) / 153
	month := (marchMonth0+2)%12 + 1
	day := doyEst - (marchMonth0*306+5)/10 + 1
	yearEst += marchMonth0 / 10

	return CivilDate{Year: int(yearEst), Month: time.Month(month), Day: int(day)}
}

// EpochDayOf returns the epoch day of t's calendar date in t's location
func EpochDayOf(t time.Time) EpochDay {
	return ToEpochDay(CivilDateOf(t))
}

// daysBeforeMarchYear counts the days before March 1st of the computational
// year y. y is never negative here.
func daysBeforeMarchYear(y int64) int64 {
	return 365*y + y/4 - y/100 + y/400
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the remainder matching floorDiv; it has the sign of b
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
