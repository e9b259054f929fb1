package dateutil

import (
	"math"
	"time"
)

// MinutesInDay is a time of day expressed as minutes since midnight, 0..1439.
type MinutesInDay int

// Hour returns the hour component
func (m MinutesInDay) Hour() int {
	return int(m.normalize()) / MinutesInHour
}

// Minute returns the minute component
func (m MinutesInDay) Minute() int {
	return int(m.normalize()) % MinutesInHour
}

// Valid reports whether m is within 0..1439
func (m MinutesInDay) Valid() bool {
	return m >= 0 && m < MinutesPerDay
}

func (m MinutesInDay) normalize() MinutesInDay {
	return MinutesInDay(floorMod(int64(m), MinutesPerDay))
}

// ToMinutesInDay returns hour*60+minute of t; seconds are dropped
func ToMinutesInDay(t time.Time) MinutesInDay {
	return MinutesInDay(t.Hour()*MinutesInHour + t.Minute())
}

// FromMinutesInDay returns base's calendar day at the given time of day,
// with seconds cleared. Values outside 0..1439 wrap around the day instead
// of rolling into a neighbouring date.
func FromMinutesInDay(minutes MinutesInDay, base time.Time) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(),
		minutes.Hour(), minutes.Minute(), 0, 0, base.Location())
}

// ToMillis returns t as milliseconds since the Unix epoch.
// Sub-millisecond precision is kept as a fraction.
func ToMillis(t time.Time) float64 {
	return float64(t.Unix())*1000 + float64(t.Nanosecond())/1e6
}

// FromMillis converts milliseconds since the Unix epoch to a local time.
// A float64 only carries about microsecond resolution for present-day
// timestamps; finer digits are lost. Whole milliseconds round-trip exactly.
func FromMillis(millis float64) time.Time {
	sec := math.Floor(millis / 1000)
	nsec := math.Round((millis - sec*1000) * 1e6)
	return time.Unix(int64(sec), int64(nsec))
}
