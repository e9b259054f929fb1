package dateformat

import "fmt"

// Style selects one of the cached formatters
type Style int

const (
	// DateOnly is the long date, no time
	DateOnly Style = iota
	// DateAndTime is the long date followed by the short time
	DateAndTime
	// TimeOnly is the short time
	TimeOnly
	// WeekdayName is the full weekday name
	WeekdayName

	numStyles = int(WeekdayName) + 1
)

var styleNames = [numStyles]string{"date", "datetime", "time", "weekday"}

// Styles lists every style in declaration order
func Styles() []Style {
	return []Style{DateOnly, DateAndTime, TimeOnly, WeekdayName}
}

func (s Style) valid() bool {
	return s >= 0 && int(s) < numStyles
}

func (s Style) String() string {
	if !s.valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// ParseStyle maps a style name ("date", "datetime", "time", "weekday") to
// its Style
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("unknown format style %q", name)
}
