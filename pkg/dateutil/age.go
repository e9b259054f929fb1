package dateutil

import "time"

// Age returns the whole years elapsed from birth to reference. The birthday
// counts as reached on the same month and day. A reference before birth
// yields a negative age; callers that need a floor must apply it.
func Age(birth, reference CivilDate) int {
	age := reference.Year - birth.Year
	if reference.Month < birth.Month {
		age--
	} else if reference.Month == birth.Month && reference.Day < birth.Day {
		age--
	}
	return age
}

// AgeToday returns the age of birth as of today's local date
func AgeToday(birth CivilDate) int {
	return Age(birth, Today(time.Local))
}
