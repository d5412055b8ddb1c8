package scheduling

import (
	"fmt"
	"time"

	"github.com/aviseihq/avisei-api/internal/timezone"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ToMinutes converts an "HH:MM" string to minutes since midnight.
func ToMinutes(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	return h*60 + m, nil
}

func FromMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// AddMinutes advances an "HH:MM" time with hour rollover only. There is
// deliberately no day rollover: a service crossing midnight is not
// supported and the resulting hour may exceed 23, which still compares
// correctly against any same-day time.
func AddMinutes(clock string, minutes int) (string, error) {
	total, err := ToMinutes(clock)
	if err != nil {
		return "", err
	}
	return FromMinutes(total + minutes), nil
}

// ValidClock reports whether a string is a well-formed "HH:MM" value
// within a single day.
func ValidClock(clock string) bool {
	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		return false
	}
	return t.Format(timeLayout) == clock
}

// WeekdayOf resolves the 0=Sunday..6=Saturday weekday of a "YYYY-MM-DD"
// date string.
func WeekdayOf(date string) (int, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return int(t.Weekday()), nil
}

// StartInstant combines the date and time strings into an instant in the
// given zone, for past-date and lead-time checks.
func StartInstant(date, clock, tz string) (time.Time, error) {
	return time.ParseInLocation(
		dateLayout+" "+timeLayout,
		date+" "+clock,
		timezone.Location(tz),
	)
}
