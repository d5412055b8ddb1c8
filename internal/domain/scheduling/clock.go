package scheduling

import (
	"time"

	"github.com/aviseihq/avisei-api/internal/timezone"
)

// Clock supplies "now" to every lifecycle rule so tests can pin time
// instead of racing the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

func SystemClock(tz string) Clock {
	return systemClock{loc: timezone.Location(tz)}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
