package scheduling

import "github.com/aviseihq/avisei-api/internal/models"

// Overlaps is the half-open interval test: [aStart,aEnd) and
// [bStart,bEnd) intersect unless one ends before the other begins.
// An appointment starting exactly when another ends is NOT a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// HasConflict checks a candidate [start, start+duration) against the
// professional's existing appointments on the same date. Callers pass
// only rows in active statuses (scheduled/confirmed); excludeID skips
// the appointment being rescheduled.
func HasConflict(existing []models.Appointment, start string, durationMin int, excludeID uint) bool {
	s, err := ToMinutes(start)
	if err != nil {
		return false
	}
	e := s + durationMin

	for _, ap := range existing {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		es, err := ToMinutes(ap.Time)
		if err != nil {
			continue
		}
		if Overlaps(s, e, es, es+ap.DurationMin) {
			return true
		}
	}

	return false
}
