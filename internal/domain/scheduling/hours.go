package scheduling

import "github.com/aviseihq/avisei-api/internal/models"

// OpenAt reports whether an establishment admits the given "HH:MM" time
// on the configured row. No row means closed; IsClosed overrides the
// windows. Bounds are inclusive on both ends of each window, matching
// how establishments publish their hours ("09:00 às 12:00" admits a
// 12:00 check).
func OpenAt(bh *models.BusinessHour, clock string) bool {
	if bh == nil || bh.IsClosed {
		return false
	}

	t, err := ToMinutes(clock)
	if err != nil {
		return false
	}

	if bh.MorningStart != "" && bh.MorningEnd != "" {
		start, err1 := ToMinutes(bh.MorningStart)
		end, err2 := ToMinutes(bh.MorningEnd)
		if err1 == nil && err2 == nil && t >= start && t <= end {
			return true
		}
	}

	if bh.AfternoonStart != "" && bh.AfternoonEnd != "" {
		start, err1 := ToMinutes(bh.AfternoonStart)
		end, err2 := ToMinutes(bh.AfternoonEnd)
		if err1 == nil && err2 == nil && t >= start && t <= end {
			return true
		}
	}

	return false
}
