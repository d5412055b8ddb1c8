package scheduling

import "github.com/aviseihq/avisei-api/internal/models"

// slotStepMinutes is the grid candidate start times are generated on.
const slotStepMinutes = 30

// Slot is a bookable start time offered to clients.
type Slot struct {
	Time        string `json:"time"`
	DurationMin int    `json:"duration"`
	ServiceName string `json:"service_name"`
}

// Covers reports whether a single available window fully contains
// [start, end]. Coverage split across adjacent rows does not count: a
// professional working 08:00-12:00 and 12:00-16:00 cannot take a booking
// spanning 11:30-12:30.
func Covers(rows []models.ProfessionalAvailability, start, end string) bool {
	s, err := ToMinutes(start)
	if err != nil {
		return false
	}
	e, err := ToMinutes(end)
	if err != nil {
		return false
	}

	for _, row := range rows {
		if !row.IsAvailable {
			continue
		}
		rs, err1 := ToMinutes(row.StartTime)
		re, err2 := ToMinutes(row.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if rs <= s && re >= e {
			return true
		}
	}

	return false
}

// SlotStarts generates candidate start times for every available window:
// stepping on the 30-minute grid from the window start while
// start+duration still fits. Start times repeated by overlapping windows
// are emitted as-is.
func SlotStarts(rows []models.ProfessionalAvailability, durationMin int) []string {
	slots := []string{}

	for _, row := range rows {
		if !row.IsAvailable {
			continue
		}
		cur, err1 := ToMinutes(row.StartTime)
		end, err2 := ToMinutes(row.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}

		for cur+durationMin <= end {
			slots = append(slots, FromMinutes(cur))
			cur += slotStepMinutes
		}
	}

	return slots
}
