package appointment

import (
	"context"

	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/httperr"
)

type ListAvailableSlots struct {
	repo scheduling.Repository
}

func NewListAvailableSlots(repo scheduling.Repository) *ListAvailableSlots {
	return &ListAvailableSlots{repo: repo}
}

// Execute generates the candidate grid from the professional's windows
// and filters out every start that would collide with an active
// appointment. Pure function of its inputs: same day, same bookings,
// same slots.
func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
	date string,
) ([]scheduling.Slot, error) {

	if professionalID == 0 || serviceID == 0 || date == "" {
		return nil, httperr.Validation("missing_required_fields")
	}

	weekday, err := scheduling.WeekdayOf(date)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time")
	}

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, httperr.NotFound("service_not_found")
	}

	rows, err := uc.repo.ListAvailability(ctx, professionalID, weekday)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.ListActiveAppointments(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}

	starts := scheduling.SlotStarts(rows, service.DurationMin)

	slots := []scheduling.Slot{}
	for _, start := range starts {
		if scheduling.HasConflict(existing, start, service.DurationMin, 0) {
			continue
		}
		slots = append(slots, scheduling.Slot{
			Time:        start,
			DurationMin: service.DurationMin,
			ServiceName: service.Name,
		})
	}

	return slots, nil
}
