package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/models"
)

func TestListAvailableSlots_FiltersBookedStarts(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("ListAvailability", mock.Anything, uint(2), 6).
		Return([]models.ProfessionalAvailability{{
			ProfessionalID: 2,
			Weekday:        6,
			StartTime:      "09:00",
			EndTime:        "11:00",
			IsAvailable:    true,
		}}, nil)
	repo.On("ListActiveAppointments", mock.Anything, uint(2), "2026-03-07").
		Return([]models.Appointment{
			{ID: 1, Time: "09:30", DurationMin: 30, Status: "confirmed"},
		}, nil)

	uc := NewListAvailableSlots(repo)

	slots, err := uc.Execute(context.Background(), 2, 4, "2026-03-07")

	assert.NoError(t, err)

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, times)
	assert.Equal(t, 30, slots[0].DurationMin)
	assert.Equal(t, "Corte", slots[0].ServiceName)
}

func TestListAvailableSlots_EmptyDay(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(haircut(), nil)
	repo.On("ListAvailability", mock.Anything, uint(2), 6).
		Return([]models.ProfessionalAvailability{}, nil)
	repo.On("ListActiveAppointments", mock.Anything, uint(2), "2026-03-07").
		Return([]models.Appointment{}, nil)

	uc := NewListAvailableSlots(repo)

	slots, err := uc.Execute(context.Background(), 2, 4, "2026-03-07")

	assert.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestListAvailableSlots_MissingParams(t *testing.T) {
	uc := NewListAvailableSlots(new(MockRepository))

	_, err := uc.Execute(context.Background(), 0, 4, "2026-03-07")
	assert.True(t, httperr.IsBusiness(err, "missing_required_fields"))

	_, err = uc.Execute(context.Background(), 2, 4, "")
	assert.True(t, httperr.IsBusiness(err, "missing_required_fields"))
}

func TestListAvailableSlots_UnknownService(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetService", mock.Anything, uint(4)).Return(nil, assert.AnError)

	uc := NewListAvailableSlots(repo)

	_, err := uc.Execute(context.Background(), 2, 4, "2026-03-07")
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
