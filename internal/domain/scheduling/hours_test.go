package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aviseihq/avisei-api/internal/models"
)

func saturdayHours() *models.BusinessHour {
	return &models.BusinessHour{
		EstablishmentID: 1,
		Weekday:         6,
		MorningStart:    "09:00",
		MorningEnd:      "12:00",
		AfternoonStart:  "14:00",
		AfternoonEnd:    "18:00",
	}
}

func TestOpenAt_InsideWindows(t *testing.T) {
	bh := saturdayHours()

	assert.True(t, OpenAt(bh, "10:30"))
	assert.True(t, OpenAt(bh, "15:00"))
}

func TestOpenAt_InclusiveBounds(t *testing.T) {
	bh := saturdayHours()

	assert.True(t, OpenAt(bh, "09:00"))
	assert.True(t, OpenAt(bh, "12:00"))
	assert.True(t, OpenAt(bh, "14:00"))
	assert.True(t, OpenAt(bh, "18:00"))
}

func TestOpenAt_BetweenWindows(t *testing.T) {
	bh := saturdayHours()

	assert.False(t, OpenAt(bh, "13:00"))
	assert.False(t, OpenAt(bh, "12:01"))
	assert.False(t, OpenAt(bh, "13:59"))
}

func TestOpenAt_OutsideDay(t *testing.T) {
	bh := saturdayHours()

	assert.False(t, OpenAt(bh, "08:59"))
	assert.False(t, OpenAt(bh, "18:01"))
}

func TestOpenAt_NoRowMeansClosed(t *testing.T) {
	assert.False(t, OpenAt(nil, "10:00"))
}

func TestOpenAt_ClosedFlagWins(t *testing.T) {
	bh := saturdayHours()
	bh.IsClosed = true

	assert.False(t, OpenAt(bh, "10:00"))
}

func TestOpenAt_MorningOnly(t *testing.T) {
	bh := &models.BusinessHour{
		MorningStart: "08:00",
		MorningEnd:   "12:00",
	}

	assert.True(t, OpenAt(bh, "08:00"))
	assert.False(t, OpenAt(bh, "14:00"))
}
