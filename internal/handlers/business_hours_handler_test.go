package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// router with the actor pre-set, skipping the JWT middleware
func businessHoursRouter() *gin.Engine {
	h := NewBusinessHoursHandler(nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextActor, identity.Actor{
			ID:   3,
			Role: identity.RoleEstablishment,
		})
	})
	r.PUT("/business-hours", h.Upsert)
	r.PUT("/business-hours/week", h.BulkUpdate)
	return r
}

func putJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBusinessHoursUpsert_RejectsNonClockWindow(t *testing.T) {
	r := businessHoursRouter()

	w := putJSON(r, "/business-hours",
		`{"day_of_week": 1, "morning_start": "9am", "morning_end": "12:00"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_time_window")
}

func TestBusinessHoursUpsert_RejectsOutOfRangeMinutes(t *testing.T) {
	r := businessHoursRouter()

	w := putJSON(r, "/business-hours",
		`{"day_of_week": 1, "morning_start": "09:00", "morning_end": "12:60"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_time_window")
}

func TestBusinessHoursBulkUpdate_RejectsBadDayBeforeWriting(t *testing.T) {
	r := businessHoursRouter()

	w := putJSON(r, "/business-hours/week", `{"schedules": [
		{"day_of_week": 1, "morning_start": "09:00", "morning_end": "12:00"},
		{"day_of_week": 2, "afternoon_start": "14:00", "afternoon_end": "25:00"}
	]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_time_window")
	assert.Contains(t, w.Body.String(), `"day_of_week":2`)
}

func TestBusinessDayConfig_ValidWindows(t *testing.T) {
	day := 1

	// empty strings mean no window and are fine
	closedMorning := BusinessDayConfig{
		Weekday:        &day,
		AfternoonStart: "14:00",
		AfternoonEnd:   "18:00",
	}
	assert.True(t, closedMorning.validWindows())

	fullDay := BusinessDayConfig{
		Weekday:        &day,
		MorningStart:   "09:00",
		MorningEnd:     "12:00",
		AfternoonStart: "14:00",
		AfternoonEnd:   "18:00",
	}
	assert.True(t, fullDay.validWindows())

	badAfternoon := BusinessDayConfig{
		Weekday:      &day,
		MorningStart: "09:00",
		MorningEnd:   "12:00",
		AfternoonEnd: "6pm",
	}
	assert.False(t, badAfternoon.validWindows())
}
