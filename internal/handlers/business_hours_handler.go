package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/models"
)

type BusinessHoursHandler struct {
	db *gorm.DB
}

func NewBusinessHoursHandler(db *gorm.DB) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db}
}

type BusinessDayConfig struct {
	Weekday        *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	MorningStart   string `json:"morning_start"`
	MorningEnd     string `json:"morning_end"`
	AfternoonStart string `json:"afternoon_start"`
	AfternoonEnd   string `json:"afternoon_end"`
	IsClosed       bool   `json:"is_closed"`
}

type BulkBusinessHoursRequest struct {
	Schedules []BusinessDayConfig `json:"schedules" binding:"required"`
}

var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday",
	"Thursday", "Friday", "Saturday",
}

// validWindows checks every configured window time. Empty strings mean
// the window is not offered that day and are allowed.
func (d BusinessDayConfig) validWindows() bool {
	for _, t := range []string{
		d.MorningStart, d.MorningEnd,
		d.AfternoonStart, d.AfternoonEnd,
	} {
		if t != "" && !scheduling.ValidClock(t) {
			return false
		}
	}
	return true
}

func (h *BusinessHoursHandler) upsertDay(establishmentID uint, d BusinessDayConfig) (*models.BusinessHour, error) {
	bh := models.BusinessHour{
		EstablishmentID: establishmentID,
		Weekday:         *d.Weekday,
		MorningStart:    d.MorningStart,
		MorningEnd:      d.MorningEnd,
		AfternoonStart:  d.AfternoonStart,
		AfternoonEnd:    d.AfternoonEnd,
		IsClosed:        d.IsClosed,
	}

	// idempotent per (establishment, weekday)
	err := h.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "establishment_id"}, {Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"morning_start", "morning_end",
			"afternoon_start", "afternoon_end",
			"is_closed", "updated_at",
		}),
	}).Create(&bh).Error
	if err != nil {
		return nil, err
	}

	return &bh, nil
}

// Upsert configures a single weekday for the authenticated
// establishment.
func (h *BusinessHoursHandler) Upsert(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var req BusinessDayConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !req.validWindows() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_window"})
		return
	}

	bh, err := h.upsertDay(actor.ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_business_hours"})
		return
	}

	c.JSON(http.StatusOK, bh)
}

// BulkUpdate replaces the whole week in one request.
func (h *BusinessHoursHandler) BulkUpdate(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var req BulkBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Schedules {
		if !d.validWindows() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "invalid_time_window",
				"day_of_week": *d.Weekday,
			})
			return
		}
	}

	results := make([]models.BusinessHour, 0, len(req.Schedules))
	for _, d := range req.Schedules {
		bh, err := h.upsertDay(actor.ID, d)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_business_hours"})
			return
		}
		results = append(results, *bh)
	}

	c.JSON(http.StatusOK, results)
}

func (h *BusinessHoursHandler) ListByEstablishment(c *gin.Context) {
	establishmentID, err := strconv.ParseUint(c.Param("establishment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_establishment_id"})
		return
	}

	var hours []models.BusinessHour
	if err := h.db.
		Where("establishment_id = ?", establishmentID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_business_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// FormattedWeek renders the full week with human-readable day status,
// for schedule pages.
func (h *BusinessHoursHandler) FormattedWeek(c *gin.Context) {
	establishmentID, err := strconv.ParseUint(c.Param("establishment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_establishment_id"})
		return
	}

	var hours []models.BusinessHour
	if err := h.db.
		Where("establishment_id = ?", establishmentID).
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_business_hours"})
		return
	}

	byDay := make(map[int]models.BusinessHour, len(hours))
	for _, bh := range hours {
		byDay[bh.Weekday] = bh
	}

	week := make([]gin.H, 0, 7)
	for day := 0; day < 7; day++ {
		bh, ok := byDay[day]
		if !ok || bh.IsClosed {
			week = append(week, gin.H{
				"day":         weekdayNames[day],
				"day_of_week": day,
				"status":      "closed",
			})
			continue
		}

		schedule := ""
		if bh.MorningStart != "" && bh.MorningEnd != "" {
			schedule = bh.MorningStart + " - " + bh.MorningEnd
		}
		if bh.AfternoonStart != "" && bh.AfternoonEnd != "" {
			if schedule != "" {
				schedule += " / "
			}
			schedule += bh.AfternoonStart + " - " + bh.AfternoonEnd
		}
		if schedule == "" {
			schedule = "closed"
		}

		week = append(week, gin.H{
			"day":         weekdayNames[day],
			"day_of_week": day,
			"status":      schedule,
		})
	}

	c.JSON(http.StatusOK, week)
}
