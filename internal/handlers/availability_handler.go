package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/models"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

// --------- Requests ---------

type CreateAvailabilityRequest struct {
	ProfessionalID  uint   `json:"professional_id" binding:"required"`
	EstablishmentID uint   `json:"establishment_id" binding:"required"`
	Weekday         *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	IsAvailable     *bool  `json:"is_available"`
}

type UpdateAvailabilityRequest struct {
	Weekday     *int    `json:"day_of_week,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

// --------- Handlers ---------

func (h *AvailabilityHandler) Create(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !scheduling.ValidClock(req.StartTime) || !scheduling.ValidClock(req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_window"})
		return
	}

	// professionals manage their own windows, establishments their own staff
	switch actor.Role {
	case identity.RoleProfessional:
		if actor.ID != req.ProfessionalID {
			c.JSON(http.StatusForbidden, gin.H{"error": "can_only_configure_own_availability"})
			return
		}
	case identity.RoleEstablishment:
		if actor.ID != req.EstablishmentID {
			c.JSON(http.StatusForbidden, gin.H{"error": "can_only_configure_own_establishment"})
			return
		}
	}

	var professional models.User
	if err := h.db.
		Where("id = ? AND role = ? AND active = ?", req.ProfessionalID, identity.RoleProfessional, true).
		First(&professional).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_not_found"})
		return
	}

	var establishment models.User
	if err := h.db.
		Where("id = ? AND role = ? AND active = ?", req.EstablishmentID, identity.RoleEstablishment, true).
		First(&establishment).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "establishment_not_found"})
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	availability := models.ProfessionalAvailability{
		ProfessionalID:  req.ProfessionalID,
		EstablishmentID: req.EstablishmentID,
		Weekday:         *req.Weekday,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		IsAvailable:     isAvailable,
	}

	if err := h.db.Create(&availability).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_availability"})
		return
	}

	c.JSON(http.StatusCreated, availability)
}

func (h *AvailabilityHandler) ListByProfessional(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	professionalID, err := strconv.ParseUint(c.Param("professional_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_professional_id"})
		return
	}

	if actor.Role == identity.RoleProfessional && actor.ID != uint(professionalID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access_denied"})
		return
	}

	var rows []models.ProfessionalAvailability
	if err := h.db.
		Where("professional_id = ? AND is_available = ?", professionalID, true).
		Order("weekday ASC, start_time ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_availability"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *AvailabilityHandler) ListByEstablishment(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	establishmentID, err := strconv.ParseUint(c.Param("establishment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_establishment_id"})
		return
	}

	if actor.Role == identity.RoleEstablishment && actor.ID != uint(establishmentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access_denied"})
		return
	}

	var rows []models.ProfessionalAvailability
	if err := h.db.
		Where("establishment_id = ? AND is_available = ?", establishmentID, true).
		Order("professional_id ASC, weekday ASC, start_time ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_availability"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *AvailabilityHandler) loadOwned(c *gin.Context) (*models.ProfessionalAvailability, bool) {
	actor, _ := middleware.ActorFrom(c)

	id := c.Param("id")

	var row models.ProfessionalAvailability
	if err := h.db.First(&row, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "availability_not_found"})
		return nil, false
	}

	switch actor.Role {
	case identity.RoleSuperAdmin:
	case identity.RoleProfessional:
		if actor.ID != row.ProfessionalID {
			c.JSON(http.StatusForbidden, gin.H{"error": "access_denied"})
			return nil, false
		}
	case identity.RoleEstablishment:
		if actor.ID != row.EstablishmentID {
			c.JSON(http.StatusForbidden, gin.H{"error": "access_denied"})
			return nil, false
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "access_denied"})
		return nil, false
	}

	return &row, true
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	row, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Weekday != nil {
		if *req.Weekday < 0 || *req.Weekday > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_weekday"})
			return
		}
		row.Weekday = *req.Weekday
	}
	if req.StartTime != nil {
		if !scheduling.ValidClock(*req.StartTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_window"})
			return
		}
		row.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if !scheduling.ValidClock(*req.EndTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_window"})
			return
		}
		row.EndTime = *req.EndTime
	}
	if req.IsAvailable != nil {
		row.IsAvailable = *req.IsAvailable
	}

	if err := h.db.Save(row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_availability"})
		return
	}

	c.JSON(http.StatusOK, row)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	row, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := h.db.Delete(row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// FormattedWeek renders the professional's week with per-day windows.
func (h *AvailabilityHandler) FormattedWeek(c *gin.Context) {
	professionalID, err := strconv.ParseUint(c.Param("professional_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_professional_id"})
		return
	}

	var rows []models.ProfessionalAvailability
	if err := h.db.
		Where("professional_id = ?", professionalID).
		Order("weekday ASC, start_time ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_availability"})
		return
	}

	week := make([]gin.H, 0, 7)
	for day := 0; day < 7; day++ {
		periods := []gin.H{}
		for _, row := range rows {
			if row.Weekday != day {
				continue
			}
			periods = append(periods, gin.H{
				"start_time":   row.StartTime,
				"end_time":     row.EndTime,
				"is_available": row.IsAvailable,
			})
		}

		status := "unavailable"
		if len(periods) > 0 {
			status = "available"
		}

		week = append(week, gin.H{
			"day":         weekdayNames[day],
			"day_of_week": day,
			"status":      status,
			"periods":     periods,
		})
	}

	c.JSON(http.StatusOK, week)
}
