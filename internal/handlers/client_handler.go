package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/dto"
	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/models"
)

type ClientHandler struct {
	db    *gorm.DB
	clock scheduling.Clock
}

func NewClientHandler(db *gorm.DB, clock scheduling.Clock) *ClientHandler {
	return &ClientHandler{db: db, clock: clock}
}

type clientStats struct {
	TotalAppointments     int64   `json:"total_appointments"`
	CompletedAppointments int64   `json:"completed_appointments"`
	CancelledAppointments int64   `json:"cancelled_appointments"`
	UpcomingAppointments  int64   `json:"upcoming_appointments"`
	TotalSpent            float64 `json:"total_spent"`
}

// Dashboard returns the client's counters plus the next and last
// five appointments.
func (h *ClientHandler) Dashboard(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	now := h.clock.Now()
	today := now.Format("2006-01-02")
	nowClock := now.Format("15:04")

	var stats clientStats
	err := h.db.Model(&models.Appointment{}).
		Select(`COUNT(*) AS total_appointments,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_appointments,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_appointments,
			COUNT(*) FILTER (WHERE appointment_date >= ?) AS upcoming_appointments,
			COALESCE(SUM(total_price) FILTER (WHERE status = 'completed'), 0) AS total_spent`, today).
		Where("client_id = ?", actor.ID).
		Scan(&stats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	var upcoming []models.Appointment
	err = h.db.
		Preload("Professional").Preload("Establishment").Preload("Service").
		Where("client_id = ?", actor.ID).
		Where("status IN ('scheduled', 'confirmed')").
		Where("appointment_date > ? OR (appointment_date = ? AND appointment_time > ?)",
			today, today, nowClock).
		Order("appointment_date ASC, appointment_time ASC").
		Limit(5).
		Find(&upcoming).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	var recent []models.Appointment
	err = h.db.
		Preload("Professional").Preload("Establishment").Preload("Service").
		Where("client_id = ?", actor.ID).
		Order("appointment_date DESC, appointment_time DESC").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics":            stats,
		"upcoming_appointments": upcoming,
		"recent_appointments":   recent,
	})
}

// History returns the client's paginated appointment history.
func (h *ClientHandler) History(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&models.Appointment{}).Where("client_id = ?", actor.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_history"})
		return
	}

	var rows []models.Appointment
	err := query.
		Preload("Client").Preload("Professional").
		Preload("Establishment").Preload("Service").
		Order("appointment_date DESC, appointment_time DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_history"})
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(rows))
	for _, ap := range rows {
		out = append(out, dto.NewAppointmentListDTO(ap))
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": out,
		"pagination": gin.H{
			"current_page":       page,
			"total_pages":        int(math.Ceil(float64(total) / float64(limit))),
			"total_appointments": total,
			"per_page":           limit,
		},
	})
}
