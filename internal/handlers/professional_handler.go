package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/models"
)

type ProfessionalHandler struct {
	db    *gorm.DB
	clock scheduling.Clock
}

func NewProfessionalHandler(db *gorm.DB, clock scheduling.Clock) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, clock: clock}
}

type professionalStats struct {
	TotalAppointments     int64   `json:"total_appointments"`
	CompletedAppointments int64   `json:"completed_appointments"`
	TodayAppointments     int64   `json:"today_appointments"`
	TotalRevenue          float64 `json:"total_revenue"`
	TotalCommission       float64 `json:"total_commission"`
}

type monthStats struct {
	AppointmentsThisMonth int64   `json:"appointments_this_month"`
	RevenueThisMonth      float64 `json:"revenue_this_month"`
	CommissionThisMonth   float64 `json:"commission_this_month"`
}

type commissionRow struct {
	ID                   uint    `json:"id"`
	Date                 string  `json:"appointment_date"`
	Time                 string  `json:"appointment_time"`
	ClientName           string  `json:"client_name"`
	ServiceName          string  `json:"service_name"`
	Price                float64 `json:"price"`
	CommissionPercentage float64 `json:"commission_percentage"`
	CommissionAmount     float64 `json:"commission_amount"`
}

// Dashboard returns the professional's lifetime and current-month
// totals plus the next five appointments.
func (h *ProfessionalHandler) Dashboard(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	now := h.clock.Now()
	today := now.Format("2006-01-02")
	nowClock := now.Format("15:04")
	monthPrefix := now.Format("2006-01") + "%"

	var stats professionalStats
	err := h.db.Model(&models.Appointment{}).
		Select(`COUNT(*) AS total_appointments,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_appointments,
			COUNT(*) FILTER (WHERE appointment_date = ?) AS today_appointments,
			COALESCE(SUM(total_price) FILTER (WHERE status = 'completed'), 0) AS total_revenue,
			COALESCE(SUM(total_price * services.commission_percentage / 100) FILTER (WHERE status = 'completed'), 0) AS total_commission`, today).
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.professional_id = ?", actor.ID).
		Scan(&stats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	var month monthStats
	err = h.db.Model(&models.Appointment{}).
		Select(`COUNT(*) AS appointments_this_month,
			COALESCE(SUM(total_price), 0) AS revenue_this_month,
			COALESCE(SUM(total_price * services.commission_percentage / 100), 0) AS commission_this_month`).
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.professional_id = ? AND appointments.status = 'completed'", actor.ID).
		Where("appointments.appointment_date LIKE ?", monthPrefix).
		Scan(&month).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	var upcoming []models.Appointment
	err = h.db.
		Preload("Client").Preload("Service").
		Where("professional_id = ?", actor.ID).
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

	c.JSON(http.StatusOK, gin.H{
		"statistics":            stats,
		"current_month":         month,
		"upcoming_appointments": upcoming,
	})
}

// Schedule returns the professional's agenda grouped by date. Without
// an explicit range it covers the next seven days.
func (h *ProfessionalHandler) Schedule(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		now := h.clock.Now()
		startDate = now.Format("2006-01-02")
		endDate = now.AddDate(0, 0, 7).Format("2006-01-02")
	}

	var rows []models.Appointment
	err := h.db.
		Preload("Client").Preload("Service").
		Where("professional_id = ?", actor.ID).
		Where("appointment_date BETWEEN ? AND ?", startDate, endDate).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	byDate := map[string][]models.Appointment{}
	for _, row := range rows {
		byDate[row.Date] = append(byDate[row.Date], row)
	}

	c.JSON(http.StatusOK, gin.H{
		"schedule_by_date":   byDate,
		"all_appointments":   rows,
		"total_appointments": len(rows),
	})
}

// Commissions lists completed appointments with the commission owed
// for each, defaulting to the current month.
func (h *ProfessionalHandler) Commissions(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	month := c.Query("month")
	year := c.Query("year")

	var prefix string
	if month != "" && year != "" {
		if len(month) == 1 {
			month = "0" + month
		}
		prefix = year + "-" + month + "%"
	} else {
		prefix = h.clock.Now().Format("2006-01") + "%"
	}

	var rows []commissionRow
	err := h.db.Model(&models.Appointment{}).
		Select(`appointments.id,
			appointments.appointment_date AS date,
			appointments.appointment_time AS time,
			clients.name AS client_name,
			services.name AS service_name,
			appointments.total_price AS price,
			services.commission_percentage,
			ROUND(CAST(appointments.total_price * services.commission_percentage / 100 AS numeric), 2) AS commission_amount`).
		Joins("JOIN users AS clients ON clients.id = appointments.client_id").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.professional_id = ? AND appointments.status = 'completed'", actor.ID).
		Where("appointments.appointment_date LIKE ?", prefix).
		Order("appointments.appointment_date DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_commissions"})
		return
	}

	var totalRevenue, totalCommission float64
	for _, row := range rows {
		totalRevenue += row.Price
		totalCommission += row.CommissionAmount
	}

	average := 0.0
	if len(rows) > 0 {
		average = totalCommission / float64(len(rows))
	}

	c.JSON(http.StatusOK, gin.H{
		"commissions": rows,
		"summary": gin.H{
			"total_appointments": len(rows),
			"total_revenue":      totalRevenue,
			"total_commission":   totalCommission,
			"average_commission": average,
		},
		"period": gin.H{"month": month, "year": year},
	})
}

type servedClient struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	Email             string  `json:"email"`
	TotalAppointments int64   `json:"total_appointments"`
	LastAppointment   string  `json:"last_appointment"`
	TotalSpent        float64 `json:"total_spent"`
}

// ClientsServed aggregates completed appointments per client.
func (h *ProfessionalHandler) ClientsServed(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var rows []servedClient
	err := h.db.Model(&models.Appointment{}).
		Select(`clients.id,
			clients.name,
			clients.phone,
			clients.email,
			COUNT(appointments.id) AS total_appointments,
			MAX(appointments.appointment_date) AS last_appointment,
			COALESCE(SUM(appointments.total_price), 0) AS total_spent`).
		Joins("JOIN users AS clients ON clients.id = appointments.client_id").
		Where("appointments.professional_id = ? AND appointments.status = 'completed'", actor.ID).
		Group("clients.id, clients.name, clients.phone, clients.email").
		Order("total_appointments DESC, last_appointment DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients":       rows,
		"total_clients": len(rows),
	})
}
