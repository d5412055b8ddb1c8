package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/models"
	"github.com/aviseihq/avisei-api/internal/validators"
)

type EstablishmentHandler struct {
	db    *gorm.DB
	clock scheduling.Clock
}

func NewEstablishmentHandler(db *gorm.DB, clock scheduling.Clock) *EstablishmentHandler {
	return &EstablishmentHandler{db: db, clock: clock}
}

type establishmentStats struct {
	ServicesCount     int64   `json:"services_count"`
	EmployeesCount    int64   `json:"employees_count"`
	TodayAppointments int64   `json:"today_appointments"`
	MonthRevenue      float64 `json:"month_revenue"`
}

type topEmployee struct {
	Name              string  `json:"name"`
	AppointmentsCount int64   `json:"appointments_count"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalCommission   float64 `json:"total_commission"`
}

// Dashboard returns counters, the ten latest appointments and the
// current month's top professionals.
func (h *EstablishmentHandler) Dashboard(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	now := h.clock.Now()
	today := now.Format("2006-01-02")
	monthPrefix := now.Format("2006-01") + "%"

	var stats establishmentStats

	h.db.Model(&models.Service{}).
		Where("establishment_id = ? AND active = ?", actor.ID, true).
		Count(&stats.ServicesCount)

	h.db.Model(&models.User{}).
		Where("establishment_id = ? AND role = ? AND active = ?",
			actor.ID, identity.RoleProfessional, true).
		Count(&stats.EmployeesCount)

	h.db.Model(&models.Appointment{}).
		Where("establishment_id = ? AND appointment_date = ?", actor.ID, today).
		Count(&stats.TodayAppointments)

	err := h.db.Model(&models.Appointment{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("establishment_id = ? AND status = 'completed'", actor.ID).
		Where("appointment_date LIKE ?", monthPrefix).
		Scan(&stats.MonthRevenue).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	var recent []models.Appointment
	err = h.db.
		Preload("Client").Preload("Professional").Preload("Service").
		Where("establishment_id = ?", actor.ID).
		Order("appointment_date DESC, appointment_time DESC").
		Limit(10).
		Find(&recent).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	var top []topEmployee
	err = h.db.Model(&models.User{}).
		Select(`users.name,
			COUNT(appointments.id) AS appointments_count,
			COALESCE(SUM(appointments.total_price), 0) AS total_revenue,
			COALESCE(SUM(appointments.total_price * services.commission_percentage / 100), 0) AS total_commission`).
		Joins(`LEFT JOIN appointments ON appointments.professional_id = users.id
			AND appointments.status = 'completed'
			AND appointments.appointment_date LIKE ?`, monthPrefix).
		Joins("LEFT JOIN services ON services.id = appointments.service_id").
		Where("users.establishment_id = ? AND users.role = ? AND users.active = ?",
			actor.ID, identity.RoleProfessional, true).
		Group("users.id, users.name").
		Order("appointments_count DESC").
		Limit(5).
		Scan(&top).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics":          stats,
		"recent_appointments": recent,
		"top_employees":       top,
	})
}

type employeeRow struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	TotalAppointments int64     `json:"total_appointments"`
	TotalRevenue      float64   `json:"total_revenue"`
}

// ListEmployees returns the establishment's professionals with
// completed-appointment totals.
func (h *EstablishmentHandler) ListEmployees(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var rows []employeeRow
	err := h.db.Model(&models.User{}).
		Select(`users.id, users.name, users.email, users.phone, users.active, users.created_at,
			COUNT(appointments.id) AS total_appointments,
			COALESCE(SUM(appointments.total_price), 0) AS total_revenue`).
		Joins("LEFT JOIN appointments ON appointments.professional_id = users.id AND appointments.status = 'completed'").
		Where("users.establishment_id = ? AND users.role = ?", actor.ID, identity.RoleProfessional).
		Group("users.id, users.name, users.email, users.phone, users.active, users.created_at").
		Order("users.name ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *EstablishmentHandler) CreateEmployee(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email"})
		return
	}

	var existing models.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_in_use"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_employee"})
		return
	}

	establishmentID := actor.ID
	employee := models.User{
		Name:            req.Name,
		Email:           email,
		PasswordHash:    string(hash),
		Phone:           req.Phone,
		Role:            string(identity.RoleProfessional),
		EstablishmentID: &establishmentID,
		Active:          true,
	}

	if err := h.db.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_employee"})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

type UpdateEmployeeRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (h *EstablishmentHandler) UpdateEmployee(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	employeeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_employee_id"})
		return
	}

	var employee models.User
	err = h.db.
		Where("id = ? AND establishment_id = ? AND role = ?",
			employeeID, actor.ID, identity.RoleProfessional).
		First(&employee).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validators.IsEmailValid(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email"})
			return
		}
		employee.Email = email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := h.db.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_employee"})
		return
	}

	c.JSON(http.StatusOK, employee)
}

// AppointmentsByPeriod lists the establishment's appointments over a
// day, week or month window with a revenue summary.
func (h *EstablishmentHandler) AppointmentsByPeriod(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	period := c.DefaultQuery("period", "day")
	date := c.Query("date")
	if date == "" {
		date = h.clock.Now().Format("2006-01-02")
	}

	query := h.db.Model(&models.Appointment{}).
		Preload("Client").Preload("Professional").Preload("Service").
		Where("establishment_id = ?", actor.ID)

	switch period {
	case "day":
		query = query.Where("appointment_date = ?", date)
	case "week":
		start, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
			return
		}
		query = query.Where("appointment_date >= ? AND appointment_date < ?",
			date, start.AddDate(0, 0, 7).Format("2006-01-02"))
	case "month":
		if len(date) < 7 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
			return
		}
		query = query.Where("appointment_date LIKE ?", date[:7]+"%")
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_period"})
		return
	}

	if professionalID := c.Query("professional_id"); professionalID != "" {
		query = query.Where("professional_id = ?", professionalID)
	}

	var rows []models.Appointment
	if err := query.
		Order("appointment_date DESC, appointment_time DESC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_appointments"})
		return
	}

	var totalRevenue, totalCommission float64
	byStatus := map[string]int{}
	for _, row := range rows {
		totalRevenue += row.TotalPrice
		totalCommission += row.TotalPrice * row.Service.CommissionPercentage / 100
		byStatus[row.Status]++
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": rows,
		"summary": gin.H{
			"total_appointments": len(rows),
			"total_revenue":      totalRevenue,
			"total_commission":   totalCommission,
			"by_status":          byStatus,
		},
		"period": period,
		"filters": gin.H{
			"date":            date,
			"professional_id": c.Query("professional_id"),
		},
	})
}
