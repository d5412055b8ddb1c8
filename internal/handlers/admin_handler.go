package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/models"
)

type AdminHandler struct {
	db    *gorm.DB
	clock scheduling.Clock
}

func NewAdminHandler(db *gorm.DB, clock scheduling.Clock) *AdminHandler {
	return &AdminHandler{db: db, clock: clock}
}

type roleCount struct {
	Role        string `json:"role"`
	Count       int64  `json:"count"`
	ActiveCount int64  `json:"active_count"`
}

type platformAppointmentStats struct {
	TotalAppointments int64   `json:"total_appointments"`
	Scheduled         int64   `json:"scheduled"`
	Confirmed         int64   `json:"confirmed"`
	Completed         int64   `json:"completed"`
	Cancelled         int64   `json:"cancelled"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type platformMonthStats struct {
	AppointmentsThisMonth int64   `json:"appointments_this_month"`
	RevenueThisMonth      float64 `json:"revenue_this_month"`
}

// Dashboard is the platform-wide overview.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	var users []roleCount
	err := h.db.Model(&models.User{}).
		Select(`role,
			COUNT(*) AS count,
			COUNT(*) FILTER (WHERE active = true) AS active_count`).
		Group("role").
		Scan(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	var appointments platformAppointmentStats
	err = h.db.Model(&models.Appointment{}).
		Select(`COUNT(*) AS total_appointments,
			COUNT(*) FILTER (WHERE status = 'scheduled') AS scheduled,
			COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COALESCE(SUM(total_price) FILTER (WHERE status = 'completed'), 0) AS total_revenue`).
		Scan(&appointments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	monthPrefix := h.clock.Now().Format("2006-01") + "%"

	var month platformMonthStats
	err = h.db.Model(&models.Appointment{}).
		Select(`COUNT(*) AS appointments_this_month,
			COALESCE(SUM(total_price), 0) AS revenue_this_month`).
		Where("status = 'completed' AND appointment_date LIKE ?", monthPrefix).
		Scan(&month).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":         users,
		"appointments":  appointments,
		"current_month": month,
	})
}

type establishmentRow struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	ServicesCount  int64     `json:"services_count"`
	EmployeesCount int64     `json:"employees_count"`
}

func (h *AdminHandler) ListEstablishments(c *gin.Context) {
	var rows []establishmentRow
	err := h.db.Model(&models.User{}).
		Select(`users.id, users.name, users.email, users.phone, users.active, users.created_at,
			COUNT(DISTINCT services.id) AS services_count,
			COUNT(DISTINCT employees.id) AS employees_count`).
		Joins("LEFT JOIN services ON services.establishment_id = users.id AND services.active = true").
		Joins("LEFT JOIN users AS employees ON employees.establishment_id = users.id AND employees.active = true").
		Where("users.role = ?", identity.RoleEstablishment).
		Group("users.id, users.name, users.email, users.phone, users.active, users.created_at").
		Order("users.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_establishments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type ToggleAccountRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ToggleAccountStatus suspends or reactivates any non-admin account.
func (h *AdminHandler) ToggleAccountStatus(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return
	}

	var req ToggleAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active_must_be_boolean"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	if user.Role == string(identity.RoleSuperAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot_modify_super_admin"})
		return
	}

	user.Active = *req.Active
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_account"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeactivateAccount is a soft delete, the row stays for history.
func (h *AdminHandler) DeactivateAccount(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	if user.Role == string(identity.RoleSuperAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot_delete_super_admin"})
		return
	}

	if err := h.db.Model(&user).Update("active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	query := h.db.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_users"})
		return
	}

	var users []models.User
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"pagination": gin.H{
			"current_page": page,
			"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
			"total_users":  total,
			"per_page":     limit,
		},
	})
}
