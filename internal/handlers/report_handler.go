package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/dto"
	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/models"
)

type ReportHandler struct {
	db    *gorm.DB
	clock scheduling.Clock
}

func NewReportHandler(db *gorm.DB, clock scheduling.Clock) *ReportHandler {
	return &ReportHandler{db: db, clock: clock}
}

// scopeByActor narrows a report query to what the actor may see.
// Professionals see their own rows, establishments their staff's.
func scopeByActor(query *gorm.DB, actor identity.Actor) (*gorm.DB, bool) {
	switch actor.Role {
	case identity.RoleProfessional:
		return query.Where("appointments.professional_id = ?", actor.ID), true
	case identity.RoleEstablishment:
		return query.Where("appointments.establishment_id = ?", actor.ID), true
	default:
		return nil, false
	}
}

const reportSelect = `appointments.id,
	appointments.appointment_date AS date,
	appointments.appointment_time AS time,
	appointments.status,
	clients.name AS client_name,
	professionals.name AS professional_name,
	services.name AS service_name,
	appointments.total_price AS price,
	services.commission_percentage,
	ROUND(CAST(appointments.total_price * services.commission_percentage / 100 AS numeric), 2) AS commission_amount`

func (h *ReportHandler) baseReportQuery() *gorm.DB {
	return h.db.Model(&models.Appointment{}).
		Select(reportSelect).
		Joins("JOIN users AS clients ON clients.id = appointments.client_id").
		Joins("JOIN users AS professionals ON professionals.id = appointments.professional_id").
		Joins("JOIN services ON services.id = appointments.service_id")
}

// AppointmentsByProfessional is the per-professional appointment
// report with revenue and commission totals grouped by status.
func (h *ReportHandler) AppointmentsByProfessional(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	query, ok := scopeByActor(h.baseReportQuery(), actor)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "access_denied"})
		return
	}

	if professionalID := c.Query("professional_id"); professionalID != "" {
		query = query.Where("appointments.professional_id = ?", professionalID)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("appointments.appointment_date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("appointments.appointment_date <= ?", endDate)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("appointments.status = ?", status)
	}

	var rows []dto.ReportRow
	err := query.
		Order("appointments.appointment_date DESC, appointments.appointment_time DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_build_report"})
		return
	}

	summary := dto.ReportSummary{
		TotalAppointments: len(rows),
		ByStatus:          map[string]dto.StatusSummary{},
	}
	for _, row := range rows {
		summary.TotalRevenue += row.Price
		summary.TotalCommission += row.CommissionAmount

		entry := summary.ByStatus[row.Status]
		entry.Count++
		entry.Revenue += row.Price
		entry.Commission += row.CommissionAmount
		summary.ByStatus[row.Status] = entry
	}

	c.JSON(http.StatusOK, dto.AppointmentReport{
		Appointments: rows,
		Summary:      summary,
	})
}

// Commissions groups completed-appointment commissions by
// professional, with the establishment's cut as the remainder.
func (h *ReportHandler) Commissions(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	query, ok := scopeByActor(h.baseReportQuery(), actor)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "access_denied"})
		return
	}

	query = query.Where("appointments.status = 'completed'")

	if professionalID := c.Query("professional_id"); professionalID != "" {
		query = query.Where("appointments.professional_id = ?", professionalID)
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	month := c.Query("month")
	year := c.Query("year")

	switch {
	case startDate != "" && endDate != "":
		query = query.Where("appointments.appointment_date BETWEEN ? AND ?", startDate, endDate)
	case month != "" && year != "":
		if len(month) == 1 {
			month = "0" + month
		}
		query = query.Where("appointments.appointment_date LIKE ?", year+"-"+month+"%")
	}

	type commissionReportRow struct {
		dto.ReportRow
		ProfessionalID uint `json:"professional_id"`
	}

	var rows []commissionReportRow
	err := query.
		Select(reportSelect + ", appointments.professional_id").
		Order("appointments.appointment_date DESC, professionals.name ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_build_report"})
		return
	}

	byProfessional := map[uint]*dto.CommissionByProfessional{}
	order := []uint{}
	var totalRevenue, totalCommission float64

	for _, row := range rows {
		group, seen := byProfessional[row.ProfessionalID]
		if !seen {
			group = &dto.CommissionByProfessional{
				ProfessionalID:   row.ProfessionalID,
				ProfessionalName: row.ProfessionalName,
			}
			byProfessional[row.ProfessionalID] = group
			order = append(order, row.ProfessionalID)
		}
		group.Appointments++
		group.Revenue += row.Price
		group.Commission += row.CommissionAmount

		totalRevenue += row.Price
		totalCommission += row.CommissionAmount
	}

	groups := make([]dto.CommissionByProfessional, 0, len(order))
	for _, id := range order {
		groups = append(groups, *byProfessional[id])
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": gin.H{
			"total_revenue":        totalRevenue,
			"total_commissions":    totalCommission,
			"establishment_profit": totalRevenue - totalCommission,
			"total_appointments":   len(rows),
		},
		"by_professional":  groups,
		"all_appointments": rows,
	})
}

type periodTotals struct {
	Count      int64   `json:"appointments"`
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
}

// DashboardSummary is the compact today/this-month widget feed.
func (h *ReportHandler) DashboardSummary(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	base := h.db.Model(&models.Appointment{}).
		Joins("JOIN services ON services.id = appointments.service_id")
	base, ok := scopeByActor(base, actor)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "access_denied"})
		return
	}

	now := h.clock.Now()
	today := now.Format("2006-01-02")
	monthPrefix := now.Format("2006-01") + "%"

	var todayTotals periodTotals
	err := base.Session(&gorm.Session{}).
		Select("COUNT(*) AS count, COALESCE(SUM(appointments.total_price), 0) AS revenue").
		Where("appointments.appointment_date = ?", today).
		Scan(&todayTotals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_build_report"})
		return
	}

	var monthTotals periodTotals
	err = base.Session(&gorm.Session{}).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(appointments.total_price), 0) AS revenue,
			COALESCE(SUM(appointments.total_price * services.commission_percentage / 100), 0) AS commission`).
		Where("appointments.status = 'completed' AND appointments.appointment_date LIKE ?", monthPrefix).
		Scan(&monthTotals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_build_report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today": gin.H{
			"appointments": todayTotals.Count,
			"revenue":      todayTotals.Revenue,
		},
		"this_month": gin.H{
			"appointments": monthTotals.Count,
			"revenue":      monthTotals.Revenue,
			"commission":   monthTotals.Commission,
		},
	})
}
