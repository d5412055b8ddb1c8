package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the establishment's audit trail, newest first. Super
// admins may pass establishment_id to inspect any tenant.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	establishmentID := actor.ID
	if actor.Role == identity.RoleSuperAdmin {
		id, err := strconv.ParseUint(c.Query("establishment_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_establishment_id"})
			return
		}
		establishmentID = uint(id)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	query := h.db.Model(&models.AuditLog{}).
		Where("establishment_id = ?", establishmentID)

	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_audit_logs"})
		return
	}

	var rows []models.AuditLog
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_audit_logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": rows,
		"pagination": gin.H{
			"current_page": page,
			"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
			"total_logs":   total,
			"per_page":     limit,
		},
	})
}
