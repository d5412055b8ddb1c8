package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name                 string  `json:"name" binding:"required"`
	Description          string  `json:"description"`
	DurationMin          int     `json:"duration_min" binding:"required,min=1"`
	Price                float64 `json:"price" binding:"required,gt=0"`
	CommissionPercentage float64 `json:"commission_percentage" binding:"min=0,max=100"`
}

type UpdateServiceRequest struct {
	Name                 *string  `json:"name,omitempty"`
	Description          *string  `json:"description,omitempty"`
	DurationMin          *int     `json:"duration_min,omitempty"`
	Price                *float64 `json:"price,omitempty"`
	CommissionPercentage *float64 `json:"commission_percentage,omitempty"`
	Active               *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

// ListPublic exposes every active service so clients can browse before
// authenticating.
func (h *ServiceHandler) ListPublic(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = ?", true).
		Order("establishment_id ASC, name ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) List(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Where("establishment_id = ?", actor.ID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	service := models.Service{
		EstablishmentID:      actor.ID,
		Name:                 req.Name,
		Description:          req.Description,
		DurationMin:          req.DurationMin,
		Price:                req.Price,
		CommissionPercentage: req.CommissionPercentage,
		Active:               true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, actor.ID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.DurationMin != nil && *req.DurationMin <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_duration"})
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_price"})
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.CommissionPercentage != nil {
		service.CommissionPercentage = *req.CommissionPercentage
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// Deactivate soft-deletes: appointments keep referencing the row.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id := c.Param("id")

	res := h.db.Model(&models.Service{}).
		Where("id = ? AND establishment_id = ?", id, actor.ID).
		Update("active", false)

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_deactivate_service"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
