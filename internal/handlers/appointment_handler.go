package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aviseihq/avisei-api/internal/httperr"
	"github.com/aviseihq/avisei-api/internal/httpresp"
	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create     *appointment.CreateAppointment
	confirm    *appointment.ConfirmAppointment
	cancel     *appointment.CancelAppointment
	complete   *appointment.CompleteAppointment
	reschedule *appointment.RescheduleAppointment
	get        *appointment.GetAppointment
	list       *appointment.ListAppointments
	slots      *appointment.ListAvailableSlots
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	confirm *appointment.ConfirmAppointment,
	cancel *appointment.CancelAppointment,
	complete *appointment.CompleteAppointment,
	reschedule *appointment.RescheduleAppointment,
	get *appointment.GetAppointment,
	list *appointment.ListAppointments,
	slots *appointment.ListAvailableSlots,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		confirm:    confirm,
		cancel:     cancel,
		complete:   complete,
		reschedule: reschedule,
		get:        get,
		list:       list,
		slots:      slots,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ProfessionalID  uint   `json:"professional_id" binding:"required"`
	EstablishmentID uint   `json:"establishment_id" binding:"required"`
	ServiceID       uint   `json:"service_id" binding:"required"`
	Date            string `json:"appointment_date" binding:"required"`
	Time            string `json:"appointment_time" binding:"required"`
	Notes           string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"cancellation_reason"`
}

type CompleteAppointmentRequest struct {
	Notes string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"appointment_date" binding:"required"`
	Time string `json:"appointment_time" binding:"required"`
}

func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "appointment id must be numeric")
		return 0, false
	}
	return uint(id), true
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), actor, appointment.CreateAppointmentInput{
		ProfessionalID:  req.ProfessionalID,
		EstablishmentID: req.EstablishmentID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), actor, id)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req) // reason is optional, body may be empty

	ap, err := h.cancel.Execute(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.complete.Execute(c.Request.Context(), actor, id, req.Notes)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), actor, id, req.Date, req.Time)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), actor, id)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	rows, err := h.list.Execute(c.Request.Context(), actor, c.Query("status"))
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	professionalID, err := strconv.ParseUint(c.Query("professional_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "professional_id must be numeric")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id must be numeric")
		return
	}

	slots, err := h.slots.Execute(
		c.Request.Context(),
		uint(professionalID),
		uint(serviceID),
		c.Query("date"),
	)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.List(c, slots)
}
