package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/audit"
	"github.com/aviseihq/avisei-api/internal/config"
	"github.com/aviseihq/avisei-api/internal/domain/identity"
	"github.com/aviseihq/avisei-api/internal/domain/scheduling"
	"github.com/aviseihq/avisei-api/internal/handlers"
	infraRepo "github.com/aviseihq/avisei-api/internal/infra/repository"
	"github.com/aviseihq/avisei-api/internal/middleware"
	"github.com/aviseihq/avisei-api/internal/notification"
	ucAppointment "github.com/aviseihq/avisei-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	clock := scheduling.SystemClock(cfg.Timezone)
	policy := scheduling.Policy{
		CancelLeadTimeMin: cfg.CancelLeadTimeMin,
		StrictConfirm:     cfg.StrictConfirm,
	}

	mailer := notification.NewLogMailer(log)
	notifier := notification.NewDispatcher(mailer, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		schedulingRepo,
		notifier,
		auditDispatcher,
		clock,
		cfg.Timezone,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		schedulingRepo,
		auditDispatcher,
		policy,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		schedulingRepo,
		notifier,
		auditDispatcher,
		clock,
		policy,
		cfg.Timezone,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		schedulingRepo,
		auditDispatcher,
		clock,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		schedulingRepo,
		notifier,
		auditDispatcher,
		clock,
		policy,
		cfg.Timezone,
	)

	getAppointmentUC := ucAppointment.NewGetAppointment(schedulingRepo)
	listAppointmentsUC := ucAppointment.NewListAppointments(schedulingRepo)
	listSlotsUC := ucAppointment.NewListAvailableSlots(schedulingRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		rescheduleAppointmentUC,
		getAppointmentUC,
		listAppointmentsUC,
		listSlotsUC,
	)

	clientHandler := handlers.NewClientHandler(db, clock)
	professionalHandler := handlers.NewProfessionalHandler(db, clock)
	establishmentHandler := handlers.NewEstablishmentHandler(db, clock)
	adminHandler := handlers.NewAdminHandler(db, clock)
	reportHandler := handlers.NewReportHandler(db, clock)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", serviceHandler.ListPublic)
			publicAPI.GET("/business-hours/:establishment_id", businessHoursHandler.ListByEstablishment)
			publicAPI.GET("/business-hours/:establishment_id/week", businessHoursHandler.FormattedWeek)
			publicAPI.GET("/appointments/slots", appointmentHandler.AvailableSlots)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			secured.POST("/availability", availabilityHandler.Create)
			secured.GET("/availability/professional/:professional_id", availabilityHandler.ListByProfessional)
			secured.GET("/availability/professional/:professional_id/week", availabilityHandler.FormattedWeek)
			secured.GET("/availability/establishment/:establishment_id", availabilityHandler.ListByEstablishment)
			secured.PATCH("/availability/:id", availabilityHandler.Update)
			secured.DELETE("/availability/:id", availabilityHandler.Delete)

			// ------------------------------
			// CLIENT
			// ------------------------------
			client := secured.Group("/client")
			client.Use(middleware.RequireRoles(identity.RoleClient))
			{
				client.GET("/dashboard", clientHandler.Dashboard)
				client.GET("/appointments/history", clientHandler.History)
			}

			// ------------------------------
			// PROFESSIONAL
			// ------------------------------
			professional := secured.Group("/professional")
			professional.Use(middleware.RequireRoles(
				identity.RoleProfessional, identity.RoleEstablishment))
			{
				professional.GET("/dashboard", professionalHandler.Dashboard)
				professional.GET("/schedule", professionalHandler.Schedule)
				professional.GET("/commissions", professionalHandler.Commissions)
				professional.GET("/clients", professionalHandler.ClientsServed)
			}

			// ------------------------------
			// ESTABLISHMENT
			// ------------------------------
			establishment := secured.Group("/establishment")
			establishment.Use(middleware.RequireRoles(identity.RoleEstablishment))
			{
				establishment.GET("/dashboard", establishmentHandler.Dashboard)
				establishment.GET("/appointments", establishmentHandler.AppointmentsByPeriod)

				establishment.GET("/employees", establishmentHandler.ListEmployees)
				establishment.POST("/employees", establishmentHandler.CreateEmployee)
				establishment.PATCH("/employees/:id", establishmentHandler.UpdateEmployee)

				establishment.GET("/services", serviceHandler.List)
				establishment.POST("/services", serviceHandler.Create)
				establishment.PATCH("/services/:id", serviceHandler.Update)
				establishment.DELETE("/services/:id", serviceHandler.Deactivate)

				establishment.PUT("/business-hours", businessHoursHandler.Upsert)
				establishment.PUT("/business-hours/week", businessHoursHandler.BulkUpdate)

				establishment.GET("/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// REPORTS
			// ------------------------------
			reports := secured.Group("/reports")
			reports.Use(middleware.RequireRoles(
				identity.RoleProfessional, identity.RoleEstablishment))
			{
				reports.GET("/appointments", reportHandler.AppointmentsByProfessional)
				reports.GET("/commissions", reportHandler.Commissions)
				reports.GET("/summary", reportHandler.DashboardSummary)
			}

			// ------------------------------
			// SUPER ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRoles(identity.RoleSuperAdmin))
			{
				admin.GET("/dashboard", adminHandler.Dashboard)
				admin.GET("/establishments", adminHandler.ListEstablishments)
				admin.GET("/users", adminHandler.ListUsers)
				admin.PATCH("/users/:id/status", adminHandler.ToggleAccountStatus)
				admin.DELETE("/users/:id", adminHandler.DeactivateAccount)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
