package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/slots"
)

// Deps are the singletons built in main and shared with the jobs.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Locker   lock.Locker
	Audit    *audit.Dispatcher
	Notifier booking.Notifier
	Checkout *payment.Checkout
	Today    timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	resolver := availability.NewResolver(schedulingRepo, d.Today)
	mutator := slots.NewMutator(schedulingRepo, d.Audit)

	bookUC := booking.NewBookAppointment(schedulingRepo, d.Locker, d.Audit, d.Notifier, d.Today)
	listByDateUC := booking.NewListAppointmentsByDate(schedulingRepo)
	setStatusUC := booking.NewUpdateAppointmentStatus(schedulingRepo, d.Audit)
	reconcileUC := booking.NewReconcileConsumptions(schedulingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	publicHandler := handlers.NewPublicHandler(resolver, bookUC, catalogRepo, d.Checkout)
	slotsHandler := handlers.NewSlotsHandler(mutator)
	appointmentHandler := handlers.NewAppointmentHandler(listByDateUC, setStatusUC, reconcileUC)
	serviceHandler := handlers.NewServiceHandler(catalogRepo, d.Audit)
	settingsHandler := handlers.NewSettingsHandler(catalogRepo, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/services", publicHandler.ListServices)
			public.GET("/services/:id/dates", publicHandler.Dates)
			public.GET("/services/:id/times", publicHandler.Times)
			public.GET("/services/:id/suggestion", publicHandler.Suggestion)
			public.GET("/settings", publicHandler.Settings)

			public.POST("/appointments", publicHandler.Book)
			public.POST("/appointments/:id/checkout", publicHandler.Checkout)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Config), middleware.RequireAdmin())
		{
			admin.GET("/me", authHandler.Me)

			admin.GET("/slots", slotsHandler.ListGeneral)
			admin.POST("/slots", slotsHandler.AddGeneral)
			admin.DELETE("/slots/:id", slotsHandler.RemoveGeneral)
			admin.PATCH("/slots/:id/availability", slotsHandler.ToggleGeneral)
			admin.PATCH("/slot-availability", slotsHandler.ToggleGeneralByTime)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.GET("/services/:id", serviceHandler.Get)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.GET("/services/:id/slots", slotsHandler.ListService)
			admin.POST("/services/:id/slots", slotsHandler.AddService)
			admin.DELETE("/services/:id/slots/:slotId", slotsHandler.RemoveService)
			admin.PATCH("/service-slots/:id/availability", slotsHandler.ToggleService)
			admin.PATCH("/availability", slotsHandler.Toggle)

			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			admin.POST("/consumptions/reconcile", appointmentHandler.Reconcile)

			admin.GET("/settings", settingsHandler.Get)
			admin.PATCH("/settings", settingsHandler.Update)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
