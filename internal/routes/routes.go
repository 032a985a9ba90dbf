package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/audit"
	"github.com/BruksfildServices01/registrar-queue/internal/auth"
	"github.com/BruksfildServices01/registrar-queue/internal/config"
	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/registrar-queue/internal/domain/user"
	"github.com/BruksfildServices01/registrar-queue/internal/handlers"
	"github.com/BruksfildServices01/registrar-queue/internal/infra/lock"
	"github.com/BruksfildServices01/registrar-queue/internal/metrics"
	"github.com/BruksfildServices01/registrar-queue/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/registrar-queue/internal/usecase/appointment"
	ucQueue "github.com/BruksfildServices01/registrar-queue/internal/usecase/queue"
	"github.com/BruksfildServices01/registrar-queue/internal/validators"
)

// Stores groups the repositories one backend provides.
type Stores struct {
	Appointments domain.Repository
	Users        user.Repository
	Catalog      catalog.Repository
	Audit        audit.Repository
}

type Deps struct {
	Config      *config.Config
	Stores      Stores
	Locker      lock.Locker
	Issuer      *auth.Issuer
	Audit       *audit.Dispatcher
	Metrics     metrics.Recorder
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
	Ping        handlers.Pinger
	Log         zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.Recovery(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(d.Config.CORSAllowedOrigin),
	)

	rec := d.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}

	// ======================================================
	// QUEUE ENGINE
	// ======================================================
	engine := ucQueue.NewEngine(
		d.Stores.Appointments,
		d.Locker,
		rec,
		d.Log,
	)

	// ======================================================
	// USE CASES
	// ======================================================
	opts := []ucAppointment.Option{ucAppointment.WithMetrics(rec)}

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		d.Stores.Appointments,
		engine,
		d.Audit,
		opts...,
	)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		d.Stores.Appointments,
		engine,
		d.Audit,
		d.Config.RenumberOnUpdate,
		opts...,
	)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		d.Stores.Appointments,
		engine,
		d.Audit,
		opts...,
	)
	getAppointmentUC := ucAppointment.NewGetAppointment(d.Stores.Appointments)
	listMyAppointmentsUC := ucAppointment.NewListMyAppointments(d.Stores.Appointments)
	listAllAppointmentsUC := ucAppointment.NewListAllAppointments(d.Stores.Appointments)

	currentQueueUC := ucQueue.NewGetCurrentQueue(d.Stores.Appointments)
	globalQueueUC := ucQueue.NewGetGlobalQueue(d.Stores.Appointments, engine)

	// ======================================================
	// HANDLERS
	// ======================================================
	checkDomain := validators.AnyEmailDomain
	if d.Config.CheckEmailDomain {
		checkDomain = validators.IsEmailDomainValid
	}

	authHandler := handlers.NewAuthHandler(d.Stores.Users, d.Issuer, d.Audit, checkDomain, d.Log)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		getAppointmentUC,
		listMyAppointmentsUC,
		listAllAppointmentsUC,
		d.Log,
	)
	queueHandler := handlers.NewQueueHandler(currentQueueUC, globalQueueUC, d.Log)
	serviceHandler := handlers.NewServiceHandler(d.Stores.Catalog, d.Audit, d.Log)
	availabilityHandler := handlers.NewAvailabilityHandler(d.Stores.Catalog, d.Audit, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Stores.Audit, d.Log)
	healthHandler := handlers.NewHealthHandler(d.Ping, d.Log)

	authMW := middleware.AuthMiddleware(d.Issuer)

	// ======================================================
	// HEALTH / METRICS
	// ======================================================
	r.GET("/health", healthHandler.Check)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(d.Gatherer)))
	}

	api := r.Group("/api")
	api.GET("/health", healthHandler.Check)

	// ======================================================
	// AUTH
	// ======================================================
	authGroup := api.Group("/auth")
	if d.RateLimiter != nil {
		authGroup.POST("/signup", d.RateLimiter.Middleware(), authHandler.Signup)
		authGroup.POST("/login", d.RateLimiter.Middleware(), authHandler.Login)
	} else {
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}
	authGroup.GET("/me", authMW, authHandler.Me)

	// ======================================================
	// PUBLIC CATALOG
	// ======================================================
	api.GET("/services", serviceHandler.List)
	api.GET("/services/:id", serviceHandler.Get)
	api.GET("/availability", availabilityHandler.List)

	// ======================================================
	// APPOINTMENTS
	// ======================================================
	appointments := api.Group("/appointments", authMW)
	appointments.POST("", appointmentHandler.Create)
	appointments.GET("/my-appointments", appointmentHandler.ListMine)
	appointments.GET("/:id", appointmentHandler.Get)
	appointments.PUT("/:id", appointmentHandler.Update)
	appointments.DELETE("/:id", appointmentHandler.Cancel)

	// ======================================================
	// QUEUE
	// ======================================================
	queue := api.Group("/queue", authMW)
	queue.GET("/current", queueHandler.Current)
	queue.GET("/all", middleware.AdminOnly(), queueHandler.All)

	// ======================================================
	// ADMIN
	// ======================================================
	admin := api.Group("/admin", authMW, middleware.AdminOnly())
	admin.GET("/services", serviceHandler.List)
	admin.POST("/services", serviceHandler.Create)
	admin.PUT("/services/:id", serviceHandler.Update)
	admin.DELETE("/services/:id", serviceHandler.Delete)

	admin.GET("/availability", availabilityHandler.List)
	admin.POST("/availability", availabilityHandler.Upsert)
	admin.DELETE("/availability/:id", availabilityHandler.Delete)

	admin.GET("/appointments", appointmentHandler.ListAll)
	admin.GET("/audit-logs", auditLogsHandler.List)
}
