package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/auth"
	"github.com/BruksfildServices01/workforce-scheduler/internal/config"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/handlers"
	"github.com/BruksfildServices01/workforce-scheduler/internal/infra/ratelimit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/logger"
	"github.com/BruksfildServices01/workforce-scheduler/internal/middleware"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	ucAccount "github.com/BruksfildServices01/workforce-scheduler/internal/usecase/account"
	ucBusiness "github.com/BruksfildServices01/workforce-scheduler/internal/usecase/business"
	ucSchedule "github.com/BruksfildServices01/workforce-scheduler/internal/usecase/schedule"
	ucStaff "github.com/BruksfildServices01/workforce-scheduler/internal/usecase/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/validators"
	"github.com/BruksfildServices01/workforce-scheduler/internal/web"
)

type AuditRepository interface {
	audit.Store
	audit.Reader
}

// Repositories are the storage ports every use case is built on.
type Repositories struct {
	Accounts   account.Repository
	Businesses business.Repository
	Staff      staff.Repository
	Schedules  schedule.Repository
	AuditLogs  AuditRepository
}

// Deps is everything the router needs. Archiver and Gateway are optional.
type Deps struct {
	Config    *config.Config
	Log       zerolog.Logger
	Repos     Repositories
	Audit     *audit.Dispatcher
	Tokens    *auth.TokenService
	Generator schedule.Generator
	Archiver  schedule.Archiver
	Gateway   business.Gateway
	RateStore ratelimit.Store
	DBPing    handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	validators.Register()

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.Recovery(d.Log),
		logger.GinLogger(d.Log),
		middleware.SecurityHeaders(d.Config.IsProduction()),
		middleware.CORS(d.Config.CORS),
		middleware.ErrorHandler(d.Log),
	)

	// ======================================================
	// USE CASES
	// ======================================================
	repos := d.Repos

	accountService := ucAccount.NewService(
		repos.Accounts,
		repos.Businesses,
		d.Tokens,
		d.Audit,
		ucAccount.Options{
			BcryptCost:       d.Config.Security.BcryptCost,
			CheckEmailDomain: d.Config.Security.CheckEmailDomain,
		},
	)

	businessService := ucBusiness.NewService(
		repos.Businesses,
		repos.Accounts,
		repos.Staff,
		repos.Schedules,
		d.Gateway,
		d.Audit,
		d.Log,
	)

	staffService := ucStaff.NewService(
		repos.Staff,
		repos.Businesses,
		repos.Accounts,
		d.Audit,
	)

	generateUC := ucSchedule.NewGenerateSchedule(
		repos.Schedules,
		repos.Staff,
		repos.Businesses,
		d.Generator,
		d.Audit,
	)
	getUC := ucSchedule.NewGetSchedule(repos.Schedules)
	listUC := ucSchedule.NewListSchedules(repos.Schedules)
	listStaffUC := ucSchedule.NewListStaffSchedules(repos.Schedules)
	updateUC := ucSchedule.NewUpdateSchedule(repos.Schedules, d.Audit)
	publishUC := ucSchedule.NewPublishSchedule(repos.Schedules, d.Archiver, d.Audit, d.Log)
	deleteUC := ucSchedule.NewDeleteSchedule(repos.Schedules, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accountService)
	businessHandler := handlers.NewBusinessHandler(businessService)
	staffHandler := handlers.NewStaffHandler(staffService)
	scheduleHandler := handlers.NewScheduleHandler(
		generateUC,
		getUC,
		listUC,
		listStaffUC,
		updateUC,
		publishUC,
		deleteUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(repos.AuditLogs)
	billingHandler := handlers.NewBillingHandler(businessService, d.Log)
	healthHandler := handlers.NewHealthHandler(d.Config.Server.Environment, d.DBPing)
	webHandler := handlers.NewWebHandler()

	// ======================================================
	// GUARDS
	// ======================================================
	protect := middleware.Protect(d.Tokens, repos.Accounts)
	ownerOrAdmin := middleware.Authorize(models.RoleOwner, models.RoleAdmin)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	businessOwner := middleware.AuthorizeBusinessOwner(middleware.FromParam("id"))
	businessOwnerParam := middleware.AuthorizeBusinessOwner(middleware.FromParam("businessId"))
	businessMember := middleware.AuthorizeStaffAccess(middleware.FromParam("businessId"))

	staffOwner := middleware.AuthorizeBusinessOwner(middleware.FromStaff(repos.Staff, "id"))
	staffMember := middleware.AuthorizeStaffAccess(middleware.FromStaff(repos.Staff, "id"))
	staffParamMember := middleware.AuthorizeStaffAccess(middleware.FromStaff(repos.Staff, "staffId"))

	scheduleOwner := middleware.AuthorizeBusinessOwner(middleware.FromSchedule(repos.Schedules, "id"))
	scheduleMember := middleware.AuthorizeStaffAccess(middleware.FromSchedule(repos.Schedules, "id"))

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", healthHandler.Check)

	// ======================================================
	// API v1
	// ======================================================
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(d.RateStore, d.Config.RateLimit.Requests, d.Config.RateLimit.Window, d.Log))

	api.GET("/health", healthHandler.Check)
	api.POST("/billing/webhook", billingHandler.Webhook)

	// ---------- auth ----------
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		authGroup.Use(protect)
		authGroup.GET("/me", authHandler.Me)
		authGroup.GET("/sessions", authHandler.Sessions)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/logout-all", authHandler.LogoutAll)
		authGroup.PUT("/profile", authHandler.UpdateProfile)
		authGroup.PUT("/change-password", authHandler.ChangePassword)
	}

	// ---------- business ----------
	businessGroup := api.Group("/business", protect)
	{
		businessGroup.POST("", ownerOrAdmin, businessHandler.Create)
		businessGroup.GET("", businessHandler.Mine)
		businessGroup.GET("/all", adminOnly, businessHandler.List)

		businessGroup.GET("/:id", businessOwner, businessHandler.Get)
		businessGroup.PUT("/:id", businessOwner, businessHandler.Update)
		businessGroup.GET("/:id/stats", businessOwner, businessHandler.Stats)
		businessGroup.GET("/:id/audit-logs", businessOwner, auditLogsHandler.List)

		businessGroup.POST("/:id/roles", businessOwner, businessHandler.AddRole)
		businessGroup.PUT("/:id/roles/:roleId", businessOwner, businessHandler.UpdateRole)
		businessGroup.DELETE("/:id/roles/:roleId", businessOwner, businessHandler.RemoveRole)

		businessGroup.POST("/:id/subscription/checkout", businessOwner, businessHandler.Checkout)
		businessGroup.PUT("/:id/subscription", adminOnly, businessHandler.SetPlan)
	}

	// ---------- staff ----------
	staffGroup := api.Group("/staff", protect)
	{
		staffGroup.GET("/me", middleware.Authorize(models.RoleStaff), staffHandler.Me)

		staffGroup.POST("/business/:businessId", businessOwnerParam, staffHandler.Create)
		staffGroup.GET("/business/:businessId", businessMember, staffHandler.List)

		staffGroup.GET("/:id", staffMember, staffHandler.Get)
		staffGroup.PUT("/:id", staffOwner, staffHandler.Update)
		staffGroup.DELETE("/:id", staffOwner, staffHandler.Deactivate)
		staffGroup.PUT("/:id/availability", staffMember, staffHandler.UpdateAvailability)
		staffGroup.POST("/:id/time-off", staffMember, staffHandler.RequestTimeOff)
		staffGroup.PUT("/:id/time-off/:requestId", staffOwner, staffHandler.DecideTimeOff)
	}

	// ---------- schedule ----------
	scheduleGroup := api.Group("/schedule", protect)
	{
		scheduleGroup.POST("/business/:businessId/generate", businessOwnerParam, scheduleHandler.Generate)
		scheduleGroup.GET("/business/:businessId", businessMember, scheduleHandler.List)
		scheduleGroup.GET("/staff/:staffId", staffParamMember, scheduleHandler.ForStaff)

		scheduleGroup.GET("/:id", scheduleMember, scheduleHandler.Get)
		scheduleGroup.PUT("/:id", scheduleOwner, scheduleHandler.Update)
		scheduleGroup.POST("/:id/publish", scheduleOwner, scheduleHandler.Publish)
		scheduleGroup.DELETE("/:id", scheduleOwner, scheduleHandler.Delete)
	}

	// ======================================================
	// WEB CLIENT
	// ======================================================
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())

	r.GET("/", webHandler.Root)
	r.GET("/app", webHandler.Page("dashboard"))
	for page := range web.Pages {
		if page == "dashboard" {
			continue
		}
		r.GET("/app/"+page, webHandler.Page(page))
	}

	return nil
}
