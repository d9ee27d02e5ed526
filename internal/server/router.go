// Package server wires handlers, middleware and route groups into the
// gin engine.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elouannasse/fleet-management/internal/handlers"
	"github.com/elouannasse/fleet-management/internal/middleware"
	"github.com/elouannasse/fleet-management/internal/models"
)

// Handlers bundles every route handler the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Trucks       *handlers.TruckHandler
	Trailers     *handlers.TrailerHandler
	Tires        *handlers.TireHandler
	Rules        *handlers.RuleHandler
	Alerts       *handlers.AlertHandler
	Maintenances *handlers.MaintenanceHandler
	Trips        *handlers.TripHandler
	Users        *handlers.UserHandler
	Reports      *handlers.ReportHandler
}

// NewRouter builds the gin engine with all API routes mounted under /api.
func NewRouter(h Handlers, authMW *middleware.AuthMiddleware, frontendURL string) *gin.Engine {
	handlers.RegisterValidations()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(frontendURL))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", authMW.Authenticate(), h.Auth.Me)
	}

	protect := api.Group("")
	protect.Use(authMW.Authenticate())

	trucks := protect.Group("/trucks")
	{
		trucks.GET("", h.Trucks.List)
		trucks.GET("/available", h.Trucks.Available)
		trucks.GET("/:id", h.Trucks.Get)
		trucks.POST("", authMW.RequireAdmin(), h.Trucks.Create)
		trucks.PUT("/:id", authMW.RequireAdmin(), h.Trucks.Update)
		trucks.DELETE("/:id", authMW.RequireAdmin(), h.Trucks.Delete)
	}

	trailers := protect.Group("/trailers")
	{
		trailers.GET("", h.Trailers.List)
		trailers.GET("/available", h.Trailers.Available)
		trailers.GET("/:id", h.Trailers.Get)
		trailers.POST("", authMW.RequireAdmin(), h.Trailers.Create)
		trailers.PUT("/:id", authMW.RequireAdmin(), h.Trailers.Update)
		trailers.DELETE("/:id", authMW.RequireAdmin(), h.Trailers.Delete)
	}

	tires := protect.Group("/tires")
	{
		tires.GET("", h.Tires.List)
		tires.GET("/vehicle/:kind/:vehicleId", h.Tires.ByVehicle)
		tires.GET("/:id", h.Tires.Get)
		tires.PATCH("/:id/condition", h.Tires.UpdateCondition)
		tires.POST("", authMW.RequireAdmin(), h.Tires.Create)
		tires.PUT("/:id", authMW.RequireAdmin(), h.Tires.Update)
		tires.DELETE("/:id", authMW.RequireAdmin(), h.Tires.Delete)
	}

	rules := protect.Group("/maintenance-rules", authMW.RequireAdmin())
	{
		rules.GET("", h.Rules.List)
		rules.GET("/:id", h.Rules.Get)
		rules.POST("", h.Rules.Create)
		rules.PUT("/:id", h.Rules.Update)
		rules.PATCH("/:id/toggle", h.Rules.Toggle)
		rules.DELETE("/:id", h.Rules.Delete)
	}

	alerts := protect.Group("/maintenance-alerts", authMW.RequireAdmin())
	{
		alerts.GET("", h.Alerts.List)
		alerts.GET("/stats", h.Alerts.Stats)
		alerts.GET("/:id", h.Alerts.Get)
		alerts.POST("/check", h.Alerts.Check)
		alerts.PATCH("/:id/read", h.Alerts.MarkRead)
		alerts.PATCH("/:id/treat", h.Alerts.MarkTreated)
		alerts.DELETE("/:id", h.Alerts.Delete)
	}

	maintenances := protect.Group("/maintenances", authMW.RequireAdmin())
	{
		maintenances.GET("", h.Maintenances.List)
		maintenances.GET("/stats", h.Maintenances.Stats)
		maintenances.GET("/vehicle/:kind/:vehicleId", h.Maintenances.ByVehicle)
		maintenances.GET("/:id", h.Maintenances.Get)
		maintenances.POST("", h.Maintenances.Create)
		maintenances.PUT("/:id", h.Maintenances.Update)
		maintenances.PATCH("/:id/status", h.Maintenances.UpdateStatus)
		maintenances.DELETE("/:id", h.Maintenances.Delete)
	}

	trips := protect.Group("/trips")
	{
		trips.GET("", h.Trips.List)
		trips.GET("/my", authMW.RequireRoles(models.RoleDriver, models.RoleAdmin), h.Trips.My)
		trips.GET("/stats", authMW.RequireAdmin(), h.Trips.Stats)
		trips.GET("/:id", h.Trips.Get)
		trips.POST("", authMW.RequireAdmin(), h.Trips.Create)
		trips.PUT("/:id", authMW.RequireAdmin(), h.Trips.Update)
		trips.PATCH("/:id/status", h.Trips.UpdateStatus)
		trips.DELETE("/:id", authMW.RequireAdmin(), h.Trips.Delete)
	}

	users := protect.Group("/users")
	{
		users.GET("/drivers", h.Users.Drivers)
		users.GET("", authMW.RequireAdmin(), h.Users.List)
		users.GET("/:id", authMW.RequireAdmin(), h.Users.Get)
		users.PUT("/:id", authMW.RequireAdmin(), h.Users.Update)
		users.DELETE("/:id", authMW.RequireAdmin(), h.Users.Delete)
	}

	reports := protect.Group("/reports", authMW.RequireAdmin())
	{
		reports.GET("/consumption", h.Reports.Consumption)
		reports.GET("/kilometrage", h.Reports.Kilometrage)
		reports.GET("/maintenance", h.Reports.Maintenance)
		reports.GET("/dashboard", h.Reports.Dashboard)
		reports.GET("/vehicles/export", h.Reports.ExportVehicles)
	}

	return r
}
