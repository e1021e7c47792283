package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/api/http/handlers"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/auth"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Grievances     *handlers.GrievancesHandler
	Escalations    *handlers.EscalationsHandler
	Reference      *handlers.ReferenceHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Ticket-scoped routes put the
// ticket ID in a trailing wildcard because ticket IDs contain slashes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verify-otp", cfg.Auth.VerifyOTP)

	app.Get("/departments", cfg.Reference.ListDepartments)
	app.Get("/departments/:id/categories", cfg.Reference.ListCategories)

	grievances := app.Group("/grievances")
	grievances.Post("/", cfg.Grievances.Create)
	grievances.Get("/track/*", cfg.Grievances.Get)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/grievances", cfg.Grievances.List)
	protected.Get("/departments/:id/workers", cfg.Reference.ListWorkers)

	bearer := protected.Group("", auth.RequireRole(domain.RoleOfficeBearer, domain.RoleAdmin))
	bearer.Post("/grievances/assign/*", cfg.Grievances.Assign)
	bearer.Post("/grievances/resolve/*", cfg.Grievances.Resolve)
	bearer.Post("/grievances/transfer/*", cfg.Grievances.Transfer)
	bearer.Post("/workers", cfg.Reference.CreateWorker)

	authority := protected.Group("", auth.RequireRole(domain.RoleApprovingAuthority))
	authority.Post("/grievances/revert-to-bearer/*", cfg.Grievances.RevertToOfficeBearer)

	admin := protected.Group("", auth.RequireRole(domain.RoleAdmin))
	admin.Post("/grievances/revert-to-authority/*", cfg.Grievances.RevertToAuthority)
	admin.Post("/departments", cfg.Reference.CreateDepartment)
	admin.Post("/categories", cfg.Reference.CreateCategory)
	admin.Post("/internal/escalations/sweep", cfg.Escalations.RunSweep)
}
