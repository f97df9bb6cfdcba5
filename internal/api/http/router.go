package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-crm/internal/api/http/handlers"
	"github.com/spec-kit/field-crm/internal/auth"
	"github.com/spec-kit/field-crm/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	SolarLeads     *handlers.LeadsHandler
	SprinklerLeads *handlers.LeadsHandler
	Followups      *handlers.FollowupsHandler
	Services       *handlers.ServicesHandler
	Tickets        *handlers.TicketsHandler
	Proposals      *handlers.ProposalsHandler
	Customers      *handlers.CustomersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register-admin", cfg.Auth.RegisterAdmin)

	profile := authGroup.Group("", cfg.AuthMiddleware.Handle)
	profile.Get("/profile", cfg.Auth.Profile)
	profile.Put("/profile", cfg.Auth.UpdateProfile)
	profile.Post("/change-password", cfg.Auth.ChangePassword)

	staff := api.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	staff.Post("/", cfg.Staff.Create)
	staff.Get("/", cfg.Staff.List)
	staff.Get("/:id", cfg.Staff.Get)
	staff.Put("/:id", cfg.Staff.Update)
	staff.Patch("/:id/status", cfg.Staff.SetStatus)
	staff.Delete("/:id", cfg.Staff.Delete)

	registerLeadRoutes(api, "/solar-leads", cfg.SolarLeads, cfg.Followups, domain.KindSolarLead, cfg.AuthMiddleware)
	sprinkler := registerLeadRoutes(api, "/sprinkler-leads", cfg.SprinklerLeads, cfg.Followups, domain.KindSprinklerLead, cfg.AuthMiddleware)
	sprinkler.Post("/:id/review", cfg.SprinklerLeads.AddReview)

	followups := api.Group("/followups", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin, domain.RoleSales))
	followups.Get("/", cfg.Followups.List)
	followups.Get("/:id", cfg.Followups.Get)
	followups.Put("/:id", cfg.Followups.Update)
	followups.Delete("/:id", cfg.Followups.Delete)

	services := api.Group("/services", cfg.AuthMiddleware.Handle)
	services.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Services.Create)
	services.Get("/", auth.RequireRole(domain.RoleAdmin, domain.RoleService), cfg.Services.List)
	services.Get("/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleService), cfg.Services.Get)
	services.Put("/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleService), cfg.Services.Update)
	services.Patch("/:id/assign", auth.RequireRole(domain.RoleAdmin), cfg.Services.Assign)
	services.Post("/:id/payment", auth.RequireRole(domain.RoleAdmin, domain.RoleService), cfg.Services.AddPayment)
	services.Post("/:id/photos", auth.RequireRole(domain.RoleAdmin, domain.RoleService), cfg.Services.UploadPhotos)
	services.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Services.Delete)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", auth.RequireRole(domain.RoleAdmin, domain.RoleSales), cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.Delete)

	customers := api.Group("/customers", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin, domain.RoleSales))
	customers.Post("/", cfg.Customers.Create)
	customers.Get("/", cfg.Customers.List)
	customers.Get("/:id", cfg.Customers.Get)
	customers.Put("/:id", cfg.Customers.Update)
	customers.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Customers.Delete)

	proposals := api.Group("/proposals", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin, domain.RoleSales))
	proposals.Post("/", cfg.Proposals.Create)
	proposals.Get("/", cfg.Proposals.List)
	proposals.Get("/:id", cfg.Proposals.Get)
	proposals.Put("/:id", cfg.Proposals.Update)
	proposals.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Proposals.Delete)
}

func registerLeadRoutes(api fiber.Router, prefix string, leads *handlers.LeadsHandler, followups *handlers.FollowupsHandler, kind domain.WorkItemKind, authMiddleware *auth.AuthMiddleware) fiber.Router {
	group := api.Group(prefix, authMiddleware.Handle, auth.RequireRole(domain.RoleAdmin, domain.RoleSales))
	group.Post("/", leads.Create)
	group.Get("/", leads.List)
	group.Get("/:id", leads.Get)
	group.Put("/:id", leads.Update)
	group.Patch("/:id/assign", leads.Assign)
	group.Delete("/:id", leads.Delete)
	group.Post("/:id/followups", followups.Add(kind))
	group.Get("/:id/followups", followups.ListByLead)
	return group
}
