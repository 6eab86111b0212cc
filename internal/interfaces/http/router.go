package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/licitapro/licitaciones-api/internal/application/auth"
	"github.com/licitapro/licitaciones-api/internal/application/billing"
	"github.com/licitapro/licitaciones-api/internal/application/entitlement"
	"github.com/licitapro/licitaciones-api/internal/application/permission"
	"github.com/licitapro/licitaciones-api/internal/application/usecase"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *usecase.CompanyUseCase
	UserUC          *usecase.UserUseCase
	TenderUC        *usecase.TenderUseCase
	Catalog         *entitlement.Catalog
	Store           *entitlement.Store
	Calculator      *billing.Calculator
	Resolver        *permission.Resolver
	EntitlementRepo repository.EntitlementRepository
	JWTSecret       string
}

// Router registra las rutas de la API. El orden de middlewares en las rutas
// protegidas es fijo: AuthMiddleware extrae la identidad del JWT y
// PermissionMiddleware resuelve el PermissionSet una sola vez; los gates
// RequireModule/RequireCompanyAdmin/RequireSuperAdmin consumen ese set.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo de módulos (público: es la oferta comercial, no datos de tenant)
	moduleHandler := NewModuleHandler(deps.Catalog, deps.Store, deps.EntitlementRepo)
	api.Get("/modules", moduleHandler.Catalog)

	// Rutas protegidas (Bearer Token + PermissionSet resuelto)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), PermissionMiddleware(deps.Resolver))

	// Vista de permisos del usuario autenticado
	protected.Get("/me/permissions", moduleHandler.MyPermissions)

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", RequireSuperAdmin(), companyHandler.Create)
	companies.Get("/", RequireSuperAdmin(), companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Entitlements por empresa (toggle UI + auditoría)
	companies.Get("/:id/modules", moduleHandler.CompanyModules)
	companies.Put("/:id/modules/:name", RequireCompanyAdmin(), moduleHandler.Toggle)
	companies.Post("/:id/modules/setup", RequireSuperAdmin(), moduleHandler.BulkSetup)
	companies.Get("/:id/entitlements", RequireCompanyAdmin(), moduleHandler.Entitlements)

	// Facturación por empresa; los overrides de precio son operación de plataforma
	billingHandler := NewBillingHandler(deps.Calculator)
	companies.Get("/:id/billing", RequireCompanyAdmin(), billingHandler.Summary)
	companies.Put("/:id/pricing/:name", RequireSuperAdmin(), billingHandler.SetCustomPrice)
	companies.Delete("/:id/pricing/:name", RequireSuperAdmin(), billingHandler.RemoveCustomPrice)

	// Users (gated por user_management)
	users := protected.Group("/users", RequireModule(entity.ModuleUserManagement))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/status", userHandler.SetStatus)

	// Tenders (gated por tender_management; las notas además por notes)
	tenders := protected.Group("/tenders", RequireModule(entity.ModuleTenderManagement))
	tenderHandler := NewTenderHandler(deps.TenderUC)
	tenders.Post("/", tenderHandler.Create)
	tenders.Get("/", tenderHandler.List)
	tenders.Get("/:id", tenderHandler.GetByID)
	tenders.Put("/:id", tenderHandler.Update)
	tenders.Delete("/:id", tenderHandler.Delete)
	tenders.Post("/:id/notes", RequireModule(entity.ModuleNotes), tenderHandler.AddNote)
	tenders.Get("/:id/notes", RequireModule(entity.ModuleNotes), tenderHandler.ListNotes)
}
