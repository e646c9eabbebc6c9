package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tu-usuario/ofertas-pro/internal/application/auth"
	"github.com/tu-usuario/ofertas-pro/internal/application/usecase"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CompanyUC   *usecase.CompanyUseCase
	LocationUC  *usecase.LocationUseCase
	OfferUC     *usecase.OfferUseCase
	UserUC      *usecase.UserUseCase
	CategoryUC  *usecase.CategoryUseCase
	DashboardUC *usecase.DashboardUseCase
	JWTSecret   string
	Media       config.MediaConfig
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(MetricsMiddleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Use(swagger.New(swagger.Config{
		BasePath: "/api/docs",
		FilePath: "./docs/swagger.json",
		Path:     "",
		Title:    "Ofertas Pro API",
	}))

	// Imágenes subidas (ofertas, logos)
	app.Static(deps.Media.BaseURL, deps.Media.UploadDir)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas públicas del marketplace (sin token)
	publicHandler := NewPublicHandler(deps.OfferUC, deps.CompanyUC, deps.LocationUC, deps.DashboardUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	public := api.Group("/public")
	public.Get("/offers", publicHandler.Catalog)
	public.Get("/activity", publicHandler.RecentActivity)
	public.Get("/companies/slug/:slug", publicHandler.CompanyBySlug)
	public.Get("/companies/:id/story", publicHandler.CompanyStory)
	public.Get("/companies/:id/locations", publicHandler.CompanyLocations)
	api.Get("/categories", categoryHandler.List)
	api.Get("/categories/:id", categoryHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Dashboard (cualquier rol autenticado; el alcance filtra)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Stats)

	// Offers (superadmin, owner y manager; el alcance decide qué filas)
	offers := protected.Group("/offers")
	offerHandler := NewOfferHandler(deps.OfferUC)
	offers.Post("/", offerHandler.Create)
	offers.Get("/", offerHandler.List)
	offers.Get("/:id", offerHandler.GetByID)
	offers.Put("/:id", offerHandler.Update)
	offers.Patch("/:id/visibility", offerHandler.SetVisible)
	offers.Patch("/:id/featured", offerHandler.SetFeatured)
	offers.Delete("/:id", offerHandler.Delete)

	// Companies (lectura para owner; escritura solo superadmin)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/", RequireRole(entity.RoleSuperadmin), companyHandler.Create)
	companies.Put("/:id", RequireRole(entity.RoleSuperadmin), companyHandler.Update)
	companies.Delete("/:id", RequireRole(entity.RoleSuperadmin), companyHandler.Delete)

	// Locations (superadmin y owner; manager nunca)
	locations := protected.Group("/locations", RequireRole(entity.RoleSuperadmin, entity.RoleOwner))
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Users (superadmin y owner; el caso de uso restringe a managers para owner)
	users := protected.Group("/users", RequireRole(entity.RoleSuperadmin, entity.RoleOwner))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
