package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/application/usecase"
)

// PublicHandler rutas sin autenticación: catálogo, historias por empresa,
// actividad reciente de la portada y perfil público de empresa.
type PublicHandler struct {
	offers    *usecase.OfferUseCase
	companies *usecase.CompanyUseCase
	locations *usecase.LocationUseCase
	dashboard *usecase.DashboardUseCase
}

// NewPublicHandler construye el handler con los casos de uso de lectura pública.
func NewPublicHandler(offers *usecase.OfferUseCase, companies *usecase.CompanyUseCase,
	locations *usecase.LocationUseCase, dashboard *usecase.DashboardUseCase) *PublicHandler {
	return &PublicHandler{offers: offers, companies: companies, locations: locations, dashboard: dashboard}
}

// Catalog godoc
// @Summary      Catálogo público de ofertas vigentes
// @Tags         public
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        search       query  string  false  "Buscar en título y descripción"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OfferListResponse
// @Router       /api/public/offers [get]
func (h *PublicHandler) Catalog(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.offers.PublicCatalog(c.Context(), c.Query("category_id"), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CompanyStory godoc
// @Summary      Feed de historias de una empresa (flash primero)
// @Tags         public
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.OfferListResponse
// @Router       /api/public/companies/{id}/story [get]
func (h *PublicHandler) CompanyStory(c *fiber.Ctx) error {
	out, err := h.offers.CompanyStory(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CompanyBySlug godoc
// @Summary      Perfil público de empresa por slug
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Slug de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Router       /api/public/companies/{slug} [get]
func (h *PublicHandler) CompanyBySlug(c *fiber.Ctx) error {
	out, err := h.companies.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CompanyLocations godoc
// @Summary      Locales activos de una empresa
// @Tags         public
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/public/companies/{id}/locations [get]
func (h *PublicHandler) CompanyLocations(c *fiber.Ctx) error {
	out, err := h.locations.ListPublicByCompany(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecentActivity godoc
// @Summary      Actividad reciente de la portada (empresas con ofertas vigentes)
// @Tags         public
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200  {array}  dto.CompanyActivityResponse
// @Router       /api/public/activity [get]
func (h *PublicHandler) RecentActivity(c *fiber.Ctx) error {
	out, err := h.dashboard.RecentActivity(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
