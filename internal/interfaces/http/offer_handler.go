package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/application/usecase"
)

// OfferHandler maneja las peticiones HTTP para el recurso Offer. Las altas y
// updates llegan por multipart/form-data por la imagen.
type OfferHandler struct {
	uc *usecase.OfferUseCase
}

// NewOfferHandler construye el handler inyectando el caso de uso.
func NewOfferHandler(uc *usecase.OfferUseCase) *OfferHandler {
	return &OfferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear oferta
// @Tags         offers
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  dto.OfferResponse
// @Failure      403  {object}  dto.ErrorResponse  "Tope de ofertas activas del plan alcanzado"
// @Router       /api/offers [post]
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	in := dto.CreateOfferRequest{
		LocationID:   c.FormValue("location_id"),
		CategoryID:   c.FormValue("category_id"),
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		DiscountText: c.FormValue("discount_text"),
		PromoType:    c.FormValue("promo_type"),
	}
	var err error
	if in.PriceNormal, err = parseDecimal(c.FormValue("price_normal")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "price_normal inválido"})
	}
	if in.PriceOffer, err = parseDecimal(c.FormValue("price_offer")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "price_offer inválido"})
	}
	if in.StartDate, err = parseDate(c.FormValue("start_date")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "start_date inválido"})
	}
	if in.EndDate, err = parseDate(c.FormValue("end_date")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "end_date inválido"})
	}
	in.IsVisible = parseOptionalBool(c.FormValue("is_visible"))
	in.IsFeatured = parseOptionalBool(c.FormValue("is_featured"))
	if in.Image, err = readImage(c); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "imagen inválida"})
	}

	out, err := h.uc.Create(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener oferta por ID
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Router       /api/offers/{id} [get]
func (h *OfferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ofertas del alcance del llamante
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        search       query  string  false  "Buscar en título y descripción"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OfferListResponse
// @Router       /api/offers [get]
func (h *OfferHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), GetPrincipal(c), c.Query("category_id"), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar oferta (parcial)
// @Tags         offers
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Router       /api/offers/{id} [put]
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOfferRequest
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera multipart/form-data"})
	}
	field := func(name string) *string {
		if vs, ok := form.Value[name]; ok && len(vs) > 0 {
			return &vs[0]
		}
		return nil
	}
	in.Title = field("title")
	in.Description = field("description")
	in.DiscountText = field("discount_text")
	in.CategoryID = field("category_id")
	in.PromoType = field("promo_type")
	if v := field("price_normal"); v != nil {
		d, err := parseDecimal(*v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "price_normal inválido"})
		}
		in.PriceNormal = &d
	}
	if v := field("price_offer"); v != nil {
		d, err := parseDecimal(*v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "price_offer inválido"})
		}
		in.PriceOffer = &d
	}
	// Campo presente pero vacío = borrar la fecha; ausente = sin cambio.
	if v := field("start_date"); v != nil {
		if *v == "" {
			in.ClearStartDate = true
		} else if in.StartDate, err = parseDate(*v); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "start_date inválido"})
		}
	}
	if v := field("end_date"); v != nil {
		if *v == "" {
			in.ClearEndDate = true
		} else if in.EndDate, err = parseDate(*v); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "end_date inválido"})
		}
	}
	if in.Image, err = readImage(c); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "imagen inválida"})
	}

	out, err := h.uc.Update(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetVisible godoc
// @Summary      Mostrar u ocultar oferta
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la oferta"
// @Param        body  body  object{visible=bool}  true  "Visibilidad deseada"
// @Success      200   {object}  dto.OfferResponse
// @Failure      403   {object}  dto.ErrorResponse  "Reactivar excedería el tope del plan"
// @Router       /api/offers/{id}/visibility [patch]
func (h *OfferHandler) SetVisible(c *fiber.Ctx) error {
	var in struct {
		Visible *bool `json:"visible"`
	}
	if err := c.BodyParser(&in); err != nil || in.Visible == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se requiere visible (bool)"})
	}
	out, err := h.uc.SetVisible(c.Context(), GetPrincipal(c), c.Params("id"), *in.Visible)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetFeatured godoc
// @Summary      Destacar o quitar destacado de oferta
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la oferta"
// @Param        body  body  object{featured=bool}  true  "Destacado deseado"
// @Success      200   {object}  dto.OfferResponse
// @Failure      403   {object}  dto.ErrorResponse  "Tope de destacadas del plan alcanzado"
// @Router       /api/offers/{id}/featured [patch]
func (h *OfferHandler) SetFeatured(c *fiber.Ctx) error {
	var in struct {
		Featured *bool `json:"featured"`
	}
	if err := c.BodyParser(&in); err != nil || in.Featured == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se requiere featured (bool)"})
	}
	out, err := h.uc.SetFeatured(c.Context(), GetPrincipal(c), c.Params("id"), *in.Featured)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar oferta (borrado lógico, terminal)
// @Tags         offers
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la oferta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse  "No existe o ya fue borrada"
// @Router       /api/offers/{id} [delete]
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── helpers de parseo de formulario ──

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// parseDate acepta fecha sola (2006-01-02) o RFC3339. Vacío = nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("fecha inválida: %q", s)
}

func parseOptionalBool(s string) *bool {
	switch s {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

// readImage lee el archivo "image" del multipart si se subió. nil sin error
// cuando no hay imagen.
func readImage(c *fiber.Ctx) (*dto.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil // campo ausente
	}
	data, err := readMultipartFile(fh)
	if err != nil {
		return nil, err
	}
	return &dto.ImageUpload{Data: data, Filename: fh.Filename}, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
