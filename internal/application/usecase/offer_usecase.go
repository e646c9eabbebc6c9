package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/offerfeed"
	"github.com/tu-usuario/ofertas-pro/internal/domain/quota"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// OfferUseCase orquesta el ciclo de vida de una oferta:
//
//	Active(visible|oculta, destacada|no) → SoftDeleted (terminal)
//
// Cada operación aplica el orden fijo de compuertas: validación → existencia →
// alcance (AccessScope) → cuota (QuotaEngine) → escritura. Si cualquier
// compuerta falla, el estado queda intacto (todo o nada por operación); los
// chequeos de cuota y la escritura corren dentro de una transacción del
// TxRunner para que el conteo-y-decisión sea serializable en despliegue.
type OfferUseCase struct {
	tx        TxRunner
	offers    repository.OfferRepository
	locations repository.LocationRepository
	companies repository.CompanyRepository
	media     repository.MediaStore
	quota     *quota.Engine

	// Now permite fijar el reloj en tests; nil = time.Now.
	Now func() time.Time
}

// NewOfferUseCase construye el caso de uso con sus puertos.
func NewOfferUseCase(tx TxRunner, offers repository.OfferRepository, locations repository.LocationRepository,
	companies repository.CompanyRepository, media repository.MediaStore, engine *quota.Engine) *OfferUseCase {
	return &OfferUseCase{tx: tx, offers: offers, locations: locations, companies: companies, media: media, quota: engine}
}

func (uc *OfferUseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Create crea una oferta en el local indicado. Requiere alcance de escritura
// sobre el local y cupo de ofertas activas en el plan de la empresa.
func (uc *OfferUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.LocationID == "" {
		missing = append(missing, "location_id")
	}
	if in.CategoryID == "" {
		missing = append(missing, "category_id")
	}
	if in.DiscountText == "" {
		missing = append(missing, "discount_text")
	}
	if len(missing) > 0 {
		return nil, domain.Validation("faltan campos obligatorios", missing...)
	}
	promoType := in.PromoType
	if promoType == "" {
		promoType = entity.PromoRegular
	}
	if !entity.ValidPromoType(promoType) {
		return nil, domain.Validation("promo_type inválido: " + in.PromoType)
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, domain.Validation("end_date no puede ser anterior a start_date")
	}

	loc, err := uc.locations.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, domain.Dependency("consulta de local", err)
	}
	if loc == nil {
		return nil, domain.NotFound("local")
	}

	if d := access.ResolveScope(p, access.KindOffer, access.OpCreate, loc.CompanyID, loc.ID); !d.Allowed {
		return nil, access.DenialError(p, access.KindOffer, access.OpCreate, loc.CompanyID)
	}

	company, err := uc.companies.GetByID(ctx, loc.CompanyID)
	if err != nil {
		return nil, domain.Dependency("consulta de empresa", err)
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}

	// Imagen ANTES de la fila: si el media store falla, la oferta no se inserta.
	imageURL := ""
	if in.Image != nil {
		imageURL, err = uc.media.Store(ctx, in.Image.Data, in.Image.Filename, "offers")
		if err != nil {
			return nil, domain.Dependency("subida de imagen", err)
		}
	}

	now := uc.now()
	offer := &entity.Offer{
		ID:           uuid.New().String(),
		LocationID:   loc.ID,
		CategoryID:   in.CategoryID,
		Title:        in.Title,
		Description:  in.Description,
		DiscountText: in.DiscountText,
		PriceNormal:  in.PriceNormal,
		PriceOffer:   in.PriceOffer,
		ImageURL:     imageURL,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		IsVisible:    boolOr(in.IsVisible, true),
		IsFeatured:   boolOr(in.IsFeatured, false),
		PromoType:    promoType,
		Status:       entity.OfferStatusActive,
		SoftActive:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Cuota + insert en una sola transacción: el conteo y la escritura deben
	// poder serializarse para que dos Create concurrentes no rebasen el tope.
	err = uc.tx.Run(ctx, func(offers repository.OfferRepository, _ repository.LocationRepository) error {
		if err := uc.quota.CheckActiveOffers(ctx, offers, company, loc.ID, ""); err != nil {
			return err
		}
		if offer.IsFeatured {
			if err := uc.quota.CheckFeaturedOffers(ctx, offers, company); err != nil {
				return err
			}
		}
		if err := offers.Create(ctx, offer); err != nil {
			return domain.Dependency("insert de oferta", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOfferResponse(offer), nil
}

// GetByID devuelve una oferta del alcance del principal. Fuera del tenant del
// llamante responde not_found, nunca forbidden.
func (uc *OfferUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.OfferResponse, error) {
	offer, loc, err := uc.fetchWithLocation(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindOffer, access.OpRead, loc.CompanyID, loc.ID); !d.Allowed {
		return nil, access.DenialError(p, access.KindOffer, access.OpRead, loc.CompanyID)
	}
	return toOfferResponse(offer), nil
}

// Update modifica campos de la oferta (update parcial). La visibilidad y el
// destacado NO se tocan aquí: son eventos propios (SetVisible / SetFeatured)
// porque re-disparan cuotas.
func (uc *OfferUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateOfferRequest) (*dto.OfferResponse, error) {
	offer, loc, err := uc.fetchWithLocation(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindOffer, access.OpUpdate, loc.CompanyID, loc.ID); !d.Allowed {
		return nil, access.DenialError(p, access.KindOffer, access.OpUpdate, loc.CompanyID)
	}
	if in.PromoType != nil && !entity.ValidPromoType(*in.PromoType) {
		return nil, domain.Validation("promo_type inválido: " + *in.PromoType)
	}

	// Imagen primero: si falla, no se escribe nada.
	if in.Image != nil {
		url, err := uc.media.Store(ctx, in.Image.Data, in.Image.Filename, "offers")
		if err != nil {
			return nil, domain.Dependency("subida de imagen", err)
		}
		offer.ImageURL = url
	}

	if in.Title != nil {
		offer.Title = *in.Title
	}
	if in.Description != nil {
		offer.Description = *in.Description
	}
	if in.DiscountText != nil {
		offer.DiscountText = *in.DiscountText
	}
	if in.CategoryID != nil {
		offer.CategoryID = *in.CategoryID
	}
	if in.PriceNormal != nil {
		offer.PriceNormal = *in.PriceNormal
	}
	if in.PriceOffer != nil {
		offer.PriceOffer = *in.PriceOffer
	}
	if in.StartDate != nil {
		offer.StartDate = in.StartDate
	} else if in.ClearStartDate {
		offer.StartDate = nil
	}
	if in.EndDate != nil {
		offer.EndDate = in.EndDate
	} else if in.ClearEndDate {
		offer.EndDate = nil
	}
	if in.PromoType != nil {
		offer.PromoType = *in.PromoType
	}
	if offer.StartDate != nil && offer.EndDate != nil && offer.EndDate.Before(*offer.StartDate) {
		return nil, domain.Validation("end_date no puede ser anterior a start_date")
	}
	offer.UpdatedAt = uc.now()

	if err := uc.offers.Update(ctx, offer); err != nil {
		return nil, domain.Dependency("update de oferta", err)
	}
	return toOfferResponse(offer), nil
}

// SetVisible enciende o apaga la visibilidad. Pasar de oculta a visible
// re-ejecuta la cuota de ofertas activas como si fuera una creación, contando
// las DEMÁS ofertas activas del local (la propia queda excluida del conteo).
func (uc *OfferUseCase) SetVisible(ctx context.Context, p access.Principal, id string, visible bool) (*dto.OfferResponse, error) {
	offer, loc, err := uc.fetchWithLocation(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindOffer, access.OpUpdate, loc.CompanyID, loc.ID); !d.Allowed {
		return nil, access.DenialError(p, access.KindOffer, access.OpUpdate, loc.CompanyID)
	}
	if offer.IsVisible == visible {
		return toOfferResponse(offer), nil // sin transición, sin cuota
	}

	offer.IsVisible = visible
	offer.UpdatedAt = uc.now()

	if !visible {
		if err := uc.offers.Update(ctx, offer); err != nil {
			return nil, domain.Dependency("update de oferta", err)
		}
		return toOfferResponse(offer), nil
	}

	company, err := uc.companies.GetByID(ctx, loc.CompanyID)
	if err != nil {
		return nil, domain.Dependency("consulta de empresa", err)
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}
	err = uc.tx.Run(ctx, func(offers repository.OfferRepository, _ repository.LocationRepository) error {
		if err := uc.quota.CheckActiveOffers(ctx, offers, company, loc.ID, offer.ID); err != nil {
			return err
		}
		if err := offers.Update(ctx, offer); err != nil {
			return domain.Dependency("update de oferta", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOfferResponse(offer), nil
}

// SetFeatured enciende o apaga el destacado. Solo la transición 0→1 re-ejecuta
// la cuota de destacadas (company-wide); apagar nunca consulta cuota.
func (uc *OfferUseCase) SetFeatured(ctx context.Context, p access.Principal, id string, featured bool) (*dto.OfferResponse, error) {
	offer, loc, err := uc.fetchWithLocation(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindOffer, access.OpUpdate, loc.CompanyID, loc.ID); !d.Allowed {
		return nil, access.DenialError(p, access.KindOffer, access.OpUpdate, loc.CompanyID)
	}
	if offer.IsFeatured == featured {
		return toOfferResponse(offer), nil
	}

	offer.IsFeatured = featured
	offer.UpdatedAt = uc.now()

	if !featured {
		if err := uc.offers.Update(ctx, offer); err != nil {
			return nil, domain.Dependency("update de oferta", err)
		}
		return toOfferResponse(offer), nil
	}

	company, err := uc.companies.GetByID(ctx, loc.CompanyID)
	if err != nil {
		return nil, domain.Dependency("consulta de empresa", err)
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}
	err = uc.tx.Run(ctx, func(offers repository.OfferRepository, _ repository.LocationRepository) error {
		if err := uc.quota.CheckFeaturedOffers(ctx, offers, company); err != nil {
			return err
		}
		if err := offers.Update(ctx, offer); err != nil {
			return domain.Dependency("update de oferta", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOfferResponse(offer), nil
}

// Delete hace borrado lógico. Es terminal y NO idempotente: borrar una oferta
// ya borrada responde not_found, nunca éxito silencioso.
func (uc *OfferUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	offer, loc, err := uc.fetchWithLocation(ctx, p, id)
	if err != nil {
		return err
	}
	if d := access.ResolveScope(p, access.KindOffer, access.OpDelete, loc.CompanyID, loc.ID); !d.Allowed {
		return access.DenialError(p, access.KindOffer, access.OpDelete, loc.CompanyID)
	}
	ok, err := uc.offers.SoftDelete(ctx, offer.ID)
	if err != nil {
		return domain.Dependency("borrado de oferta", err)
	}
	if !ok {
		return domain.NotFound("oferta")
	}
	return nil
}

// List devuelve las ofertas del alcance del principal (modo admin), con el
// predicado de AccessScope empujado a la query del repositorio.
func (uc *OfferUseCase) List(ctx context.Context, p access.Principal, categoryID, search string, page dto.PageRequest) (*dto.OfferListResponse, error) {
	scope, ok := access.ListFilter(p, access.KindOffer)
	if !ok {
		return nil, domain.Forbidden("no autorizado para listar ofertas")
	}
	page.DefaultPage()
	list, err := uc.offers.List(ctx, repository.OfferListFilter{
		Scope:      scope,
		CategoryID: categoryID,
		Search:     search,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, domain.Dependency("listado de ofertas", err)
	}
	return toOfferListResponse(list, page), nil
}

// PublicCatalog es el feed público: solo ofertas elegibles (vigentes, visibles,
// activas, no borradas), ordenadas en modo catálogo y paginadas en memoria
// después del ranking para que la paginación sea estable.
func (uc *OfferUseCase) PublicCatalog(ctx context.Context, categoryID, search string, page dto.PageRequest) (*dto.OfferListResponse, error) {
	page.DefaultPage()
	list, err := uc.offers.List(ctx, repository.OfferListFilter{
		CategoryID: categoryID,
		Search:     search,
		// sin Limit: el ranking decide el orden antes de cortar la página
	})
	if err != nil {
		return nil, domain.Dependency("listado de ofertas", err)
	}
	now := uc.now()
	eligible := offerfeed.FilterEligible(list, now)
	ranked := offerfeed.Rank(eligible, offerfeed.ModeCatalog, now)
	return toOfferListResponse(slicePage(ranked, page), page), nil
}

// CompanyStory es el feed vertical de historias de una empresa: elegibles,
// flash primero, luego destacadas, luego las más nuevas.
func (uc *OfferUseCase) CompanyStory(ctx context.Context, companyID string) (*dto.OfferListResponse, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, domain.Dependency("consulta de empresa", err)
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}
	list, err := uc.offers.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, domain.Dependency("listado de ofertas", err)
	}
	ranked := offerfeed.Rank(list, offerfeed.ModeCompanyStory, uc.now())
	return toOfferListResponse(ranked, dto.PageRequest{}), nil
}

// fetchWithLocation trae la oferta y su local. Oferta inexistente o borrada →
// not_found. Un local borrado deja la oferta huérfana: se trata como
// inexistente salvo para superadmin.
func (uc *OfferUseCase) fetchWithLocation(ctx context.Context, p access.Principal, id string) (*entity.Offer, *entity.Location, error) {
	offer, err := uc.offers.GetByID(ctx, id)
	if err != nil {
		return nil, nil, domain.Dependency("consulta de oferta", err)
	}
	if offer == nil {
		return nil, nil, domain.NotFound("oferta")
	}
	loc, err := uc.locations.GetByID(ctx, offer.LocationID)
	if err != nil {
		return nil, nil, domain.Dependency("consulta de local", err)
	}
	if loc == nil {
		if p.Role == access.RoleSuperadmin {
			return offer, &entity.Location{ID: offer.LocationID}, nil
		}
		return nil, nil, domain.NotFound("oferta")
	}
	return offer, loc, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func slicePage(list []*entity.Offer, page dto.PageRequest) []*entity.Offer {
	if page.Offset >= len(list) {
		return nil
	}
	end := page.Offset + page.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[page.Offset:end]
}

func toOfferResponse(o *entity.Offer) *dto.OfferResponse {
	if o == nil {
		return nil
	}
	return &dto.OfferResponse{
		ID:           o.ID,
		LocationID:   o.LocationID,
		CategoryID:   o.CategoryID,
		Title:        o.Title,
		Description:  o.Description,
		DiscountText: o.DiscountText,
		PriceNormal:  o.PriceNormal,
		PriceOffer:   o.PriceOffer,
		ImageURL:     o.ImageURL,
		StartDate:    o.StartDate,
		EndDate:      o.EndDate,
		IsVisible:    o.IsVisible,
		IsFeatured:   o.IsFeatured,
		PromoType:    o.PromoType,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func toOfferListResponse(list []*entity.Offer, page dto.PageRequest) *dto.OfferListResponse {
	items := make([]dto.OfferResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOfferResponse(o))
	}
	return &dto.OfferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
