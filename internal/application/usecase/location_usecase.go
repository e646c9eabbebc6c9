package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/quota"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// LocationUseCase administra locales. Superadmin y owner (sobre su empresa);
// un manager nunca administra locales.
type LocationUseCase struct {
	tx        TxRunner
	locations repository.LocationRepository
	companies repository.CompanyRepository
	quota     *quota.Engine

	Now func() time.Time
}

func NewLocationUseCase(tx TxRunner, locations repository.LocationRepository, companies repository.CompanyRepository, engine *quota.Engine) *LocationUseCase {
	return &LocationUseCase{tx: tx, locations: locations, companies: companies, quota: engine}
}

func (uc *LocationUseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Create da de alta un local. Para un owner el company_id del cuerpo se ignora
// y se fuerza su propia empresa; superadmin debe indicarlo. La cuota de locales
// del plan (o CustomBranchLimit) se chequea dentro de la transacción.
func (uc *LocationUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	companyID := in.CompanyID
	if p.Role == access.RoleOwner {
		companyID = p.CompanyID
	}
	var missing []string
	if companyID == "" {
		missing = append(missing, "company_id")
	}
	if in.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, domain.Validation("faltan campos obligatorios", missing...)
	}

	if d := access.ResolveScope(p, access.KindLocation, access.OpCreate, companyID, ""); !d.Allowed {
		return nil, access.DenialError(p, access.KindLocation, access.OpCreate, companyID)
	}

	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, domain.Dependency("consulta de empresa", err)
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}

	now := uc.now()
	location := &entity.Location{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Address:   in.Address,
		Phone:     in.Phone,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.tx.Run(ctx, func(_ repository.OfferRepository, locations repository.LocationRepository) error {
		if err := uc.quota.CheckLocations(ctx, locations, company); err != nil {
			return err
		}
		if err := locations.Create(ctx, location); err != nil {
			return domain.Dependency("insert de local", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID devuelve un local del alcance del principal.
func (uc *LocationUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.LocationResponse, error) {
	location, err := uc.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindLocation, access.OpRead, location.CompanyID, location.ID); !d.Allowed {
		return nil, access.DenialError(p, access.KindLocation, access.OpRead, location.CompanyID)
	}
	return toLocationResponse(location), nil
}

// List devuelve los locales del alcance del principal.
func (uc *LocationUseCase) List(ctx context.Context, p access.Principal) (*dto.LocationListResponse, error) {
	scope, ok := access.ListFilter(p, access.KindLocation)
	if !ok {
		return nil, domain.Forbidden("no autorizado para listar locales")
	}
	list, err := uc.locations.List(ctx, scope)
	if err != nil {
		return nil, domain.Dependency("listado de locales", err)
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{Items: items}, nil
}

// ListPublicByCompany devuelve los locales activos de una empresa para el
// perfil público. Sin autenticación.
func (uc *LocationUseCase) ListPublicByCompany(ctx context.Context, companyID string) (*dto.LocationListResponse, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, domain.Dependency("consulta de empresa", err)
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}
	list, err := uc.locations.List(ctx, access.Filter{CompanyID: companyID})
	if err != nil {
		return nil, domain.Dependency("listado de locales", err)
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{Items: items}, nil
}

// Update modifica un local. El local nunca cambia de empresa.
func (uc *LocationUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindLocation, access.OpUpdate, location.CompanyID, location.ID); !d.Allowed {
		return nil, access.DenialError(p, access.KindLocation, access.OpUpdate, location.CompanyID)
	}
	if in.Address != nil {
		location.Address = *in.Address
	}
	if in.Phone != nil {
		location.Phone = *in.Phone
	}
	if in.Latitude != nil {
		location.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		location.Longitude = *in.Longitude
	}
	location.UpdatedAt = uc.now()

	if err := uc.locations.Update(ctx, location); err != nil {
		return nil, domain.Dependency("update de local", err)
	}
	return toLocationResponse(location), nil
}

// Delete hace borrado lógico del local. Las ofertas del local quedan fuera de
// todos los feeds y conteos al instante (los joins exigen local activo).
func (uc *LocationUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	location, err := uc.fetch(ctx, id)
	if err != nil {
		return err
	}
	if d := access.ResolveScope(p, access.KindLocation, access.OpDelete, location.CompanyID, location.ID); !d.Allowed {
		return access.DenialError(p, access.KindLocation, access.OpDelete, location.CompanyID)
	}
	ok, err := uc.locations.SoftDelete(ctx, id)
	if err != nil {
		return domain.Dependency("borrado de local", err)
	}
	if !ok {
		return domain.NotFound("local")
	}
	return nil
}

func (uc *LocationUseCase) fetch(ctx context.Context, id string) (*entity.Location, error) {
	location, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Dependency("consulta de local", err)
	}
	if location == nil {
		return nil, domain.NotFound("local")
	}
	return location, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		CompanyID: l.CompanyID,
		Address:   l.Address,
		Phone:     l.Phone,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
