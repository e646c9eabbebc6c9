package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
	"github.com/tu-usuario/ofertas-pro/pkg/slug"
)

// CompanyUseCase administra empresas/tenants. Solo superadmin escribe; un
// owner lee su propia empresa y nada más.
type CompanyUseCase struct {
	companies repository.CompanyRepository

	Now func() time.Time
}

func NewCompanyUseCase(companies repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companies: companies}
}

func (uc *CompanyUseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Create da de alta una empresa con slug derivado del nombre. Si el slug ya
// está tomado se le añade un sufijo corto en lugar de fallar.
func (uc *CompanyUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if d := access.ResolveScope(p, access.KindCompany, access.OpCreate, "", ""); !d.Allowed {
		return nil, access.DenialError(p, access.KindCompany, access.OpCreate, "")
	}
	if in.Name == "" {
		return nil, domain.Validation("faltan campos obligatorios", "name")
	}
	plan := entity.Plan(in.Plan)
	if in.Plan == "" {
		plan = entity.PlanBasic
	}
	if !plan.Valid() {
		return nil, domain.Validation("plan inválido: " + in.Plan)
	}

	s, err := uc.uniqueSlug(ctx, slug.Make(in.Name))
	if err != nil {
		return nil, err
	}

	now := uc.now()
	company := &entity.Company{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Slug:              s,
		Description:       in.Description,
		Website:           in.Website,
		LogoURL:           in.LogoURL,
		CoverURL:          in.CoverURL,
		OwnerID:           in.OwnerID,
		Plan:              plan,
		CustomBranchLimit: in.CustomBranchLimit,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.companies.Create(ctx, company); err != nil {
		return nil, domain.Dependency("insert de empresa", err)
	}
	return toCompanyResponse(company), nil
}

// GetByID devuelve una empresa del alcance del principal.
func (uc *CompanyUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.CompanyResponse, error) {
	company, err := uc.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindCompany, access.OpRead, company.ID, ""); !d.Allowed {
		return nil, access.DenialError(p, access.KindCompany, access.OpRead, company.ID)
	}
	return toCompanyResponse(company), nil
}

// GetBySlug resuelve una empresa por su slug público (perfil de empresa).
// No requiere autenticación: solo expone empresas activas.
func (uc *CompanyUseCase) GetBySlug(ctx context.Context, s string) (*dto.CompanyResponse, error) {
	company, err := uc.companies.GetBySlug(ctx, s)
	if err != nil {
		return nil, domain.Dependency("consulta de empresa", err)
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}
	return toCompanyResponse(company), nil
}

// List devuelve las empresas del alcance. includeInactive solo lo honra
// superadmin; para cualquier otro rol se ignora.
func (uc *CompanyUseCase) List(ctx context.Context, p access.Principal, includeInactive bool, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	scope, ok := access.ListFilter(p, access.KindCompany)
	if !ok {
		return nil, domain.Forbidden("no autorizado para listar empresas")
	}
	if p.Role != access.RoleSuperadmin {
		includeInactive = false
	}
	page.DefaultPage()
	list, err := uc.companies.List(ctx, scope, includeInactive, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Dependency("listado de empresas", err)
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update modifica la empresa (solo superadmin; owner es solo-lectura sobre
// Company). Cambiar el nombre NO regenera el slug: las URLs públicas ya
// publicadas no se rompen.
func (uc *CompanyUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindCompany, access.OpUpdate, company.ID, ""); !d.Allowed {
		return nil, access.DenialError(p, access.KindCompany, access.OpUpdate, company.ID)
	}
	if in.Plan != nil {
		plan := entity.Plan(*in.Plan)
		if !plan.Valid() {
			return nil, domain.Validation("plan inválido: " + *in.Plan)
		}
		company.Plan = plan
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Description != nil {
		company.Description = *in.Description
	}
	if in.Website != nil {
		company.Website = *in.Website
	}
	if in.LogoURL != nil {
		company.LogoURL = *in.LogoURL
	}
	if in.CoverURL != nil {
		company.CoverURL = *in.CoverURL
	}
	if in.OwnerID != nil {
		company.OwnerID = *in.OwnerID
	}
	if in.CustomBranchLimit != nil {
		company.CustomBranchLimit = in.CustomBranchLimit
	}
	company.UpdatedAt = uc.now()

	if err := uc.companies.Update(ctx, company); err != nil {
		return nil, domain.Dependency("update de empresa", err)
	}
	return toCompanyResponse(company), nil
}

// Delete hace borrado lógico de la empresa. Terminal: no hay reactivación.
func (uc *CompanyUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	company, err := uc.fetch(ctx, id)
	if err != nil {
		return err
	}
	if d := access.ResolveScope(p, access.KindCompany, access.OpDelete, company.ID, ""); !d.Allowed {
		return access.DenialError(p, access.KindCompany, access.OpDelete, company.ID)
	}
	ok, err := uc.companies.SoftDelete(ctx, id)
	if err != nil {
		return domain.Dependency("borrado de empresa", err)
	}
	if !ok {
		return domain.NotFound("empresa")
	}
	return nil
}

func (uc *CompanyUseCase) fetch(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Dependency("consulta de empresa", err)
	}
	if company == nil {
		return nil, domain.NotFound("empresa")
	}
	return company, nil
}

func (uc *CompanyUseCase) uniqueSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "empresa"
	}
	existing, err := uc.companies.GetBySlug(ctx, base)
	if err != nil {
		return "", domain.Dependency("consulta de slug", err)
	}
	if existing == nil {
		return base, nil
	}
	return base + "-" + uuid.New().String()[:8], nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:                c.ID,
		Name:              c.Name,
		Slug:              c.Slug,
		Description:       c.Description,
		Website:           c.Website,
		LogoURL:           c.LogoURL,
		CoverURL:          c.CoverURL,
		OwnerID:           c.OwnerID,
		Plan:              string(c.Plan),
		CustomBranchLimit: c.CustomBranchLimit,
		Active:            c.Active,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
