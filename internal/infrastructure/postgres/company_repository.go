package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db db
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{db: pool}
}

const companyColumns = `id, name, slug, description, website, logo_url, cover_url,
	COALESCE(owner_id, ''), plan, custom_branch_limit, active, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, slug, description, website, logo_url, cover_url,
			owner_id, plan, custom_branch_limit, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Slug, c.Description, c.Website, c.LogoURL, c.CoverURL,
		c.OwnerID, string(c.Plan), c.CustomBranchLimit, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug duplicado: %w", err)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa activa por ID. nil si no existe o está borrada.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1 AND active = true`
	return r.scanOne(ctx, query, id)
}

// GetBySlug obtiene una empresa activa por slug público.
func (r *CompanyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1 AND active = true`
	return r.scanOne(ctx, query, slug)
}

func (r *CompanyRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	var c entity.Company
	var plan string
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Website, &c.LogoURL, &c.CoverURL,
		&c.OwnerID, &plan, &c.CustomBranchLimit, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	c.Plan = entity.Plan(plan)
	return &c, nil
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, description = $3, website = $4, logo_url = $5,
			cover_url = $6, owner_id = NULLIF($7, ''), plan = $8, custom_branch_limit = $9,
			updated_at = $10
		WHERE id = $1 AND active = true`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Description, c.Website, c.LogoURL, c.CoverURL,
		c.OwnerID, string(c.Plan), c.CustomBranchLimit, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List devuelve empresas del alcance dado, con paginación. includeInactive
// agrega las borradas lógicamente (solo lo usa superadmin).
func (r *CompanyRepo) List(ctx context.Context, scope access.Filter, includeInactive bool, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE ($1 = '' OR id = $1)`
	if !includeInactive {
		query += ` AND active = true`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, scope.CompanyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		var plan string
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.Website, &c.LogoURL, &c.CoverURL,
			&c.OwnerID, &plan, &c.CustomBranchLimit, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		c.Plan = entity.Plan(plan)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SoftDelete marca la empresa como inactiva. false si no había fila activa.
func (r *CompanyRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.db.Exec(ctx,
		`UPDATE companies SET active = false, updated_at = now() WHERE id = $1 AND active = true`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete company: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
