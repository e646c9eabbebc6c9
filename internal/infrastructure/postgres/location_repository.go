package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// Asegura que LocationRepo implementa repository.LocationRepository.
var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	db db
}

// NewLocationRepository construye el adaptador de persistencia para locales.
func NewLocationRepository(pool *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{db: pool}
}

const locationColumns = `id, company_id, address, phone, latitude, longitude, active, created_at, updated_at`

// Create persiste un nuevo local.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, company_id, address, phone, latitude, longitude, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		l.ID, l.CompanyID, l.Address, l.Phone, l.Latitude, l.Longitude, l.Active, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene un local activo por ID. nil si no existe o está borrado.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1 AND active = true`
	var l entity.Location
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.CompanyID, &l.Address, &l.Phone, &l.Latitude, &l.Longitude,
		&l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza un local existente.
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `
		UPDATE locations SET address = $2, phone = $3, latitude = $4, longitude = $5, updated_at = $6
		WHERE id = $1 AND active = true`
	_, err := r.db.Exec(ctx, query, l.ID, l.Address, l.Phone, l.Latitude, l.Longitude, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// List devuelve los locales activos del alcance dado.
func (r *LocationRepo) List(ctx context.Context, scope access.Filter) ([]*entity.Location, error) {
	query := `
		SELECT ` + locationColumns + ` FROM locations
		WHERE active = true
		  AND ($1 = '' OR company_id = $1)
		  AND ($2 = '' OR id = $2)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, scope.CompanyID, scope.LocationID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.Address, &l.Phone, &l.Latitude, &l.Longitude,
			&l.Active, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SoftDelete marca el local como inactivo. false si no había fila activa.
func (r *LocationRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.db.Exec(ctx,
		`UPDATE locations SET active = false, updated_at = now() WHERE id = $1 AND active = true`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete location: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CountActiveByCompany cuenta los locales activos de la empresa (cuota de locales).
func (r *LocationRepo) CountActiveByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM locations WHERE company_id = $1 AND active = true`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}
