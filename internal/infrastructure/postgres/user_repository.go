package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// Asegura que UserRepo implementa repository.UserRepository.
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db db
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: pool}
}

const userColumns = `id, email, password_hash, role,
	COALESCE(company_id, ''), COALESCE(location_id, ''), active, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, company_id, location_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Role, u.CompanyID, u.LocationID, u.Active, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email duplicado: %w", err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario activo por ID. nil si no existe o está borrado.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND active = true`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// FindByEmail obtiene un usuario activo por email (login).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND active = true`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role,
		&u.CompanyID, &u.LocationID, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// EmailExists informa si otro usuario activo ya usa el email.
func (r *UserRepo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE email = $1 AND active = true AND ($2 = '' OR id <> $2)
		)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, role = $4,
			company_id = NULLIF($5, ''), location_id = NULLIF($6, ''), updated_at = $7
		WHERE id = $1 AND active = true`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Role, u.CompanyID, u.LocationID, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email duplicado: %w", err)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List devuelve los usuarios activos del alcance dado.
func (r *UserRepo) List(ctx context.Context, f repository.UserListFilter) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE active = true
		  AND ($1 = '' OR company_id = $1)
		  AND ($2 = '' OR location_id = $2)`
	if f.OnlyManagers {
		query += ` AND role = 'manager'`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, f.Scope.CompanyID, f.Scope.LocationID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Role,
			&u.CompanyID, &u.LocationID, &u.Active, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// SoftDelete marca el usuario como inactivo. false si no había fila activa.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.db.Exec(ctx,
		`UPDATE users SET active = false, updated_at = now() WHERE id = $1 AND active = true`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete user: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
