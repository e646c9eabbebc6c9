package entity

import "time"

// Roles válidos para User. La jerarquía es superadmin > owner > manager;
// la resolución de permisos vive en internal/domain/access.
const (
	RoleSuperadmin = "superadmin"
	RoleOwner      = "owner"
	RoleManager    = "manager"
)

// User representa un usuario administrador del sistema. Owner siempre tiene
// CompanyID; manager siempre tiene LocationID (y normalmente CompanyID);
// superadmin no requiere ninguno.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         string
	CompanyID    string // vacío = sin empresa asignada
	LocationID   string // vacío = sin local asignado
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
