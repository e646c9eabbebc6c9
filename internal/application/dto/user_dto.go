package dto

import "time"

// CreateUserRequest alta de usuario administrador. Un owner solo puede crear
// managers de su empresa; superadmin decide todo.
type CreateUserRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	CompanyID  string `json:"company_id,omitempty"`
	LocationID string `json:"location_id,omitempty"`
}

// UpdateUserRequest campos opcionales para update parcial. Punteros nil = sin cambio.
type UpdateUserRequest struct {
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
	Role       *string `json:"role,omitempty"`
	CompanyID  *string `json:"company_id,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
}

// UserResponse proyección pública de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	CompanyID  string    `json:"company_id,omitempty"`
	LocationID string    `json:"location_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserListResponse listado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}
