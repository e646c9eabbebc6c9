package dto

import "time"

// CreateLocationRequest alta de local. CompanyID solo lo decide superadmin;
// para un owner se fuerza su propia empresa.
type CreateLocationRequest struct {
	CompanyID string  `json:"company_id,omitempty"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateLocationRequest update parcial de local. Punteros nil = sin cambio.
type UpdateLocationRequest struct {
	Address   *string  `json:"address,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// LocationResponse proyección de un local.
type LocationResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse listado de locales.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
}
