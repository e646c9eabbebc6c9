package entity

import "time"

// Location es un local físico. Pertenece a exactamente una Company y nunca se
// reasigna después de creado. Borrado lógico vía Active=false.
type Location struct {
	ID        string
	CompanyID string
	Address   string
	Phone     string
	Latitude  float64
	Longitude float64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
