package dto

import "time"

// CreateCompanyRequest alta de empresa (solo superadmin).
type CreateCompanyRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Website           string `json:"website,omitempty"`
	LogoURL           string `json:"logo_url,omitempty"`
	CoverURL          string `json:"cover_url,omitempty"`
	OwnerID           string `json:"owner_id,omitempty"`
	Plan              string `json:"plan,omitempty"` // default basic
	CustomBranchLimit *int   `json:"custom_branch_limit,omitempty"`
}

// UpdateCompanyRequest update parcial de empresa. Punteros nil = sin cambio.
type UpdateCompanyRequest struct {
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	Website           *string `json:"website,omitempty"`
	LogoURL           *string `json:"logo_url,omitempty"`
	CoverURL          *string `json:"cover_url,omitempty"`
	OwnerID           *string `json:"owner_id,omitempty"`
	Plan              *string `json:"plan,omitempty"`
	CustomBranchLimit *int    `json:"custom_branch_limit,omitempty"`
}

// CompanyResponse proyección pública de una empresa.
type CompanyResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description,omitempty"`
	Website           string    `json:"website,omitempty"`
	LogoURL           string    `json:"logo_url,omitempty"`
	CoverURL          string    `json:"cover_url,omitempty"`
	OwnerID           string    `json:"owner_id,omitempty"`
	Plan              string    `json:"plan"`
	CustomBranchLimit *int      `json:"custom_branch_limit,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CompanyListResponse listado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
