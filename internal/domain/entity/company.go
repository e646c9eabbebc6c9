package entity

import "time"

// Plan es el plan de suscripción de una empresa. Determina todos los topes
// de cuota salvo que CustomBranchLimit sobrescriba el tope de locales.
type Plan string

const (
	PlanBasic      Plan = "basic"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// Valid informa si el plan es uno de los conocidos.
func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanPremium, PlanEnterprise:
		return true
	}
	return false
}

// Company representa una empresa/tenant del marketplace. Borrado lógico vía
// Active=false (terminal: este núcleo nunca reactiva una empresa).
type Company struct {
	ID                string
	Name              string
	Slug              string
	Description       string
	Website           string
	LogoURL           string
	CoverURL          string
	OwnerID           string // puede estar vacío si aún no se asignó dueño
	Plan              Plan
	CustomBranchLimit *int // nil = usar tope del plan; sobrescribe SOLO el tope de locales
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
