package access

import (
	"fmt"

	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
)

// Role es la variante cerrada de roles. Se usa en lugar del string del token
// para que agregar un rol nuevo obligue a actualizar cada punto de permiso
// (los switch sobre Role son exhaustivos; el default siempre deniega).
type Role int

const (
	RoleSuperadmin Role = iota
	RoleOwner
	RoleManager
)

// ParseRole convierte el rol serializado (claims JWT, columna role) a la variante.
func ParseRole(s string) (Role, error) {
	switch s {
	case entity.RoleSuperadmin:
		return RoleSuperadmin, nil
	case entity.RoleOwner:
		return RoleOwner, nil
	case entity.RoleManager:
		return RoleManager, nil
	}
	return 0, fmt.Errorf("rol desconocido: %q", s)
}

func (r Role) String() string {
	switch r {
	case RoleSuperadmin:
		return entity.RoleSuperadmin
	case RoleOwner:
		return entity.RoleOwner
	case RoleManager:
		return entity.RoleManager
	}
	return "unknown"
}

// Principal es la identidad y alcance del llamante autenticado durante una
// petición. Inmutable; lo produce el Authenticator externo (middleware JWT).
type Principal struct {
	UserID     string
	Role       Role
	CompanyID  string // requerido para owner
	LocationID string // requerido para manager
}

// Kind identifica el tipo de entidad objetivo de una operación.
type Kind int

const (
	KindCompany Kind = iota
	KindLocation
	KindOffer
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindCompany:
		return "empresa"
	case KindLocation:
		return "local"
	case KindOffer:
		return "oferta"
	case KindUser:
		return "usuario"
	}
	return "recurso"
}

// Op es la intención de la operación sobre la entidad objetivo.
type Op int

const (
	OpRead Op = iota
	OpCreate
	OpUpdate
	OpDelete
)

// IsWrite informa si la operación muta estado.
func (o Op) IsWrite() bool { return o != OpRead }

// Filter es el predicado de filas que el repositorio debe empujar a su query
// en listados. Campos vacíos = sin restricción en esa dimensión.
type Filter struct {
	CompanyID  string
	LocationID string
}

// Unrestricted informa si el filtro no restringe nada (superadmin).
func (f Filter) Unrestricted() bool { return f.CompanyID == "" && f.LocationID == "" }

// Decision es el resultado de resolver el alcance de un principal sobre una
// entidad concreta.
type Decision struct {
	Allowed bool
	Filter  Filter
}

// ResolveScope decide si el principal puede ejecutar op sobre una entidad de
// tipo kind cuyo tenant es (targetCompanyID, targetLocationID). Deny gana
// sobre grant; la regla más específica gana.
//
// El colapso "fuera de alcance en lectura → not_found" NO ocurre aquí: esta
// función solo decide allowed; ver DenialError.
func ResolveScope(p Principal, kind Kind, op Op, targetCompanyID, targetLocationID string) Decision {
	switch p.Role {
	case RoleSuperadmin:
		// Ve y muta todo; las filas con borrado lógico solo cuando las pide
		// explícitamente (parámetro de listado, no de alcance).
		return Decision{Allowed: true}

	case RoleOwner:
		if p.CompanyID == "" {
			return Decision{}
		}
		switch kind {
		case KindCompany:
			// Solo lectura de SU propia empresa; ningún write de Company.
			allowed := op == OpRead && targetCompanyID == p.CompanyID
			return Decision{Allowed: allowed, Filter: Filter{CompanyID: p.CompanyID}}
		case KindLocation, KindOffer, KindUser:
			allowed := targetCompanyID == p.CompanyID
			return Decision{Allowed: allowed, Filter: Filter{CompanyID: p.CompanyID}}
		}
		return Decision{}

	case RoleManager:
		if p.LocationID == "" {
			return Decision{}
		}
		switch kind {
		case KindOffer:
			allowed := targetLocationID == p.LocationID
			return Decision{Allowed: allowed, Filter: Filter{LocationID: p.LocationID}}
		case KindCompany, KindLocation, KindUser:
			// Un manager nunca administra metadatos de empresa, locales ni usuarios.
			return Decision{}
		}
		return Decision{}
	}
	// Rol fuera de la variante cerrada: denegar siempre.
	return Decision{}
}

// ListFilter devuelve el predicado componible para listados del kind dado.
// ok=false significa que el principal no puede listar ese kind en absoluto.
func ListFilter(p Principal, kind Kind) (Filter, bool) {
	switch p.Role {
	case RoleSuperadmin:
		return Filter{}, true
	case RoleOwner:
		if p.CompanyID == "" {
			return Filter{}, false
		}
		return Filter{CompanyID: p.CompanyID}, true
	case RoleManager:
		if kind != KindOffer || p.LocationID == "" {
			return Filter{}, false
		}
		return Filter{LocationID: p.LocationID}, true
	}
	return Filter{}, false
}

// DenialError traduce una denegación a la taxonomía de errores.
//
// Para que un atacante no distinga "existe pero prohibido" de "nunca existió",
// las LECTURAS denegadas de recursos fuera del tenant del llamante colapsan a
// not_found. Dentro del propio tenant (o en cualquier escritura) el recurso ya
// es conocible y se responde forbidden.
func DenialError(p Principal, kind Kind, op Op, targetCompanyID string) *domain.Error {
	if op == OpRead && p.Role != RoleSuperadmin && targetCompanyID != p.CompanyID {
		return domain.NotFound(kind.String())
	}
	return domain.Forbidden("no autorizado sobre " + kind.String())
}
