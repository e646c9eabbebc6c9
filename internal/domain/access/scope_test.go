package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
)

const (
	companyA  = "00000000-0000-0000-0000-00000000000a"
	companyB  = "00000000-0000-0000-0000-00000000000b"
	locationA = "00000000-0000-0000-0000-0000000000a1"
	locationB = "00000000-0000-0000-0000-0000000000b1"
)

func superadmin() access.Principal {
	return access.Principal{UserID: "u-super", Role: access.RoleSuperadmin}
}

func ownerOfA() access.Principal {
	return access.Principal{UserID: "u-owner", Role: access.RoleOwner, CompanyID: companyA}
}

func managerOfA1() access.Principal {
	return access.Principal{UserID: "u-manager", Role: access.RoleManager, CompanyID: companyA, LocationID: locationA}
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveScope
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveScope_SuperadminTodoPermitido(t *testing.T) {
	p := superadmin()
	for _, kind := range []access.Kind{access.KindCompany, access.KindLocation, access.KindOffer, access.KindUser} {
		for _, op := range []access.Op{access.OpRead, access.OpCreate, access.OpUpdate, access.OpDelete} {
			d := access.ResolveScope(p, kind, op, companyB, locationB)
			assert.True(t, d.Allowed, "superadmin debe poder %v sobre %v", op, kind)
			assert.True(t, d.Filter.Unrestricted(), "el filtro de superadmin no restringe")
		}
	}
}

func TestResolveScope_OwnerSoloLecturaDeSuEmpresa(t *testing.T) {
	p := ownerOfA()

	d := access.ResolveScope(p, access.KindCompany, access.OpRead, companyA, "")
	assert.True(t, d.Allowed, "owner lee su propia empresa")

	// Ningún write de Company, ni siquiera la propia.
	for _, op := range []access.Op{access.OpCreate, access.OpUpdate, access.OpDelete} {
		d := access.ResolveScope(p, access.KindCompany, op, companyA, "")
		assert.False(t, d.Allowed, "owner no escribe Company (op %v)", op)
	}
}

func TestResolveScope_OwnerCubreTodaSuEmpresa(t *testing.T) {
	p := ownerOfA()
	for _, kind := range []access.Kind{access.KindLocation, access.KindOffer, access.KindUser} {
		for _, op := range []access.Op{access.OpRead, access.OpCreate, access.OpUpdate, access.OpDelete} {
			d := access.ResolveScope(p, kind, op, companyA, locationA)
			assert.True(t, d.Allowed, "owner administra %v de su empresa", kind)
		}
		d := access.ResolveScope(p, kind, access.OpRead, companyB, locationB)
		assert.False(t, d.Allowed, "owner no ve %v de otra empresa", kind)
	}
}

func TestResolveScope_ManagerSoloOfertasDeSuLocal(t *testing.T) {
	p := managerOfA1()

	d := access.ResolveScope(p, access.KindOffer, access.OpUpdate, companyA, locationA)
	assert.True(t, d.Allowed, "manager administra ofertas de su local")

	d = access.ResolveScope(p, access.KindOffer, access.OpUpdate, companyA, locationB)
	assert.False(t, d.Allowed, "manager no toca ofertas de otro local aunque sea de su empresa")

	// Monotonía: todo lo que un manager puede, el owner de la misma empresa
	// también puede.
	owner := ownerOfA()
	d = access.ResolveScope(owner, access.KindOffer, access.OpUpdate, companyA, locationA)
	assert.True(t, d.Allowed)

	for _, kind := range []access.Kind{access.KindCompany, access.KindLocation, access.KindUser} {
		d := access.ResolveScope(p, kind, access.OpRead, companyA, locationA)
		assert.False(t, d.Allowed, "manager nunca administra %v", kind)
	}
}

func TestResolveScope_PrincipalSinTenantDeniega(t *testing.T) {
	ownerSinEmpresa := access.Principal{UserID: "u", Role: access.RoleOwner}
	d := access.ResolveScope(ownerSinEmpresa, access.KindOffer, access.OpRead, companyA, locationA)
	assert.False(t, d.Allowed, "owner sin company_id deniega todo")

	managerSinLocal := access.Principal{UserID: "u", Role: access.RoleManager, CompanyID: companyA}
	d = access.ResolveScope(managerSinLocal, access.KindOffer, access.OpRead, companyA, locationA)
	assert.False(t, d.Allowed, "manager sin location_id deniega todo")
}

func TestResolveScope_RolDesconocidoDeniega(t *testing.T) {
	p := access.Principal{UserID: "u", Role: access.Role(-1), CompanyID: companyA}
	d := access.ResolveScope(p, access.KindOffer, access.OpRead, companyA, locationA)
	assert.False(t, d.Allowed, "rol fuera de la variante cerrada deniega siempre")
}

// ──────────────────────────────────────────────────────────────────────────────
// ListFilter
// ──────────────────────────────────────────────────────────────────────────────

func TestListFilter_PorRol(t *testing.T) {
	f, ok := access.ListFilter(superadmin(), access.KindOffer)
	require.True(t, ok)
	assert.True(t, f.Unrestricted())

	f, ok = access.ListFilter(ownerOfA(), access.KindOffer)
	require.True(t, ok)
	assert.Equal(t, companyA, f.CompanyID)

	f, ok = access.ListFilter(managerOfA1(), access.KindOffer)
	require.True(t, ok)
	assert.Equal(t, locationA, f.LocationID)

	_, ok = access.ListFilter(managerOfA1(), access.KindLocation)
	assert.False(t, ok, "manager no lista locales")
	_, ok = access.ListFilter(managerOfA1(), access.KindUser)
	assert.False(t, ok, "manager no lista usuarios")
}

// ──────────────────────────────────────────────────────────────────────────────
// DenialError — colapso de lecturas fuera de tenant a not_found
// ──────────────────────────────────────────────────────────────────────────────

func TestDenialError_LecturaFueraDeTenantColapsaANotFound(t *testing.T) {
	err := access.DenialError(ownerOfA(), access.KindOffer, access.OpRead, companyB)
	assert.Equal(t, domain.KindNotFound, err.Kind,
		"leer un recurso de otra empresa no debe revelar su existencia")
}

func TestDenialError_EscrituraFueraDeTenantEsForbidden(t *testing.T) {
	err := access.DenialError(ownerOfA(), access.KindOffer, access.OpUpdate, companyB)
	assert.Equal(t, domain.KindForbidden, err.Kind,
		"las escrituras denegadas responden forbidden, nunca not_found")
}

func TestDenialError_DentroDelTenantEsForbidden(t *testing.T) {
	err := access.DenialError(ownerOfA(), access.KindCompany, access.OpUpdate, companyA)
	assert.Equal(t, domain.KindForbidden, err.Kind,
		"dentro del propio tenant el recurso es conocible; se responde forbidden")
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseRole
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRole(t *testing.T) {
	r, err := access.ParseRole("owner")
	require.NoError(t, err)
	assert.Equal(t, access.RoleOwner, r)

	_, err = access.ParseRole("admin")
	assert.Error(t, err, "roles fuera de la variante no se aceptan")
}
