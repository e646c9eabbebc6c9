package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/access"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
)

// UserUseCase administra usuarios del panel. Superadmin crea cualquier rol;
// un owner SOLO crea/administra managers de su propia empresa; un manager no
// administra usuarios.
type UserUseCase struct {
	users     repository.UserRepository
	locations repository.LocationRepository

	Now func() time.Time
}

func NewUserUseCase(users repository.UserRepository, locations repository.LocationRepository) *UserUseCase {
	return &UserUseCase{users: users, locations: locations}
}

func (uc *UserUseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Create da de alta un usuario. Para un owner: rol forzado a manager, empresa
// forzada a la suya, y el local indicado debe pertenecer a su empresa.
func (uc *UserUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	var missing []string
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if in.Role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, domain.Validation("faltan campos obligatorios", missing...)
	}
	if _, err := access.ParseRole(in.Role); err != nil {
		return nil, domain.Validation("rol inválido: " + in.Role)
	}

	companyID := in.CompanyID
	locationID := in.LocationID
	switch p.Role {
	case access.RoleSuperadmin:
		// sin restricciones
	case access.RoleOwner:
		if in.Role != entity.RoleManager {
			return nil, domain.Forbidden("un owner solo puede crear usuarios manager")
		}
		companyID = p.CompanyID
		if locationID == "" {
			return nil, domain.Validation("faltan campos obligatorios", "location_id")
		}
		loc, err := uc.locations.GetByID(ctx, locationID)
		if err != nil {
			return nil, domain.Dependency("consulta de local", err)
		}
		if loc == nil || loc.CompanyID != p.CompanyID {
			return nil, domain.NotFound("local")
		}
	default:
		return nil, domain.Forbidden("no autorizado para crear usuarios")
	}
	if in.Role == entity.RoleManager && locationID == "" {
		return nil, domain.Validation("faltan campos obligatorios", "location_id")
	}

	taken, err := uc.users.EmailExists(ctx, in.Email, "")
	if err != nil {
		return nil, domain.Dependency("consulta de email", err)
	}
	if taken {
		return nil, domain.Conflict("el email ya está registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Dependency("hash de contraseña", err)
	}

	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CompanyID:    companyID,
		LocationID:   locationID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, domain.Dependency("insert de usuario", err)
	}
	return toUserResponse(user), nil
}

// GetByID devuelve un usuario del alcance del principal.
func (uc *UserUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.UserResponse, error) {
	user, err := uc.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindUser, access.OpRead, user.CompanyID, user.LocationID); !d.Allowed {
		return nil, access.DenialError(p, access.KindUser, access.OpRead, user.CompanyID)
	}
	// Un owner no inspecciona otros owners ni superadmins aunque compartan
	// company_id: se colapsa a not_found igual que fuera de tenant.
	if p.Role == access.RoleOwner && user.Role != entity.RoleManager && user.ID != p.UserID {
		return nil, domain.NotFound("usuario")
	}
	return toUserResponse(user), nil
}

// Update modifica un usuario (update parcial). Para un owner el objetivo debe
// ser un manager de su empresa y el rol no puede escalarse.
func (uc *UserUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.ResolveScope(p, access.KindUser, access.OpUpdate, user.CompanyID, user.LocationID); !d.Allowed {
		return nil, access.DenialError(p, access.KindUser, access.OpUpdate, user.CompanyID)
	}
	if p.Role == access.RoleOwner {
		if user.Role != entity.RoleManager {
			return nil, domain.Forbidden("un owner solo administra managers")
		}
		if in.Role != nil && *in.Role != entity.RoleManager {
			return nil, domain.Forbidden("un owner no puede cambiar el rol de un manager")
		}
		if in.CompanyID != nil && *in.CompanyID != p.CompanyID {
			return nil, domain.Forbidden("un owner no puede mover usuarios de empresa")
		}
	}
	if in.Role != nil {
		if _, err := access.ParseRole(*in.Role); err != nil {
			return nil, domain.Validation("rol inválido: " + *in.Role)
		}
		user.Role = *in.Role
	}
	if in.Email != nil && *in.Email != user.Email {
		taken, err := uc.users.EmailExists(ctx, *in.Email, user.ID)
		if err != nil {
			return nil, domain.Dependency("consulta de email", err)
		}
		if taken {
			return nil, domain.Conflict("el email ya está registrado")
		}
		user.Email = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.Dependency("hash de contraseña", err)
		}
		user.PasswordHash = string(hash)
	}
	if in.CompanyID != nil {
		user.CompanyID = *in.CompanyID
	}
	if in.LocationID != nil {
		if p.Role == access.RoleOwner && *in.LocationID != "" {
			loc, err := uc.locations.GetByID(ctx, *in.LocationID)
			if err != nil {
				return nil, domain.Dependency("consulta de local", err)
			}
			if loc == nil || loc.CompanyID != p.CompanyID {
				return nil, domain.NotFound("local")
			}
		}
		user.LocationID = *in.LocationID
	}
	user.UpdatedAt = uc.now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, domain.Dependency("update de usuario", err)
	}
	return toUserResponse(user), nil
}

// Delete hace borrado lógico de un usuario. Nadie puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if id == p.UserID {
		return domain.Validation("no puedes eliminarte a ti mismo")
	}
	user, err := uc.fetch(ctx, id)
	if err != nil {
		return err
	}
	if d := access.ResolveScope(p, access.KindUser, access.OpDelete, user.CompanyID, user.LocationID); !d.Allowed {
		return access.DenialError(p, access.KindUser, access.OpDelete, user.CompanyID)
	}
	if p.Role == access.RoleOwner && user.Role != entity.RoleManager {
		return domain.Forbidden("un owner solo administra managers")
	}
	ok, err := uc.users.SoftDelete(ctx, id)
	if err != nil {
		return domain.Dependency("borrado de usuario", err)
	}
	if !ok {
		return domain.NotFound("usuario")
	}
	return nil
}

// List devuelve los usuarios del alcance. Para un owner el listado queda
// restringido a los managers de su empresa.
func (uc *UserUseCase) List(ctx context.Context, p access.Principal) (*dto.UserListResponse, error) {
	scope, ok := access.ListFilter(p, access.KindUser)
	if !ok {
		return nil, domain.Forbidden("no autorizado para listar usuarios")
	}
	list, err := uc.users.List(ctx, repository.UserListFilter{
		Scope:        scope,
		OnlyManagers: p.Role == access.RoleOwner,
	})
	if err != nil {
		return nil, domain.Dependency("listado de usuarios", err)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items}, nil
}

func (uc *UserUseCase) fetch(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Dependency("consulta de usuario", err)
	}
	if user == nil {
		return nil, domain.NotFound("usuario")
	}
	return user, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		CompanyID:  u.CompanyID,
		LocationID: u.LocationID,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
