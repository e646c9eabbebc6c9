package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
	"github.com/tu-usuario/ofertas-pro/pkg/jwt"
)

// ErrInvalidCredentials email desconocido o contraseña incorrecta. El handler
// lo mapea a 401; no distingue entre ambos casos a propósito.
var ErrInvalidCredentials = errors.New("credenciales inválidas")

// UseCase autentica usuarios y emite tokens. Es la frontera del Authenticator
// externo: sus fallos (credenciales, expiración) no forman parte de la
// taxonomía de errores de dominio.
type UseCase struct {
	users      repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

func NewUseCase(users repository.UserRepository, secret, issuer string, expMinutes int) *UseCase {
	return &UseCase{users: users, jwtSecret: secret, jwtIssuer: issuer, expMinutes: expMinutes}
}

// Login verifica credenciales y devuelve un JWT con la identidad y el alcance
// (role, company_id, location_id) en los claims.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.Validation("faltan campos obligatorios", "email", "password")
	}
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.Dependency("consulta de usuario", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.CompanyID, user.LocationID, user.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, domain.Dependency("firma de token", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:         user.ID,
			Email:      user.Email,
			Role:       user.Role,
			CompanyID:  user.CompanyID,
			LocationID: user.LocationID,
			Active:     user.Active,
			CreatedAt:  user.CreatedAt,
			UpdatedAt:  user.UpdatedAt,
		},
	}, nil
}
