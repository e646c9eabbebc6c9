package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/ofertas-pro/internal/application/auth"
	"github.com/tu-usuario/ofertas-pro/internal/application/dto"
	"github.com/tu-usuario/ofertas-pro/internal/domain"
	"github.com/tu-usuario/ofertas-pro/internal/domain/entity"
	"github.com/tu-usuario/ofertas-pro/internal/domain/repository"
	"github.com/tu-usuario/ofertas-pro/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}
func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) EmailExists(_ context.Context, _, _ string) (bool, error) { return false, nil }
func (f *fakeUserRepo) Update(_ context.Context, _ *entity.User) error           { return nil }
func (f *fakeUserRepo) List(_ context.Context, _ repository.UserListFilter) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) SoftDelete(_ context.Context, _ string) (bool, error) { return false, nil }

const testSecret = "secreto-de-prueba"

func newAuthUC(t *testing.T) (*auth.UseCase, *fakeUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("donas123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{byEmail: map[string]*entity.User{
		"owner@donas.co": {
			ID:           "u-1",
			Email:        "owner@donas.co",
			PasswordHash: string(hash),
			Role:         entity.RoleOwner,
			CompanyID:    "company-1",
			Active:       true,
		},
	}}
	return auth.NewUseCase(repo, testSecret, "ofertas-pro", 60), repo
}

func TestLogin_Exitoso(t *testing.T) {
	uc, _ := newAuthUC(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "owner@donas.co", Password: "donas123"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.User.ID)
	assert.Equal(t, entity.RoleOwner, out.User.Role)

	// El token lleva identidad y alcance completos en los claims.
	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "company-1", claims.CompanyID)
	assert.Equal(t, entity.RoleOwner, claims.Role)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc, _ := newAuthUC(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@donas.co", Password: "donas123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := newAuthUC(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "owner@donas.co", Password: "otra"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials,
		"email malo y password mala responden lo mismo: no se filtra cuál falló")
}

func TestLogin_CamposVacios(t *testing.T) {
	uc, _ := newAuthUC(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
