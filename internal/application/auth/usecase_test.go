package auth_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenimiento-api/internal/application/apptest"
	"github.com/jhoicas/Mantenimiento-api/internal/application/auth"
	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Mantenimiento-api/pkg/jwt"
)

const testSecret = "secret-de-test"

func newAuthUC() *auth.AuthUseCase {
	store := apptest.NewStore()
	return auth.NewAuthUseCase(apptest.NewUserRepo(store), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "mantenimiento-pro-test",
	})
}

func TestRegisterUser_RolPorDefectoEsTecnico(t *testing.T) {
	uc := newAuthUC()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:      "nuevo@example.com",
		Password:   "s3creta",
		Name:       "Nuevo Usuario",
		HourlyRate: decimal.RequireFromString("45"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleTechnician, out.Role)
	assert.True(t, decimal.RequireFromString("45").Equal(out.HourlyRate))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "a@example.com", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@example.com", Password: "x", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenValidoConRol(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "admin@example.com", Password: "s3creta", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "admin@example.com", Password: "s3creta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@example.com", Password: "correcta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
