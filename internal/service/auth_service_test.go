package service

import (
	"context"
	"testing"

	"github.com/juanmzaragoza/billing-dad-project/internal/config"
	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (AuthService, *config.Config) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 8, JWTRefreshHours: 24}
	return NewAuthService(repository.NewUsuarioRepository(newTestDB(t)), cfg), cfg
}

func guardarAdmin(t *testing.T, svc AuthService, password string) *dto.UsuarioResponse {
	t.Helper()
	u, err := svc.GuardarUsuario(context.Background(), dto.GuardarUsuarioRequest{
		Username: "admin",
		Nombre:   "Administración",
		Password: password,
		Rol:      "administrador",
	})
	require.NoError(t, err)
	return u
}

func claimsDe(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(secret), nil })
	require.NoError(t, err)
	return parsed.Claims.(jwt.MapClaims)
}

func TestAuthService_Login(t *testing.T) {
	svc, cfg := newAuthFixture(t)
	u := guardarAdmin(t, svc, "clave-segura")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, u.ID, resp.User.ID)

	access := claimsDe(t, resp.AccessToken, cfg.JWTSecret)
	assert.Equal(t, TokenAcceso, access["typ"])
	assert.Equal(t, "administrador", access["rol"])
	assert.Equal(t, u.ID, access["user_id"])
	assert.Equal(t, TokenRefresh, claimsDe(t, resp.RefreshToken, cfg.JWTSecret)["typ"])
}

func TestAuthService_LoginCredencialesInvalidas(t *testing.T) {
	svc, _ := newAuthFixture(t)
	guardarAdmin(t, svc, "clave-segura")

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "otra-clave"})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "clave-segura"})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newAuthFixture(t)
	guardarAdmin(t, svc, "clave-segura")
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "clave-segura"})
	require.NoError(t, err)

	renewed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(ctx, login.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalido)
	_, err = svc.Refresh(ctx, "basura")
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestAuthService_RefreshOtraFirma(t *testing.T) {
	svc, _ := newAuthFixture(t)
	u := guardarAdmin(t, svc, "clave-segura")

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": u.ID, "typ": TokenRefresh})
	signed, err := forged.SignedString([]byte("otro-secreto"))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), signed)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestAuthService_GuardarUsuarioReemplazaClave(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()
	first := guardarAdmin(t, svc, "clave-vieja")
	second := guardarAdmin(t, svc, "clave-nueva")

	assert.Equal(t, first.ID, second.ID)
	_, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "clave-vieja"})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "clave-nueva"})
	assert.NoError(t, err)
}
