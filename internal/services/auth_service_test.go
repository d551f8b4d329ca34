package services

import (
	"testing"

	"github.com/akazakov/bankcards/internal/dto"
	"github.com/akazakov/bankcards/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(NewUserService(db), cfg)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	resp, err := svc.Login(&dto.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(NewUserService(db), testConfig())
	createTestUser(t, db, "user@example.com", models.RoleUser)

	_, err := svc.Login(&dto.LoginRequest{Email: "user@example.com", Password: "wrong"})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(NewUserService(db), testConfig())

	_, err := svc.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(NewUserService(db), testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		FirstName:  "Oleg",
		SecondName: "Ivanov",
		Email:      "oleg@example.com",
		Password:   "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "oleg@example.com", resp.Email)

	// Registered users can log in straight away.
	login, err := svc.Login(&dto.LoginRequest{Email: "oleg@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}
