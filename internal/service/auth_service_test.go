package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/config"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/service"
)

func testAuthConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AuthConfig{
		Secret:            "test-secret",
		TokenExpiry:       time.Hour,
		Issuer:            "cashflow-test",
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: string(hash),
	}
}

func TestLogin_Success(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	out, err := svc.Login(service.LoginInput{Email: "admin@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), out.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "cashflow-test", claims.Issuer)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	_, err := svc.Login(service.LoginInput{Email: "admin@example.com", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_WrongEmail(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	_, err := svc.Login(service.LoginInput{Email: "intruder@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_NoHashConfigured(t *testing.T) {
	cfg := testAuthConfig(t)
	cfg.AdminPasswordHash = ""
	svc := service.NewAuthService(cfg)

	_, err := svc.Login(service.LoginInput{Email: "admin@example.com", Password: "anything"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))
	out, err := svc.Login(service.LoginInput{Email: "admin@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	other := service.NewAuthService(config.AuthConfig{Secret: "different-secret", TokenExpiry: time.Hour})
	_, err = other.ValidateToken(out.Token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(t))

	_, err := svc.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}
