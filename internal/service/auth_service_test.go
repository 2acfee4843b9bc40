package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/liu-tentor/exam-archive-api/internal/models"
	appErrors "github.com/liu-tentor/exam-archive-api/pkg/errors"
)

func newAuthServiceForTest(t *testing.T) *AuthService {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(validator.New(), nil, AuthConfig{
		AdminEmail:        "admin@liutentor.se",
		AdminPasswordHash: string(hash),
		TokenSecret:       "test-secret",
		TokenExpiry:       time.Hour,
	})
}

func TestAuthLoginIssuesValidToken(t *testing.T) {
	svc := newAuthServiceForTest(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "admin@liutentor.se", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@liutentor.se", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := newAuthServiceForTest(t)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "admin@liutentor.se", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	svc := newAuthServiceForTest(t)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "someone@liu.se", Password: "hunter22"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginPayloadValidation(t *testing.T) {
	svc := newAuthServiceForTest(t)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthServiceForTest(t)
	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginUnconfigured(t *testing.T) {
	svc := NewAuthService(validator.New(), nil, AuthConfig{TokenSecret: "s"})
	_, err := svc.Login(context.Background(), LoginRequest{Email: "admin@liutentor.se", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
