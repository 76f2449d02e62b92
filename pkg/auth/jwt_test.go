package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-api/internal/model"
)

func testService() JWTService {
	return NewJWTService(Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		ExpiryHours:   1,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testService()
	user := &model.User{
		Base:  model.Base{ID: uuid.New()},
		Email: "jordan.avery@example.com",
	}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestRefreshTokenUsesSeparateSecret(t *testing.T) {
	svc := testService()
	user := &model.User{Base: model.Base{ID: uuid.New()}, Email: "jordan.avery@example.com"}

	refresh, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// A refresh token must not pass access-token validation.
	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := testService()
	user := &model.User{Base: model.Base{ID: uuid.New()}, Email: "jordan.avery@example.com"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	other := NewJWTService(Config{Secret: "different", RefreshSecret: "different"})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := testService()
	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
