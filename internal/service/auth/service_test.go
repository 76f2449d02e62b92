package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-api/internal/email"
	"github.com/alumnihub/portal-api/internal/repository/sqldb"
	"github.com/alumnihub/portal-api/internal/service/auth"
	"github.com/alumnihub/portal-api/internal/testutil"
	pkgauth "github.com/alumnihub/portal-api/pkg/auth"
)

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	db := testutil.NewTestDB(t)
	userRepo := sqldb.NewUserRepository(sqldb.NewBaseRepository(db))
	jwtSvc := pkgauth.NewJWTService(pkgauth.Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		ExpiryHours:   1,
	})
	return auth.NewService(userRepo, jwtSvc, email.NoopService{})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, auth.RegisterInput{
		FullName: "Jordan Avery",
		Email:    "  Jordan.Avery@Example.com  ",
		Password: "correct horse battery",
		GradYear: "2015",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "jordan.avery@example.com", tokens.User.Email)
	assert.NotEqual(t, "correct horse battery", tokens.User.PasswordHash)

	got, err := svc.Login(ctx, "JORDAN.AVERY@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, got.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	input := auth.RegisterInput{
		FullName: "Jordan Avery",
		Email:    "jordan.avery@example.com",
		Password: "correct horse battery",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	input.Email = "Jordan.Avery@Example.com"
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{
		FullName: "Jordan Avery",
		Email:    "jordan.avery@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "jordan.avery@example.com", "wrong password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, auth.RegisterInput{
		FullName: "Jordan Avery",
		Email:    "jordan.avery@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(ctx, tokens.AccessToken)
	assert.Error(t, err, "access tokens are not valid refresh tokens")
}
