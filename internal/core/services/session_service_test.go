package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplekyc/internal/adapters/persistence/models"
	"simplekyc/internal/config"
	"simplekyc/internal/core/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenMins: 15},
		Session: config.SessionConfig{TokenRetentionDays: 7},
	}
}

func newSessionFixture() (*SessionService, *fakeDirectory, *memoryTokenRepo) {
	dir := newFakeDirectory()
	repo := newMemoryTokenRepo()
	return NewSessionService(dir, repo, testConfig()), dir, repo
}

func TestLoginMapsDirectoryRole(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	// "admin" maps to officer and lands on the review queue
	resp, err := svc.Login(ctx, &LoginInput{Username: "emilys", Password: "emilyspass"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOfficer, resp.User.Role)
	assert.Equal(t, "/pages/review", resp.RedirectTo)
	assert.NotEmpty(t, resp.AccessToken)

	// any other directory role maps to user and lands on their profile
	resp, err = svc.Login(ctx, &LoginInput{Username: "michaelw", Password: "emilyspass"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.Equal(t, "/pages/user/2/personal-information", resp.RedirectTo)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newSessionFixture()

	_, err := svc.Login(context.Background(), &LoginInput{Username: "emilys", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{Username: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginSurfacesDirectoryOutage(t *testing.T) {
	svc, dir, _ := newSessionFixture()
	dir.down = true

	_, err := svc.Login(context.Background(), &LoginInput{Username: "emilys", Password: "emilyspass"})
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
}

func TestHydrateRestoresSession(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	resp, err := svc.Login(ctx, &LoginInput{Username: "emilys", Password: "emilyspass"})
	require.NoError(t, err)

	session, err := svc.Hydrate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, "emilys", session.User.Username)
	assert.Equal(t, domain.RoleOfficer, session.User.Role)
	assert.Equal(t, "emily.johnson@x.dummyjson.com", session.User.Email)
}

func TestHydrateDegradesGracefullyWhenDirectoryDown(t *testing.T) {
	svc, dir, _ := newSessionFixture()
	ctx := context.Background()

	resp, err := svc.Login(ctx, &LoginInput{Username: "emilys", Password: "emilyspass"})
	require.NoError(t, err)

	dir.down = true
	session, err := svc.Hydrate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, "emilys", session.User.Username)
	assert.Empty(t, session.User.Email, "profile enrichment is best-effort")
}

func TestHydrateRejectsGarbageAndMissingTokens(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	session, err := svc.Hydrate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, session.IsAuthenticated)

	session, err = svc.Hydrate(ctx, "not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, session.IsAuthenticated)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	resp, err := svc.Login(ctx, &LoginInput{Username: "emilys", Password: "emilyspass"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, resp.AccessToken))

	_, err = svc.Hydrate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// logging out twice is harmless
	assert.NoError(t, svc.Logout(ctx, resp.AccessToken))
	assert.NoError(t, svc.Logout(ctx, "garbage"))
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	first, err := svc.Login(ctx, &LoginInput{Username: "emilys", Password: "emilyspass"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &LoginInput{Username: "emilys", Password: "emilyspass"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, second.AccessToken))

	_, err = svc.Hydrate(ctx, first.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Hydrate(ctx, second.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// an invalid token is a no-op, like Logout
	assert.NoError(t, svc.LogoutAll(ctx, "garbage"))
}

func TestPruneExpiredTokens(t *testing.T) {
	svc, _, repo := newSessionFixture()
	ctx := context.Background()

	stale := &models.SessionToken{
		UserID: 1, Username: "emilys", Role: "officer",
		TokenID: "stale", ExpiresAt: time.Now().AddDate(0, 0, -30),
	}
	require.NoError(t, repo.Create(ctx, stale))

	fresh := &models.SessionToken{
		UserID: 1, Username: "emilys", Role: "officer",
		TokenID: "fresh", ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, fresh))

	deleted, err := svc.PruneExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
