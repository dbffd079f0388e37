package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(accessTTL, refreshTTL time.Duration) *TokenService {
	return NewTokenService("access-secret", "refresh-secret", accessTTL, refreshTTL)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService(time.Minute, time.Hour)

	identity := Identity{ID: "usr_1", Email: "a@example.com", Role: "viewer"}

	token, err := svc.IssueAccess(identity)
	require.NoError(t, err)

	got, err := svc.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService(time.Minute, time.Hour)

	identity := Identity{ID: "usr_2", Email: "b@example.com", Role: "admin"}

	token, err := svc.IssueRefresh(identity)
	require.NoError(t, err)

	got, err := svc.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestSecretsArePartitioned(t *testing.T) {
	svc := newTestService(time.Minute, time.Hour)

	access, err := svc.IssueAccess(Identity{ID: "usr_3", Role: "client"})
	require.NoError(t, err)

	// an access token must never verify as a refresh token
	_, err = svc.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	refresh, err := svc.IssueRefresh(Identity{ID: "usr_3", Role: "client"})
	require.NoError(t, err)

	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenFailsUniformly(t *testing.T) {
	svc := newTestService(-time.Minute, time.Hour)

	token, err := svc.IssueAccess(Identity{ID: "usr_4", Role: "viewer"})
	require.NoError(t, err)

	_, err = svc.VerifyAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenFailsUniformly(t *testing.T) {
	svc := newTestService(time.Minute, time.Hour)

	token, err := svc.IssueAccess(Identity{ID: "usr_5", Role: "viewer"})
	require.NoError(t, err)

	other := NewTokenService("different-secret", "refresh-secret", time.Minute, time.Hour)
	_, err = other.VerifyAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// expired and tampered surface the same error value
	expired := newTestService(-time.Minute, time.Hour)
	expiredToken, err := expired.IssueAccess(Identity{ID: "usr_5", Role: "viewer"})
	require.NoError(t, err)

	_, expiredErr := expired.VerifyAccess(expiredToken)
	assert.Equal(t, err2str(expiredErr), err2str(ErrInvalidToken))
}

func err2str(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
