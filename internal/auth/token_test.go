package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workspace-service/internal/config"
)

func newTestIssuer() *Issuer {
	return NewIssuer(config.AuthConfig{
		AccessTokenSecret:     "test-access-secret",
		RefreshTokenSecret:    "test-refresh-secret",
		AccessTokenTTLMinutes: 30,
		RefreshTokenTTLHours:  168,
	})
}

// expiredAccessToken mints an access token whose validity window already
// closed an hour ago.
func expiredAccessToken(t *testing.T, issuer *Issuer, userID int64) string {
	t.Helper()
	token, _, err := issuer.sign(userID, time.Now().Add(-2*time.Hour), time.Hour, issuer.accessKey)
	require.NoError(t, err)
	return token
}

func expiredRefreshToken(t *testing.T, issuer *Issuer, userID int64) string {
	t.Helper()
	token, _, err := issuer.sign(userID, time.Now().Add(-8*24*time.Hour), 7*24*time.Hour, issuer.refreshKey)
	require.NoError(t, err)
	return token
}

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	issuer := newTestIssuer()

	pair, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := issuer.Verify(pair.AccessToken, TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)

	claims, err = issuer.Verify(pair.RefreshToken, TokenKindRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestIssueSetsExpiries(t *testing.T) {
	issuer := newTestIssuer()
	before := time.Now()

	pair, err := issuer.Issue(7)
	require.NoError(t, err)

	assert.WithinDuration(t, before.Add(30*time.Minute), pair.AccessExpiresAt, 5*time.Second)
	assert.WithinDuration(t, before.Add(7*24*time.Hour), pair.RefreshExpiresAt, 5*time.Second)
}

func TestVerifyExpiredIsExpiredNotMalformed(t *testing.T) {
	issuer := newTestIssuer()
	token := expiredAccessToken(t, issuer, 7)

	_, err := issuer.Verify(token, TokenKindAccess)
	var terr *TokenError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, TokenExpired, terr.Kind)
	assert.True(t, IsTokenExpired(err))
}

func TestVerifyCrossKeyIsAlwaysMalformed(t *testing.T) {
	issuer := newTestIssuer()
	pair, err := issuer.Issue(7)
	require.NoError(t, err)

	// A perfectly valid access token must never pass the refresh key.
	_, err = issuer.Verify(pair.AccessToken, TokenKindRefresh)
	var terr *TokenError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, TokenMalformed, terr.Kind)

	_, err = issuer.Verify(pair.RefreshToken, TokenKindAccess)
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, TokenMalformed, terr.Kind)

	// Even an expired access token is malformed under the wrong key, not
	// expired: the signature check wins.
	_, err = issuer.Verify(expiredAccessToken(t, issuer, 7), TokenKindRefresh)
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, TokenMalformed, terr.Kind)
}

func TestVerifyGarbageIsMalformed(t *testing.T) {
	issuer := newTestIssuer()

	for _, garbage := range []string{"", "not-a-token", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		_, err := issuer.Verify(garbage, TokenKindAccess)
		var terr *TokenError
		require.ErrorAs(t, err, &terr, "input %q", garbage)
		assert.Equal(t, TokenMalformed, terr.Kind)
	}
}

func TestIssueAccessLeavesKindSeparation(t *testing.T) {
	issuer := newTestIssuer()

	token, expiresAt, err := issuer.IssueAccess(9)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := issuer.Verify(token, TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)

	_, err = issuer.Verify(token, TokenKindRefresh)
	assert.Error(t, err)
}
