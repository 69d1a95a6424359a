package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelBridgeHandshake(t *testing.T) {
	gate, issuer, _ := newTestGate(t)
	bridge := NewChannelBridge(gate)

	pair, err := issuer.Issue(11)
	require.NoError(t, err)

	session, err := bridge.Handshake(cookieHeader(pair.AccessToken, pair.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, int64(11), session.UserID)

	assert.True(t, session.Live(time.Now()))
	assert.True(t, session.Live(time.Now().Add(29*time.Minute)))
	assert.False(t, session.Live(time.Now().Add(31*time.Minute)))
}

func TestChannelBridgeHandshakeRejectsUnauthenticated(t *testing.T) {
	gate, _, _ := newTestGate(t)
	bridge := NewChannelBridge(gate)

	_, err := bridge.Handshake("")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = bridge.Handshake(cookieHeader("garbage", ""))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestChannelSessionAdoptsParallelRefresh(t *testing.T) {
	gate, issuer, store := newTestGate(t)
	bridge := NewChannelBridge(gate)

	pair, err := issuer.Issue(11)
	require.NoError(t, err)
	store.Put(11, pair)

	session, err := bridge.Handshake(cookieHeader(pair.AccessToken, pair.RefreshToken))
	require.NoError(t, err)

	// While the connection idles past its cached window, a parallel request
	// runs the refresh protocol and leaves a newer access token in the store.
	renewed, renewedExp, err := issuer.IssueAccess(11)
	require.NoError(t, err)
	store.UpdateAccess(11, renewed, renewedExp)
	session.expiresAt = time.Now().Add(-time.Minute)

	assert.True(t, session.Live(time.Now()))
	// The renewed window is adopted, so later checks stay off the store.
	assert.Equal(t, renewedExp, session.expiresAt)
}

func TestChannelSessionExpiredWithStaleStore(t *testing.T) {
	gate, issuer, store := newTestGate(t)
	bridge := NewChannelBridge(gate)

	pair, err := issuer.Issue(11)
	require.NoError(t, err)

	session, err := bridge.Handshake(cookieHeader(pair.AccessToken, pair.RefreshToken))
	require.NoError(t, err)

	stale := pair
	stale.AccessExpiresAt = time.Now().Add(-time.Minute)
	store.Put(11, stale)
	session.expiresAt = time.Now().Add(-time.Minute)

	assert.False(t, session.Live(time.Now()))
}

func TestChannelSessionExpiredAfterStoreLoss(t *testing.T) {
	gate, issuer, _ := newTestGate(t)
	bridge := NewChannelBridge(gate)

	pair, err := issuer.Issue(11)
	require.NoError(t, err)

	session, err := bridge.Handshake(cookieHeader(pair.AccessToken, pair.RefreshToken))
	require.NoError(t, err)

	session.expiresAt = time.Now().Add(-time.Minute)
	assert.False(t, session.Live(time.Now()))
}

func TestChannelBridgeHandshakeViaRefresh(t *testing.T) {
	gate, issuer, store := newTestGate(t)
	bridge := NewChannelBridge(gate)

	pair, err := issuer.Issue(11)
	require.NoError(t, err)
	store.Put(11, pair)

	// Handshake with only a refresh cookie runs the refresh protocol and
	// caches the renewed access expiry.
	session, err := bridge.Handshake(cookieHeader("", pair.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, int64(11), session.UserID)
	assert.True(t, session.Live(time.Now()))
}
