package auth

import "time"

// ChannelSession is the cached authentication state of one persistent
// connection. The websocket transport cannot re-run the cookie negotiation
// per message, so the handshake result is held for the connection lifetime
// and each inbound message only checks it against the clock.
type ChannelSession struct {
	UserID    int64
	sessions  *SessionStore
	expiresAt time.Time
}

// Live reports whether the access claims cached for this connection are
// still inside their validity window. When the cached window has lapsed the
// session store is read once: a parallel request may have run the refresh
// protocol in the meantime, and an unexpired access window found there is
// adopted. The read is a cache lookup, not a grant; an empty or stale store
// entry ends the session. Once this turns false the channel must notify the
// peer and close; there is no way to rewrite the client's cookies
// mid-connection.
func (s *ChannelSession) Live(now time.Time) bool {
	if now.Before(s.expiresAt) {
		return true
	}
	if s.sessions == nil {
		return false
	}
	pair, ok := s.sessions.Get(s.UserID)
	if !ok || !now.Before(pair.AccessExpiresAt) {
		return false
	}
	s.expiresAt = pair.AccessExpiresAt
	return true
}

// ChannelBridge re-validates a session at the start of a persistent
// connection by running the full gate once against the handshake's Cookie
// header.
type ChannelBridge struct {
	gate *Gate
}

// NewChannelBridge wires the bridge to the gate.
func NewChannelBridge(gate *Gate) *ChannelBridge {
	return &ChannelBridge{gate: gate}
}

// Handshake authenticates the connection's initial request and caches the
// resulting identity and access expiry for per-message liveness checks.
func (b *ChannelBridge) Handshake(cookieHeader string) (*ChannelSession, error) {
	result, err := b.gate.Authenticate(cookieHeader)
	if err != nil {
		return nil, err
	}
	return &ChannelSession{
		UserID:    result.UserID,
		sessions:  b.gate.sessions,
		expiresAt: result.AccessExpiresAt,
	}, nil
}
