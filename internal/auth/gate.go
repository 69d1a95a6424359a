package auth

import (
	"time"
)

// RenewedAccess carries an access token minted by the refresh protocol. The
// HTTP layer writes it back as a fresh cookie on the in-flight response.
type RenewedAccess struct {
	Token     string
	ExpiresAt time.Time
}

// Result is a successful authentication outcome.
type Result struct {
	UserID          int64
	AccessExpiresAt time.Time
	// Renewed is non-nil only when the refresh protocol ran.
	Renewed *RenewedAccess
}

// Gate is the orchestration entry point for every protected request: given
// a raw Cookie header it returns an authenticated identity or drives the
// refresh flow.
type Gate struct {
	issuer   *Issuer
	sessions *SessionStore
}

// NewGate wires the gate to its issuer and session store.
func NewGate(issuer *Issuer, sessions *SessionStore) *Gate {
	return &Gate{issuer: issuer, sessions: sessions}
}

// Authenticate resolves the identity behind a raw Cookie header.
//
// A valid access token is the fast path: the identity is returned with no
// state mutated anywhere. When the access token is absent, expired or
// malformed, a present refresh token drives the refresh protocol; any
// refresh failure is terminal for the request and requires a fresh login.
// Every failure collapses to ErrNotAuthenticated so the client cannot
// distinguish malformed from expired from absent.
func (g *Gate) Authenticate(cookieHeader string) (*Result, error) {
	tokens := ReadCookieHeader(cookieHeader)

	if access := tokens[AccessCookieName]; access != "" {
		if claims, err := g.issuer.Verify(access, TokenKindAccess); err == nil {
			return &Result{UserID: claims.UserID, AccessExpiresAt: claims.ExpiresAt.Time}, nil
		}
	}

	refresh := tokens[RefreshCookieName]
	if refresh == "" {
		return nil, ErrNotAuthenticated
	}
	return g.refresh(refresh)
}

// refresh runs the refresh protocol. The refresh token is never auto-renewed
// and the session is left untouched on failure: the token's own signature
// and expiry are the trust boundary, the store is only a cache.
func (g *Gate) refresh(refreshToken string) (*Result, error) {
	claims, err := g.issuer.Verify(refreshToken, TokenKindRefresh)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	// The identity comes from the refresh token's own claims, never from a
	// stale access token.
	token, expiresAt, err := g.issuer.IssueAccess(claims.UserID)
	if err != nil {
		return nil, err
	}
	g.sessions.UpdateAccess(claims.UserID, token, expiresAt)

	return &Result{
		UserID:          claims.UserID,
		AccessExpiresAt: expiresAt,
		Renewed:         &RenewedAccess{Token: token, ExpiresAt: expiresAt},
	}, nil
}
