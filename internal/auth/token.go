package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/workspace-service/internal/config"
	"github.com/spec-kit/workspace-service/internal/domain"
)

// TokenKind selects which signing key a token is issued and verified with.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims describes the signed token payload.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies the access/refresh token pair. The two kinds
// are signed with distinct keys and never validate against each other.
type Issuer struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer builds an issuer from auth configuration.
func NewIssuer(cfg config.AuthConfig) *Issuer {
	return &Issuer{
		accessKey:  []byte(cfg.AccessTokenSecret),
		refreshKey: []byte(cfg.RefreshTokenSecret),
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
	}
}

// Issue mints a fresh token pair for the user. Pure computation, no I/O.
func (i *Issuer) Issue(userID int64) (domain.TokenPair, error) {
	now := time.Now()

	access, accessExp, err := i.sign(userID, now, i.accessTTL, i.accessKey)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, refreshExp, err := i.sign(userID, now, i.refreshTTL, i.refreshKey)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// IssueAccess mints only a new access token, used by the refresh protocol.
// The session's refresh token is deliberately left untouched: its 7-day
// lifetime is a hard ceiling on session length.
func (i *Issuer) IssueAccess(userID int64) (string, time.Time, error) {
	return i.sign(userID, time.Now(), i.accessTTL, i.accessKey)
}

func (i *Issuer) sign(userID int64, now time.Time, ttl time.Duration, key []byte) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the token's signature against the key for kind, then its
// expiry. Signature or structural failure yields TokenMalformed; a valid
// signature past expiry yields TokenExpired. The caller relies on this
// distinction: malformed is rejected outright, an expired access token may
// still be refreshed.
func (i *Issuer) Verify(tokenStr string, kind TokenKind) (*Claims, error) {
	key := i.accessKey
	if kind == TokenKindRefresh {
		key = i.refreshKey
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &TokenError{Kind: TokenExpired, Err: err}
		}
		return nil, &TokenError{Kind: TokenMalformed, Err: err}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, &TokenError{Kind: TokenMalformed, Err: errors.New("invalid token claims")}
	}
	if claims.ExpiresAt == nil {
		return nil, &TokenError{Kind: TokenMalformed, Err: errors.New("missing expiry claim")}
	}
	return claims, nil
}
