package auth

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workspace-service/internal/domain"
)

const (
	// AccessCookieName carries the short-lived access token.
	AccessCookieName = "accessToken"
	// RefreshCookieName carries the long-lived refresh token.
	RefreshCookieName = "refreshToken"
)

// CookieTransport serializes token pairs into response cookies and parses
// raw Cookie headers. Each token travels as its own HttpOnly, SameSite=Strict
// cookie whose expiry matches the token's own lifetime.
type CookieTransport struct {
	secure bool
}

// NewCookieTransport builds a transport. secure controls the Secure cookie
// attribute and should be set only when the deployment terminates TLS.
func NewCookieTransport(secure bool) *CookieTransport {
	return &CookieTransport{secure: secure}
}

// WritePair sets one cookie per non-empty token field on the response.
func (t *CookieTransport) WritePair(c *fiber.Ctx, pair domain.TokenPair) {
	if pair.AccessToken != "" {
		t.WriteAccess(c, pair.AccessToken, pair.AccessExpiresAt)
	}
	if pair.RefreshToken != "" {
		c.Cookie(t.cookie(RefreshCookieName, pair.RefreshToken, pair.RefreshExpiresAt))
	}
}

// WriteAccess sets only the access cookie. Used on the refresh path, where
// the refresh cookie is not re-sent so its expiry clock never resets.
func (t *CookieTransport) WriteAccess(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(t.cookie(AccessCookieName, token, expiresAt))
}

func (t *CookieTransport) cookie(name, value string, expiresAt time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   t.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// ReadCookieHeader parses a raw Cookie header into a name/value map. Splits
// on ';', trims whitespace, splits each segment on the first '=' and
// percent-decodes the value. Segments with an empty key are dropped.
// Malformed input never errors: a missing key is the only failure signal a
// caller can observe, and it means "token not presented".
func ReadCookieHeader(raw string) map[string]string {
	values := make(map[string]string)
	if raw == "" {
		return values
	}
	for _, segment := range strings.Split(raw, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, value, _ := strings.Cut(segment, "=")
		if name == "" {
			continue
		}
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		values[name] = value
	}
	return values
}
