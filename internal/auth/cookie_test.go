package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workspace-service/internal/domain"
)

func TestReadCookieHeader(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"empty", "", map[string]string{}},
		{"two entries", "a=1; b=2", map[string]string{"a": "1", "b": "2"}},
		{"empty key dropped", "=x; b=2", map[string]string{"b": "2"}},
		{"percent decoded", "k=%20", map[string]string{"k": " "}},
		{"no separator", "justakey", map[string]string{"justakey": ""}},
		{"value with equals", "k=a=b", map[string]string{"k": "a=b"}},
		{"whitespace trimmed", "  a=1 ;  b=2  ", map[string]string{"a": "1", "b": "2"}},
		{"bad escape kept raw", "k=%zz", map[string]string{"k": "%zz"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReadCookieHeader(tc.raw))
		})
	}
}

func TestWritePairSetsBothCookiesWithAttributes(t *testing.T) {
	transport := NewCookieTransport(false)
	now := time.Now()
	pair := domain.TokenPair{
		AccessToken:      "access-value",
		RefreshToken:     "refresh-value",
		AccessExpiresAt:  now.Add(30 * time.Minute),
		RefreshExpiresAt: now.Add(7 * 24 * time.Hour),
	}

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		transport.WritePair(c, pair)
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	cookies := map[string]*http.Cookie{}
	for _, ck := range resp.Cookies() {
		cookies[ck.Name] = ck
	}
	require.Contains(t, cookies, AccessCookieName)
	require.Contains(t, cookies, RefreshCookieName)

	access := cookies[AccessCookieName]
	assert.Equal(t, "access-value", access.Value)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
	assert.False(t, access.Secure)
	assert.WithinDuration(t, pair.AccessExpiresAt, access.Expires, 2*time.Second)

	refresh := cookies[RefreshCookieName]
	assert.True(t, refresh.HttpOnly)
	assert.WithinDuration(t, pair.RefreshExpiresAt, refresh.Expires, 2*time.Second)
}

func TestWritePairSkipsEmptyTokens(t *testing.T) {
	transport := NewCookieTransport(false)
	pair := domain.TokenPair{
		AccessToken:     "only-access",
		AccessExpiresAt: time.Now().Add(30 * time.Minute),
	}

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		transport.WritePair(c, pair)
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, resp.Cookies(), 1)
	assert.Equal(t, AccessCookieName, resp.Cookies()[0].Name)
}

func TestWriteAccessSecureFlag(t *testing.T) {
	transport := NewCookieTransport(true)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		transport.WriteAccess(c, "tok", time.Now().Add(time.Minute))
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, resp.Cookies(), 1)
	assert.True(t, resp.Cookies()[0].Secure)
}
