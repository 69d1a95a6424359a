package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/workspace-service/pkg/util"
)

const userKey = "auth_user"

// Middleware enforces authentication on protected routes by running the
// gate against the request's Cookie header.
type Middleware struct {
	gate      *Gate
	transport *CookieTransport
}

// NewMiddleware constructs middleware.
func NewMiddleware(gate *Gate, transport *CookieTransport) *Middleware {
	return &Middleware{gate: gate, transport: transport}
}

// Handle authenticates the request and stores the user id in request
// locals. On the refresh path the renewed access cookie is written onto the
// in-flight response. All failures map to 403 without detail.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	result, err := m.gate.Authenticate(c.Get(fiber.HeaderCookie))
	if err != nil {
		return apperrors.NewForbidden("forbidden")
	}

	if result.Renewed != nil {
		m.transport.WriteAccess(c, result.Renewed.Token, result.Renewed.ExpiresAt)
	}

	c.Locals(userKey, result.UserID)
	return c.Next()
}

// UserFromContext retrieves the authenticated user id.
func UserFromContext(c *fiber.Ctx) (int64, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}
