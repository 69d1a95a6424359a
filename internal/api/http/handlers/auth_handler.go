package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workspace-service/internal/api/dto"
	"github.com/spec-kit/workspace-service/internal/auth"
	"github.com/spec-kit/workspace-service/internal/service"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth      *service.AuthService
	transport *auth.CookieTransport
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, transport *auth.CookieTransport) *AuthHandler {
	return &AuthHandler{auth: authService, transport: transport}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, pair, err := h.auth.Register(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.transport.WritePair(c, pair)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, pair, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.transport.WritePair(c, pair)
	return c.JSON(fiber.Map{
		"data": dto.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Me handles GET /auth/me on the protected group.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrForbidden
	}

	user, err := h.auth.GetUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
	})
}
