package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/workspace-service/internal/observability"
	apperrors "github.com/spec-kit/workspace-service/pkg/util"
)

func newMeteredApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()
	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	return app, metrics
}

func TestRequestMetricsRecordSuccessStatus(t *testing.T) {
	app, metrics := newMeteredApp(t)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, int64(1), metrics.RequestTotal("/ok", fiber.MethodGet, fiber.StatusOK))
}

func TestRequestMetricsRecordErrorStatus(t *testing.T) {
	app, metrics := newMeteredApp(t)
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return apperrors.NewForbidden("not yours")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/forbidden", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	assert.Equal(t, int64(1), metrics.RequestTotal("/forbidden", fiber.MethodGet, fiber.StatusForbidden))
	assert.Zero(t, metrics.RequestTotal("/forbidden", fiber.MethodGet, fiber.StatusOK))
}

func TestRequestMetricsRecordPanicAsServerError(t *testing.T) {
	app, metrics := newMeteredApp(t)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	assert.Equal(t, int64(1), metrics.RequestTotal("/panic", fiber.MethodGet, fiber.StatusInternalServerError))
	assert.Zero(t, metrics.RequestTotal("/panic", fiber.MethodGet, fiber.StatusOK))
}
