package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arzan03/CampDirectory/internal/config"
	"github.com/arzan03/CampDirectory/internal/middleware"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoutClearsTokenCookie(t *testing.T) {
	h := NewAuthHandler(nil, &config.Config{})

	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler})
	app.Get("/logout", h.Logout)

	resp, err := app.Test(httptest.NewRequest("GET", "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.TokenCookie, cookies[0].Name)
	assert.Equal(t, "none", cookies[0].Value)
	assert.WithinDuration(t, time.Now().Add(10*time.Second), cookies[0].Expires, time.Minute)
}
