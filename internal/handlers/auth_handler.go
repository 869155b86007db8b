package handlers

import (
	"time"

	"github.com/arzan03/CampDirectory/internal/config"
	"github.com/arzan03/CampDirectory/internal/middleware"
	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/services"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes registration, login and account-management routes.
type AuthHandler struct {
	auth *services.AuthService
	cfg  *config.Config
}

func NewAuthHandler(auth *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: auth, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&request); err != nil {
		return web.BadRequest("Invalid request body")
	}

	user, err := h.auth.Register(c.Context(), request.Name, request.Email, request.Password, request.Role)
	if err != nil {
		return err
	}
	return h.sendTokenResponse(c, &user, fiber.StatusCreated)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return web.BadRequest("Invalid request body")
	}

	user, err := h.auth.Login(c.Context(), request.Email, request.Password)
	if err != nil {
		return err
	}
	return h.sendTokenResponse(c, &user, fiber.StatusOK)
}

// Logout clears the token cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "none",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
	})
	return web.OK(c, fiber.Map{})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return web.OK(c, middleware.CurrentUser(c))
}

func (h *AuthHandler) UpdateDetails(c *fiber.Ctx) error {
	var request struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&request); err != nil {
		return web.BadRequest("Invalid request body")
	}

	user := middleware.CurrentUser(c)
	updated, err := h.auth.UpdateDetails(c.Context(), user.ID, request.Name, request.Email)
	if err != nil {
		return err
	}
	return web.OK(c, updated)
}

func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var request struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&request); err != nil {
		return web.BadRequest("Invalid request body")
	}

	user := middleware.CurrentUser(c)
	if err := h.auth.UpdatePassword(c.Context(), user, request.CurrentPassword, request.NewPassword); err != nil {
		return err
	}
	return h.sendTokenResponse(c, user, fiber.StatusOK)
}

// sendTokenResponse signs a JWT, sets it as an HTTP-only cookie and returns
// it in the body alongside the user.
func (h *AuthHandler) sendTokenResponse(c *fiber.Ctx, user *models.User, status int) error {
	token, err := h.auth.SignToken(user)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  time.Now().Add(h.cfg.JWTCookieExpire),
		HTTPOnly: true,
		Secure:   h.cfg.Env == "production",
	})

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data":    user,
	})
}
