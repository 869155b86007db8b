package handlers

import (
	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/services"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes the admin-only user management routes.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, result, err := h.users.List(c.Context(), c.Queries())
	if err != nil {
		return err
	}
	return web.List(c, users, result)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return web.OK(c, user)
}

// userRequest mirrors models.User but accepts the password field, which the
// model never serializes.
type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var request userRequest
	if err := c.BodyParser(&request); err != nil {
		return web.BadRequest("Invalid request body")
	}

	created, err := h.users.Create(c.Context(), models.User{
		Name:     request.Name,
		Email:    request.Email,
		Role:     request.Role,
		Password: request.Password,
	})
	if err != nil {
		return err
	}
	return web.Created(c, created)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var request userRequest
	if err := c.BodyParser(&request); err != nil {
		return web.BadRequest("Invalid request body")
	}

	updated, err := h.users.Update(c.Context(), c.Params("id"), models.User{
		Name:     request.Name,
		Email:    request.Email,
		Role:     request.Role,
		Password: request.Password,
	})
	if err != nil {
		return err
	}
	return web.OK(c, updated)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return web.OK(c, fiber.Map{})
}
