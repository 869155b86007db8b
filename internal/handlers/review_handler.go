package handlers

import (
	"github.com/arzan03/CampDirectory/internal/middleware"
	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/services"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler exposes review routes, both top-level and nested under a
// bootcamp.
type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List handles GET /reviews and GET /bootcamps/:bootcampId/reviews.
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	reviews, result, err := h.reviews.List(c.Context(), c.Params("bootcampId"), c.Queries())
	if err != nil {
		return err
	}
	return web.List(c, reviews, result)
}

func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	review, err := h.reviews.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return web.OK(c, review)
}

// Create handles POST /bootcamps/:bootcampId/reviews.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return web.BadRequest("Invalid request body")
	}

	created, err := h.reviews.Create(c.Context(), middleware.CurrentUser(c), c.Params("bootcampId"), review)
	if err != nil {
		return err
	}
	return web.Created(c, created)
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return web.BadRequest("Invalid request body")
	}

	updated, err := h.reviews.Update(c.Context(), middleware.CurrentUser(c), c.Params("id"), review)
	if err != nil {
		return err
	}
	return web.OK(c, updated)
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.reviews.Delete(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return err
	}
	return web.OK(c, fiber.Map{})
}
