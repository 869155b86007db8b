package handlers

import (
	"github.com/arzan03/CampDirectory/internal/middleware"
	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/services"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/gofiber/fiber/v2"
)

// CourseHandler exposes course routes, both top-level and nested under a
// bootcamp.
type CourseHandler struct {
	courses *services.CourseService
}

func NewCourseHandler(courses *services.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List handles GET /courses and GET /bootcamps/:bootcampId/courses.
func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses, result, err := h.courses.List(c.Context(), c.Params("bootcampId"), c.Queries())
	if err != nil {
		return err
	}
	return web.List(c, courses, result)
}

func (h *CourseHandler) Get(c *fiber.Ctx) error {
	course, err := h.courses.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return web.OK(c, course)
}

// Create handles POST /bootcamps/:bootcampId/courses.
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return web.BadRequest("Invalid request body")
	}

	created, err := h.courses.Create(c.Context(), middleware.CurrentUser(c), c.Params("bootcampId"), course)
	if err != nil {
		return err
	}
	return web.Created(c, created)
}

func (h *CourseHandler) Update(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return web.BadRequest("Invalid request body")
	}

	updated, err := h.courses.Update(c.Context(), middleware.CurrentUser(c), c.Params("id"), course)
	if err != nil {
		return err
	}
	return web.OK(c, updated)
}

func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	if err := h.courses.Delete(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return err
	}
	return web.OK(c, fiber.Map{})
}
