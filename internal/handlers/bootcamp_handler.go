package handlers

import (
	"github.com/arzan03/CampDirectory/internal/middleware"
	"github.com/arzan03/CampDirectory/internal/models"
	"github.com/arzan03/CampDirectory/internal/services"
	"github.com/arzan03/CampDirectory/internal/web"
	"github.com/gofiber/fiber/v2"
)

// BootcampHandler exposes the bootcamp CRUD and photo upload routes.
type BootcampHandler struct {
	bootcamps *services.BootcampService
}

func NewBootcampHandler(bootcamps *services.BootcampService) *BootcampHandler {
	return &BootcampHandler{bootcamps: bootcamps}
}

// List handles GET /bootcamps with filter/select/sort/page/limit parameters.
func (h *BootcampHandler) List(c *fiber.Ctx) error {
	bootcamps, result, err := h.bootcamps.List(c.Context(), c.Queries())
	if err != nil {
		return err
	}
	return web.List(c, bootcamps, result)
}

func (h *BootcampHandler) Get(c *fiber.Ctx) error {
	bootcamp, err := h.bootcamps.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return web.OK(c, bootcamp)
}

func (h *BootcampHandler) Create(c *fiber.Ctx) error {
	var bootcamp models.Bootcamp
	if err := c.BodyParser(&bootcamp); err != nil {
		return web.BadRequest("Invalid request body")
	}

	created, err := h.bootcamps.Create(c.Context(), middleware.CurrentUser(c), bootcamp)
	if err != nil {
		return err
	}
	return web.Created(c, created)
}

func (h *BootcampHandler) Update(c *fiber.Ctx) error {
	var bootcamp models.Bootcamp
	if err := c.BodyParser(&bootcamp); err != nil {
		return web.BadRequest("Invalid request body")
	}

	updated, err := h.bootcamps.Update(c.Context(), middleware.CurrentUser(c), c.Params("id"), bootcamp)
	if err != nil {
		return err
	}
	return web.OK(c, updated)
}

func (h *BootcampHandler) Delete(c *fiber.Ctx) error {
	if err := h.bootcamps.Delete(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return err
	}
	return web.OK(c, fiber.Map{})
}

// UploadPhoto handles PUT /bootcamps/:id/photo multipart uploads.
func (h *BootcampHandler) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return web.BadRequest("Please upload a file")
	}

	location, err := h.bootcamps.UploadPhoto(c.Context(), middleware.CurrentUser(c), c.Params("id"), file)
	if err != nil {
		return err
	}
	return web.OK(c, location)
}
