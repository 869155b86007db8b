package web

import (
	"github.com/arzan03/CampDirectory/internal/query"
	"github.com/gofiber/fiber/v2"
)

// OK writes the success envelope with a single document.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// Created writes the success envelope with status 201.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// List writes the success envelope for a list query, with count and
// pagination when the translator supplied them.
func List(c *fiber.Ctx, data interface{}, result *query.Result) error {
	body := fiber.Map{
		"success": true,
		"count":   result.Count,
		"data":    data,
	}
	if result.Pagination.Next != nil || result.Pagination.Prev != nil {
		body["pagination"] = result.Pagination
	}
	return c.Status(fiber.StatusOK).JSON(body)
}
