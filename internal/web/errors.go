package web

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// Error is an application error carrying the HTTP status it should map to.
// Handlers and services return these; the Fiber error handler turns them into
// the error envelope.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusForbidden, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusNotFound, format, args...)
}

func ServerError(format string, args ...interface{}) *Error {
	return NewError(fiber.StatusInternalServerError, format, args...)
}

// ErrorHandler is the single boundary that maps an error to a status code and
// the {success:false, error} envelope. Wired into fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server Error"

	var appErr *Error
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
	case errors.As(err, &validationErrs):
		code = fiber.StatusBadRequest
		message = validationMessage(validationErrs)
	case mongo.IsDuplicateKeyError(err):
		code = fiber.StatusBadRequest
		message = "Duplicate field value entered"
	case errors.Is(err, mongo.ErrNoDocuments):
		code = fiber.StatusNotFound
		message = "Resource not found"
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func validationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation failed"
	}
	first := errs[0]
	if first.Tag() == "required" {
		return fmt.Sprintf("Field '%s' is required", first.Field())
	}
	return fmt.Sprintf("Field '%s' failed validation on '%s'", first.Field(), first.Tag())
}
