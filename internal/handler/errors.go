package handler

import (
	"errors"
	"fmt"

	"maitri-medico/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError maps an error kind to a status code and a stable error string.
// Internal details of 5xx errors are logged, never returned.
func writeError(c *fiber.Ctx, err error) error {
	status, kind := fiber.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, service.ErrValidation):
		status, kind = fiber.StatusBadRequest, "validation_error"
	case errors.Is(err, service.ErrNotFound):
		status, kind = fiber.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrConflict):
		status, kind = fiber.StatusConflict, "conflict"
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrUserInactive):
		status, kind = fiber.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, kind = fiber.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrDependencyFailure):
		status, kind = fiber.StatusBadGateway, "dependency_failure"
	}

	msg := err.Error()
	switch status {
	case fiber.StatusInternalServerError:
		zap.L().Error("request failed", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		msg = "Something went wrong, please try again"
	case fiber.StatusBadGateway:
		zap.L().Warn("dependency failed", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		msg = "Image storage is unavailable, please try again"
	}

	return c.Status(status).JSON(fiber.Map{"error": kind, "message": msg})
}

func badRequest(c *fiber.Ctx, format string, args ...interface{}) error {
	return writeError(c, fmt.Errorf("%w: %s", service.ErrValidation, fmt.Sprintf(format, args...)))
}

// ErrorHandler renders errors that escape handlers (unknown routes, body
// limits, panics recovered upstream) in the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind := "internal_error"
		switch {
		case fe.Code == fiber.StatusNotFound:
			kind = "not_found"
		case fe.Code == fiber.StatusRequestEntityTooLarge:
			kind = "validation_error"
		case fe.Code < 500:
			kind = "bad_request"
		}
		return c.Status(fe.Code).JSON(fiber.Map{"error": kind, "message": fe.Message})
	}
	return writeError(c, err)
}
