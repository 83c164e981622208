package handler

import (
	"fmt"

	"maitri-medico/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFrom reads the identity set by middleware.RequireAuth.
func actorFrom(c *fiber.Ctx) service.Actor {
	var a service.Actor
	if id, ok := c.Locals("user_id").(string); ok {
		a.ID, _ = uuid.Parse(id)
	}
	a.Name, _ = c.Locals("user_name").(string)
	a.Email, _ = c.Locals("user_email").(string)
	a.Role, _ = c.Locals("user_role").(string)
	return a
}

// uuidParam parses a path parameter; failures are validation errors.
func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", service.ErrValidation, name)
	}
	return id, nil
}
