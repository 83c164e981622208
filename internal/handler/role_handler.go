package handler

import (
	"maitri-medico/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	roleRepo repository.RoleRepository
}

func NewRoleHandler(roleRepo repository.RoleRepository) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo}
}

// GetRoles returns the roles an admin account can be created with
// GET /api/v1/superadmin/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.roleRepo.FindAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"roles": roles})
}
