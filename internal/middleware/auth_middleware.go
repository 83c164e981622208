package middleware

import (
	"strings"

	"maitri-medico/internal/repository"
	"maitri-medico/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": msg})
}

func forbidden(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": msg})
}

// RequireAuth is middleware that validates JWT token and sets user info in context.
// Role and privileges are read from the database so revocations apply immediately.
func RequireAuth(tokens *jwt.Manager, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Missing authorization token")
		}

		// "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return unauthorized(c, "Invalid authorization format. Use: Bearer <token>")
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		user, err := userRepo.FindByID(c.UserContext(), claims.UserID)
		if err != nil {
			return unauthorized(c, "User not found")
		}
		if !user.IsActive {
			return unauthorized(c, "User account is inactive")
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("user_email", user.Email)
		c.Locals("user_name", user.FullName)
		c.Locals("user_role", user.RoleCode())
		c.Locals("user_privileges", user.GetPrivilegeCodes())

		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return forbidden(c, "No privileges found")
		}

		for _, p := range privileges {
			if p == requiredPrivilege {
				return c.Next()
			}
		}

		return forbidden(c, "requires '"+requiredPrivilege+"' privilege")
	}
}
