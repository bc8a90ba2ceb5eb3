package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/services"
	"github.com/example/dasturxon/internal/utils"
)

const permissionSetContextKey = "permissionSet"

// LoadPermissions resolves the authenticated admin's permission set once
// per request. Must run after Auth with the admin kind.
func LoadPermissions(perms *services.PermissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, ok := GetPrincipal(c)
		if !ok || info.Kind != utils.KindAdmin {
			return utils.UnauthorizedError("admin authentication required")
		}

		set, err := perms.SetForAdmin(info.PrincipalID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.UnauthorizedError("admin not found")
			}
			return err
		}

		c.Locals(permissionSetContextKey, set)
		return c.Next()
	}
}

// RequirePermission checks membership in the loaded permission set.
func RequirePermission(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		set, ok := c.Locals(permissionSetContextKey).(services.PermissionSet)
		if !ok {
			return utils.ForbiddenError("permissions not loaded")
		}
		if !set.Can(name) {
			return utils.ForbiddenError("missing permission: " + name)
		}
		return c.Next()
	}
}
