package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/config"
	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/utils"
)

const principalContextKey = "currentPrincipal"

// Auth validates the bearer token, rejects revoked tokens and loads the
// principal info into the request context. kinds restricts which principal
// kinds may pass; empty means any authenticated principal.
func Auth(cfg *config.Config, db *gorm.DB, kinds ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedError("missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.UnauthorizedError("invalid authorization header")
		}

		info, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return utils.UnauthorizedError("invalid token")
		}

		if db != nil && info.JTI != "" {
			var count int64
			if err := db.Model(&models.RevokedToken{}).
				Where("jti = ?", info.JTI).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return utils.UnauthorizedError("token revoked")
			}
		}

		if len(kinds) > 0 {
			allowed := false
			for _, kind := range kinds {
				if info.Kind == kind {
					allowed = true
					break
				}
			}
			if !allowed {
				return utils.ForbiddenError("wrong principal kind")
			}
		}

		c.Locals(principalContextKey, info)
		return c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from context.
func GetPrincipal(c *fiber.Ctx) (*utils.TokenInfo, bool) {
	value := c.Locals(principalContextKey)
	if value == nil {
		return nil, false
	}

	info, ok := value.(*utils.TokenInfo)
	return info, ok
}

// CurrentID returns the authenticated principal ID, or uuid.Nil when the
// request is unauthenticated.
func CurrentID(c *fiber.Ctx) uuid.UUID {
	if info, ok := GetPrincipal(c); ok {
		return info.PrincipalID
	}
	return uuid.Nil
}
