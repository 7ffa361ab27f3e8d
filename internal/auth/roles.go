package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petcare-service/internal/domain"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

// RequireRole ensures the authenticated user holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if _, exists := allowedSet[user.Rol]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdminOrSelf lets admins through, and other users only when the
// route parameter names their own email.
func RequireAdminOrSelf(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if user.IsAdmin() || c.Params(param) == user.Email {
			return c.Next()
		}
		return apperrors.NewForbidden("admin role required to act on other accounts")
	}
}
