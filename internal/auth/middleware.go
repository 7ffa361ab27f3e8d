package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petcare-service/internal/domain"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

const principalKey = "auth_principal"

// IdentityResolver turns a bearer token into the user it was issued to.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware validates bearer tokens and loads the caller.
type AuthMiddleware struct {
	resolver IdentityResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperrors.NewUnauthenticated("missing or malformed authorization header")
	}

	user, err := m.resolver.ResolveIdentity(c.UserContext(), token)
	if err != nil {
		return err
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// UserFromContext retrieves the authenticated user.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(principalKey).(*domain.User)
	return user, ok && user != nil
}
