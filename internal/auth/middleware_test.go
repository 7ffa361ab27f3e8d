package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/petcare-service/internal/domain"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

type stubResolver struct {
	users map[string]*domain.User
	calls int
}

func (s *stubResolver) ResolveIdentity(_ context.Context, token string) (*domain.User, error) {
	s.calls++
	user, ok := s.users[token]
	if !ok {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}
	return user, nil
}

func newTestApp(resolver IdentityResolver, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		UnescapePath: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	mw := NewAuthMiddleware(resolver)
	echo := func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"email": user.Email})
	}

	app.Get("/me", mw.Handle, echo)
	app.Get("/admin", mw.Handle, RequireRole(domain.RoleAdmin), echo)

	deleteChain := append([]fiber.Handler{mw.Handle}, guards...)
	deleteChain = append(deleteChain, echo)
	app.Delete("/users/:email", deleteChain...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, header string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := map[string]string{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	resolver := &stubResolver{}
	app := newTestApp(resolver)

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "token-only"} {
		status, body := doRequest(t, app, http.MethodGet, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, status, header)
		assert.Equal(t, apperrors.CodeUnauthenticated, body["code"], header)
	}
	assert.Zero(t, resolver.calls)
}

func TestAuthMiddleware_AttachesUser(t *testing.T) {
	resolver := &stubResolver{users: map[string]*domain.User{"tok": {Email: "a@b.com", Rol: domain.RoleUser}}}
	app := newTestApp(resolver)

	status, body := doRequest(t, app, http.MethodGet, "/me", "bearer tok")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@b.com", body["email"])
}

func TestAuthMiddleware_ResolverErrorPropagates(t *testing.T) {
	app := newTestApp(&stubResolver{})

	status, body := doRequest(t, app, http.MethodGet, "/me", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeUnauthenticated, body["code"])
}

func TestRequireRole(t *testing.T) {
	resolver := &stubResolver{users: map[string]*domain.User{
		"user":  {Email: "u@b.com", Rol: domain.RoleUser},
		"admin": {Email: "a@b.com", Rol: domain.RoleAdmin},
	}}
	app := newTestApp(resolver)

	status, body := doRequest(t, app, http.MethodGet, "/admin", "Bearer user")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperrors.CodeForbidden, body["code"])

	status, _ = doRequest(t, app, http.MethodGet, "/admin", "Bearer admin")
	assert.Equal(t, http.StatusOK, status)
}

func TestRequireAdminOrSelf(t *testing.T) {
	resolver := &stubResolver{users: map[string]*domain.User{
		"user":  {Email: "u@b.com", Rol: domain.RoleUser},
		"admin": {Email: "a@b.com", Rol: domain.RoleAdmin},
	}}
	app := newTestApp(resolver, RequireAdminOrSelf("email"))

	status, _ := doRequest(t, app, http.MethodDelete, "/users/u@b.com", "Bearer user")
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodDelete, "/users/other@b.com", "Bearer user")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodDelete, "/users/other@b.com", "Bearer admin")
	assert.Equal(t, http.StatusOK, status)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}
