package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petcare-service/internal/api/dto"
	"github.com/spec-kit/petcare-service/internal/auth"
	"github.com/spec-kit/petcare-service/internal/service"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

// AuthHandler exposes registration, login and account endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Rut:       req.Rut,
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt},
	})
}

// Delete handles DELETE /api/auth/:email.
func (h *AuthHandler) Delete(c *fiber.Ctx) error {
	email := c.Params("email")
	if err := h.auth.DeleteUser(c.UserContext(), email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": email}})
}

// Me handles GET /api/usuarios/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
