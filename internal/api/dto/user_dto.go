package dto

import (
	"time"

	"github.com/spec-kit/petcare-service/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Rut       string `json:"rut"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of a user; the password hash is never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	Apellidos string    `json:"apellidos"`
	Rut       string    `json:"rut"`
	Rol       string    `json:"rol"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Apellidos: u.Apellidos,
		Rut:       u.Rut,
		Rol:       string(u.Rol),
		CreatedAt: u.CreatedAt,
	}
}

// NewUserListResponse maps a slice of users.
func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
