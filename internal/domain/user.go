package domain

import "time"

// Role tags what a user may do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered customer of the shop.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Nombre       string
	Apellidos    string
	Rut          string
	Rol          Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Rol == RoleAdmin
}
