package domain

import "time"

// Pet is a pet record (mascota).
type Pet struct {
	ID        string
	Nombre    string
	Edad      int
	Raza      string
	Tipo      string
	CreatedAt time.Time
}
