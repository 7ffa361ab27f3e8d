package domain

import "time"

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        string
	Nombre    string
	Email     string
	Mensaje   string
	CreatedAt time.Time
}
