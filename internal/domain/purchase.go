package domain

import "time"

// Purchase is a completed order placed by a user.
type Purchase struct {
	ID        string
	UsuarioID string
	Total     int64
	Fecha     time.Time
}

// PurchaseDetail is one product line of a purchase.
type PurchaseDetail struct {
	ID             string
	CompraID       string
	ProductoID     string
	Cantidad       int
	PrecioUnitario int64
}
