package domain

import "time"

// Product is an item sold in the shop.
type Product struct {
	ID          string
	Nombre      string
	Descripcion string
	Precio      int64
	Stock       int
	Imagen      string
	CreatedAt   time.Time
}
