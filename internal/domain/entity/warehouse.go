package entity

import "time"

// Warehouse representa una bodega donde se recibe mercancía. Referencia de
// solo lectura para el flujo de cumplimiento.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
