package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa un pedido de compra creado aguas arriba (módulo de
// compras). Este servicio solo lo lee y lo marca como cumplido: la transición
// pendiente→cumplido es única e irreversible, y ocurre a lo sumo una vez.
type Order struct {
	ID          string
	ProductID   string
	Quantity    decimal.Decimal // cantidad pedida
	UnitPrice   decimal.Decimal // precio unitario pactado
	CreatedAt   time.Time
	FulfilledAt *time.Time // nil = pendiente
}

// IsFulfilled indica si el pedido ya fue cumplido.
func (o *Order) IsFulfilled() bool {
	return o.FulfilledAt != nil
}

// TotalValue calcula el valor total del pedido (precio unitario * cantidad).
func (o *Order) TotalValue() decimal.Decimal {
	return o.UnitPrice.Mul(o.Quantity)
}
