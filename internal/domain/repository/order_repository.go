package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)

	// FindEligible busca el pedido del producto con cantidad >= quantity y
	// created_at estrictamente anterior a before. Si varios califican gana el
	// de created_at más reciente (desempate estable por id). Devuelve nil si
	// ninguno califica.
	FindEligible(productID string, quantity decimal.Decimal, before time.Time) (*entity.Order, error)

	// GetForUpdate obtiene el pedido bloqueando la fila (SELECT FOR UPDATE).
	// Devuelve nil si el pedido ya no existe.
	GetForUpdate(id string) (*entity.Order, error)

	// MarkFulfilled fija fulfilled_at solo si sigue ausente (UPDATE condicional
	// con cuenta de filas afectadas). Devuelve false cuando otra petición
	// concurrente ganó la carrera.
	MarkFulfilled(id string, fulfilledAt time.Time) (bool, error)

	ListByProduct(productID string, limit, offset int) ([]*entity.Order, error)
}
