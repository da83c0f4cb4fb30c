package fulfillment

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que marcar el pedido y registrar el
// movimiento sean una sola unidad atómica: Commit de ambas escrituras o
// Rollback completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
