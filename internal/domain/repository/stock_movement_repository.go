package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos
// de stock (DIP).
type StockMovementRepository interface {
	// Create persiste el movimiento. Asigna movement.ID si viene vacío; el
	// identificador queda disponible sin consultas posteriores (nunca se
	// recupera "el último por fecha").
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	GetByOrder(orderID string) (*entity.StockMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
