package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement representa la llegada física de un producto a una bodega,
// autorizada por un pedido. Se crea exactamente una vez por pedido cumplido
// y nunca se actualiza ni se elimina.
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	OrderID     string          // pedido que autoriza el movimiento (uno a uno)
	TotalValue  decimal.Decimal // precio unitario del pedido * cantidad pedida
	CreatedAt   time.Time
}
