package fulfillment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// FulfillmentExecutor es el único componente que muta estado: marca el pedido
// como cumplido y registra el movimiento de stock en una sola transacción.
type FulfillmentExecutor struct {
	txRunner TxRunner
}

// NewFulfillmentExecutor construye el executor.
func NewFulfillmentExecutor(txRunner TxRunner) *FulfillmentExecutor {
	return &FulfillmentExecutor{txRunner: txRunner}
}

// Fulfill ejecuta la unidad atómica de cumplimiento:
//
//  1. Relee el pedido con bloqueo de fila; si desapareció, ErrOrderVanished.
//  2. Calcula valor total = precio unitario * cantidad pedida.
//  3. Fija fulfilled_at solo si sigue ausente; cero filas afectadas significa
//     que otra petición concurrente ganó la carrera (ErrAlreadyFulfilled).
//  4. Inserta el movimiento con ID generado antes del INSERT.
//
// Commit de ambas escrituras o Rollback completo; nunca queda un pedido
// cumplido sin movimiento ni un movimiento sin pedido cumplido. Devuelve el
// ID del movimiento recién insertado.
func (e *FulfillmentExecutor) Fulfill(ctx context.Context, eligible *entity.Order, productID, warehouseID string) (string, error) {
	var movementID string
	err := e.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(eligible.ID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderVanished
		}

		now := time.Now()
		totalValue := order.TotalValue()

		updated, err := orderRepo.MarkFulfilled(order.ID, now)
		if err != nil {
			return err
		}
		if !updated {
			return domain.ErrAlreadyFulfilled
		}

		movement := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   productID,
			WarehouseID: warehouseID,
			OrderID:     order.ID,
			TotalValue:  totalValue,
			CreatedAt:   now,
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}
		movementID = movement.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return movementID, nil
}
