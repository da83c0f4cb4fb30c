package fulfillment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

// maxAttempts acota los reintentos internos del ciclo validar+ejecutar ante
// errores de concurrencia.
const maxAttempts = 3

// AddProductUseCase orquesta la recepción de producto en bodega: validación
// de elegibilidad (solo lecturas) y ejecución atómica del cumplimiento.
type AddProductUseCase struct {
	validator *IntakeValidator
	executor  *FulfillmentExecutor
}

// NewAddProductUseCase construye el caso de uso.
func NewAddProductUseCase(validator *IntakeValidator, executor *FulfillmentExecutor) *AddProductUseCase {
	return &AddProductUseCase{validator: validator, executor: executor}
}

// AddProductInput entrada para AddProductToWarehouse. RequestedAt es la fecha
// declarada por el caller, no la hora del servidor.
type AddProductInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	RequestedAt time.Time
}

// AddProductToWarehouse ejecuta validar+ejecutar y devuelve el ID del
// movimiento creado. Ante ErrOrderVanished o ErrWriteConflict repite el ciclo
// completo: el reintento encuentra el pedido ya cumplido (ErrAlreadyFulfilled)
// o termina limpio. Los demás errores se devuelven tal cual, clasificados.
func (uc *AddProductUseCase) AddProductToWarehouse(ctx context.Context, in AddProductInput) (string, error) {
	if in.ProductID == "" || in.WarehouseID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		order, err := uc.validator.Validate(ctx, in.ProductID, in.WarehouseID, in.Quantity, in.RequestedAt)
		if err != nil {
			return "", err
		}

		movementID, err := uc.executor.Fulfill(ctx, order, in.ProductID, in.WarehouseID)
		if err == nil {
			return movementID, nil
		}
		if !errors.Is(err, domain.ErrOrderVanished) && !errors.Is(err, domain.ErrWriteConflict) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}
