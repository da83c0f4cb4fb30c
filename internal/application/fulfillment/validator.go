package fulfillment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// IntakeValidator decide si una recepción puede asociarse a un pedido
// pendiente. Solo lecturas, sin mutación; la decisión definitiva la toma el
// executor con su UPDATE condicional dentro de la transacción.
type IntakeValidator struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	orderRepo     repository.OrderRepository
}

// NewIntakeValidator construye el validador.
func NewIntakeValidator(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
) *IntakeValidator {
	return &IntakeValidator{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
	}
}

// Validate aplica las cuatro precondiciones en orden, cada una obligatoria:
//
//  1. Producto y bodega deben existir (ErrNotFound si no).
//  2. Debe existir un pedido del producto con cantidad >= quantity creado
//     antes de ahora; gana el más reciente (ErrNoEligibleOrder si no hay).
//  3. El pedido seleccionado no puede estar ya cumplido (ErrAlreadyFulfilled).
//  4. El pedido no puede ser posterior a la fecha declarada por el caller
//     (ErrTemporalConflict): nadie puede pedir recepción para una fecha que
//     precede al pedido que la autoriza.
//
// Devuelve el pedido elegible para pasarlo sin cambios al executor.
func (v *IntakeValidator) Validate(ctx context.Context, productID, warehouseID string, quantity decimal.Decimal, requestedAt time.Time) (*entity.Order, error) {
	product, err := v.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	warehouse, err := v.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	order, err := v.orderRepo.FindEligible(productID, quantity, time.Now())
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNoEligibleOrder
	}

	if order.IsFulfilled() {
		return nil, domain.ErrAlreadyFulfilled
	}

	if order.CreatedAt.After(requestedAt) {
		return nil, domain.ErrTemporalConflict
	}

	return order, nil
}
