package fulfillment_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/fulfillment"
	"github.com/jhoicas/Bodega-api/internal/domain"
)

// Flujo completo validar+ejecutar: devuelve el ID del movimiento y el pedido
// queda cumplido.
func TestAddProductToWarehouse_FlujoCompleto(t *testing.T) {
	store := newMemStore()
	product := store.addProduct("cerámica", mustDecimal("12.50"))
	warehouse := store.addWarehouse("central")
	order := store.addOrder(product.ID, mustDecimal("4"), mustDecimal("12.50"), time.Now().Add(-time.Hour))
	uc := newUseCase(store)

	movementID, err := uc.AddProductToWarehouse(context.Background(), fulfillment.AddProductInput{
		ProductID:   product.ID,
		WarehouseID: warehouse.ID,
		Quantity:    mustDecimal("4"),
		RequestedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, movementID)

	movements := store.movementsForOrder(order.ID)
	require.Len(t, movements, 1)
	assert.Equal(t, movementID, movements[0].ID)
	assert.True(t, mustDecimal("50.00").Equal(movements[0].TotalValue))
	assert.NotNil(t, store.orderByID(order.ID).FulfilledAt)
}

// Idempotencia de extremo a extremo: la segunda petición secuencial devuelve
// ErrAlreadyFulfilled y el movimiento sigue siendo uno solo.
func TestAddProductToWarehouse_SegundaPeticionYaCumplida(t *testing.T) {
	store := newMemStore()
	product := store.addProduct("adhesivo", mustDecimal("15.00"))
	warehouse := store.addWarehouse("central")
	order := store.addOrder(product.ID, mustDecimal("6"), mustDecimal("15.00"), time.Now().Add(-time.Hour))
	uc := newUseCase(store)

	in := fulfillment.AddProductInput{
		ProductID:   product.ID,
		WarehouseID: warehouse.ID,
		Quantity:    mustDecimal("6"),
		RequestedAt: time.Now(),
	}
	_, err := uc.AddProductToWarehouse(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.AddProductToWarehouse(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrAlreadyFulfilled)
	assert.Len(t, store.movementsForOrder(order.ID), 1)
}

// Entrada inválida: ids vacíos o cantidad no positiva se rechazan antes de
// tocar el almacenamiento.
func TestAddProductToWarehouse_EntradaInvalida(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store)

	cases := []fulfillment.AddProductInput{
		{WarehouseID: "w", Quantity: mustDecimal("1"), RequestedAt: time.Now()},
		{ProductID: "p", Quantity: mustDecimal("1"), RequestedAt: time.Now()},
		{ProductID: "p", WarehouseID: "w", Quantity: decimal.Zero, RequestedAt: time.Now()},
		{ProductID: "p", WarehouseID: "w", Quantity: mustDecimal("-2"), RequestedAt: time.Now()},
	}
	for _, in := range cases {
		_, err := uc.AddProductToWarehouse(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// Referencias desconocidas → ErrNotFound.
func TestAddProductToWarehouse_ReferenciaInexistente(t *testing.T) {
	store := newMemStore()
	warehouse := store.addWarehouse("central")
	uc := newUseCase(store)

	_, err := uc.AddProductToWarehouse(context.Background(), fulfillment.AddProductInput{
		ProductID:   "99999999-0000-0000-0000-000000000000",
		WarehouseID: warehouse.ID,
		Quantity:    mustDecimal("1"),
		RequestedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Sin pedido con cantidad suficiente → ErrNoEligibleOrder y cero escrituras.
func TestAddProductToWarehouse_SinPedidoElegible(t *testing.T) {
	store := newMemStore()
	product := store.addProduct("tubería", mustDecimal("30.00"))
	warehouse := store.addWarehouse("central")
	order := store.addOrder(product.ID, mustDecimal("2"), mustDecimal("30.00"), time.Now().Add(-time.Hour))
	uc := newUseCase(store)

	_, err := uc.AddProductToWarehouse(context.Background(), fulfillment.AddProductInput{
		ProductID:   product.ID,
		WarehouseID: warehouse.ID,
		Quantity:    mustDecimal("50"),
		RequestedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNoEligibleOrder)
	assert.Nil(t, store.orderByID(order.ID).FulfilledAt)
	assert.Empty(t, store.movementsForOrder(order.ID))
}

// Un conflicto de escritura transitorio se reintenta internamente y el ciclo
// completo termina limpio.
func TestAddProductToWarehouse_ReintentaTrasConflicto(t *testing.T) {
	store := newMemStore()
	product := store.addProduct("alambre", mustDecimal("2.25"))
	warehouse := store.addWarehouse("central")
	order := store.addOrder(product.ID, mustDecimal("40"), mustDecimal("2.25"), time.Now().Add(-time.Hour))

	runner := &flakyTxRunner{
		inner:    &memTxRunner{s: store},
		failures: 1,
		err:      domain.ErrWriteConflict,
	}
	uc := fulfillment.NewAddProductUseCase(
		newValidator(store),
		fulfillment.NewFulfillmentExecutor(runner),
	)

	movementID, err := uc.AddProductToWarehouse(context.Background(), fulfillment.AddProductInput{
		ProductID:   product.ID,
		WarehouseID: warehouse.ID,
		Quantity:    mustDecimal("40"),
		RequestedAt: time.Now(),
	})
	require.NoError(t, err, "el conflicto transitorio debe resolverse en el reintento")
	assert.NotEmpty(t, movementID)
	assert.Len(t, store.movementsForOrder(order.ID), 1)
}

// Conflictos persistentes agotan los reintentos y devuelven el último error.
func TestAddProductToWarehouse_ConflictoPersistente(t *testing.T) {
	store := newMemStore()
	product := store.addProduct("cable", mustDecimal("1.10"))
	warehouse := store.addWarehouse("central")
	store.addOrder(product.ID, mustDecimal("10"), mustDecimal("1.10"), time.Now().Add(-time.Hour))

	runner := &flakyTxRunner{
		inner:    &memTxRunner{s: store},
		failures: 100, // nunca se recupera
		err:      domain.ErrWriteConflict,
	}
	uc := fulfillment.NewAddProductUseCase(
		newValidator(store),
		fulfillment.NewFulfillmentExecutor(runner),
	)

	_, err := uc.AddProductToWarehouse(context.Background(), fulfillment.AddProductInput{
		ProductID:   product.ID,
		WarehouseID: warehouse.ID,
		Quantity:    mustDecimal("10"),
		RequestedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrWriteConflict)
}
