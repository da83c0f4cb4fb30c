package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddProductRequest body para POST /api/warehouse/products.
// Quantity > 0 y CreatedAt no futura se verifican en el handler.
type AddProductRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid4"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at" validate:"required"`
}

// AddProductResponse respuesta 201 con el ID del movimiento creado.
type AddProductResponse struct {
	MovementID string `json:"movement_id"`
}

// MovementResponse movimiento de stock en respuestas.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	OrderID     string          `json:"order_id"`
	TotalValue  decimal.Decimal `json:"total_value"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
