package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/fulfillment"
	"github.com/jhoicas/Bodega-api/internal/domain"
)

// AddProductExecutor puerto del handler hacia el caso de uso de recepción.
type AddProductExecutor interface {
	AddProductToWarehouse(ctx context.Context, in fulfillment.AddProductInput) (string, error)
}

// FulfillmentHandler maneja la recepción de producto en bodega.
type FulfillmentHandler struct {
	uc AddProductExecutor
}

// NewFulfillmentHandler construye el handler.
func NewFulfillmentHandler(uc AddProductExecutor) *FulfillmentHandler {
	return &FulfillmentHandler{uc: uc}
}

// AddProduct godoc
// @Summary      Registrar llegada de producto a bodega
// @Description  Cumple el pedido elegible más reciente del producto y registra
// @Description  el movimiento de stock con su valor total, de forma atómica.
// @Tags         fulfillment
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddProductRequest  true  "product_id, warehouse_id, quantity, created_at"
// @Success      201   {object}  dto.AddProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/warehouse/products [post]
func (h *FulfillmentHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.AddProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que cero"})
	}
	if in.CreatedAt.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "created_at no puede ser futura"})
	}

	movementID, err := h.uc.AddProductToWarehouse(c.Context(), fulfillment.AddProductInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		RequestedAt: in.CreatedAt,
	})
	if err != nil {
		return writeFulfillmentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddProductResponse{MovementID: movementID})
}

// writeFulfillmentError traduce cada error de dominio a su código HTTP. Cada
// fallo llega clasificado en exactamente un valor; nada se traga en silencio.
func writeFulfillmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "REFERENCE_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNoEligibleOrder):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ELIGIBLE_ORDER", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyFulfilled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_FULFILLED", Message: err.Error()})
	case errors.Is(err, domain.ErrTemporalConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TEMPORAL_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrOrderVanished), errors.Is(err, domain.ErrWriteConflict):
		// Reintentos internos agotados; el caller puede repetir la petición.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WRITE_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
