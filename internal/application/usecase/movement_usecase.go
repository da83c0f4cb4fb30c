package usecase

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// MovementUseCase consultas de lectura sobre el historial de movimientos.
type MovementUseCase struct {
	repo repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// ListByWarehouse lista los movimientos recibidos en una bodega, con rango de
// fechas opcional y paginación.
func (uc *MovementUseCase) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.repo.ListByWarehouse(warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		OrderID:     m.OrderID,
		TotalValue:  m.TotalValue,
		CreatedAt:   m.CreatedAt,
	}
}
