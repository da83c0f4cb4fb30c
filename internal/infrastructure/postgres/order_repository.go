package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con
// pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = "id, product_id, quantity, unit_price, created_at, fulfilled_at"

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, product_id, quantity, unit_price, created_at, fulfilled_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ProductID, order.Quantity, order.UnitPrice,
		order.CreatedAt, order.FulfilledAt,
	)
	if err != nil {
		return classifyError("insert order", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID. Devuelve nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(query, id)
}

// FindEligible busca el pedido más reciente del producto con cantidad
// suficiente y creado estrictamente antes de before. El desempate por id
// hace la selección determinista incluso con created_at idénticos.
func (r *OrderRepo) FindEligible(productID string, quantity decimal.Decimal, before time.Time) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE product_id = $1 AND quantity >= $2 AND created_at < $3
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	return r.scanOne(query, productID, quantity, before)
}

// GetForUpdate obtiene el pedido bloqueando la fila (SELECT FOR UPDATE).
// Devuelve nil si el pedido ya no existe.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// MarkFulfilled fija fulfilled_at de forma condicional: solo si sigue NULL.
// La cuenta de filas afectadas decide la carrera; cero filas significa que
// otra petición concurrente cumplió el pedido primero.
func (r *OrderRepo) MarkFulfilled(id string, fulfilledAt time.Time) (bool, error) {
	query := `UPDATE orders SET fulfilled_at = $2 WHERE id = $1 AND fulfilled_at IS NULL`
	cmd, err := r.q.Exec(context.Background(), query, id, fulfilledAt)
	if err != nil {
		return false, classifyError("mark order fulfilled", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByProduct lista pedidos de un producto, más recientes primero.
func (r *OrderRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE product_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, classifyError("list orders", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.UnitPrice, &o.CreatedAt, &o.FulfilledAt); err != nil {
			return nil, classifyError("scan order", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *OrderRepo) scanOne(query string, args ...any) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&o.ID, &o.ProductID, &o.Quantity, &o.UnitPrice, &o.CreatedAt, &o.FulfilledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classifyError("get order", err)
	}
	return &o, nil
}
