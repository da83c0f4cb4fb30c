package fulfillment_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/fulfillment"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore replica la semántica transaccional que el flujo necesita:
// MarkFulfilled condicional con cuenta de filas afectadas, y Rollback que
// descarta las escrituras no confirmadas (el callback del runner opera sobre
// estado provisional que solo se aplica en el Commit).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	orders     map[string]*entity.Order
	movements  map[string]*entity.StockMovement

	// failMovementInsert fuerza el fallo del INSERT del movimiento dentro de
	// la transacción (prueba de atomicidad).
	failMovementInsert bool
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		orders:     map[string]*entity.Order{},
		movements:  map[string]*entity.StockMovement{},
	}
}

func (s *memStore) addProduct(name string, price decimal.Decimal) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       "SKU-" + name,
		Name:      name,
		Price:     price,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) addWarehouse(name string) *entity.Warehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.warehouses[w.ID] = w
	return w
}

func (s *memStore) addOrder(productID string, quantity, unitPrice decimal.Decimal, createdAt time.Time) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := &entity.Order{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: createdAt,
	}
	s.orders[o.ID] = o
	return o
}

func (s *memStore) movementsForOrder(orderID string) []*entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out
}

func (s *memStore) orderByID(id string) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrder(s.orders[id])
}

func cloneOrder(o *entity.Order) *entity.Order {
	if o == nil {
		return nil
	}
	cp := *o
	if o.FulfilledAt != nil {
		t := *o.FulfilledAt
		cp.FulfilledAt = &t
	}
	return &cp
}

// memTx escrituras provisionales de una transacción en curso.
type memTx struct {
	fulfilled map[string]time.Time
	inserted  []*entity.StockMovement
}

// memProductRepo / memWarehouseRepo / memOrderRepo / memMovementRepo
// implementan los puertos de repositorio sobre memStore. Con tx != nil operan
// dentro de una transacción (el runner ya sostiene el lock).

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.ID] = w
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

type memOrderRepo struct {
	s  *memStore
	tx *memTx // nil fuera de transacción
}

func (r *memOrderRepo) unlock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memOrderRepo) Create(o *entity.Order) error {
	defer r.unlock()()
	r.s.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	defer r.unlock()()
	return r.current(id), nil
}

func (r *memOrderRepo) FindEligible(productID string, quantity decimal.Decimal, before time.Time) (*entity.Order, error) {
	defer r.unlock()()
	var best *entity.Order
	for _, o := range r.s.orders {
		if o.ProductID != productID || o.Quantity.LessThan(quantity) || !o.CreatedAt.Before(before) {
			continue
		}
		if best == nil || o.CreatedAt.After(best.CreatedAt) ||
			(o.CreatedAt.Equal(best.CreatedAt) && o.ID > best.ID) {
			best = o
		}
	}
	return cloneOrder(best), nil
}

func (r *memOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	defer r.unlock()()
	return r.current(id), nil
}

func (r *memOrderRepo) MarkFulfilled(id string, fulfilledAt time.Time) (bool, error) {
	defer r.unlock()()
	o, ok := r.s.orders[id]
	if !ok || o.FulfilledAt != nil {
		return false, nil
	}
	if r.tx != nil {
		if _, staged := r.tx.fulfilled[id]; staged {
			return false, nil
		}
		r.tx.fulfilled[id] = fulfilledAt
		return true, nil
	}
	t := fulfilledAt
	o.FulfilledAt = &t
	return true, nil
}

func (r *memOrderRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Order, error) {
	defer r.unlock()()
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.ProductID == productID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

// current aplica las escrituras provisionales de la tx sobre el estado
// confirmado. Caller sostiene el lock.
func (r *memOrderRepo) current(id string) *entity.Order {
	o, ok := r.s.orders[id]
	if !ok {
		return nil
	}
	cp := cloneOrder(o)
	if r.tx != nil {
		if at, staged := r.tx.fulfilled[id]; staged {
			t := at
			cp.FulfilledAt = &t
		}
	}
	return cp
}

type memMovementRepo struct {
	s  *memStore
	tx *memTx
}

func (r *memMovementRepo) unlock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	defer r.unlock()()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if r.s.failMovementInsert {
		return errors.New("insert stock movement: fallo simulado")
	}
	if r.tx != nil {
		r.tx.inserted = append(r.tx.inserted, m)
		return nil
	}
	r.s.movements[m.ID] = m
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	defer r.unlock()()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMovementRepo) GetByOrder(orderID string) (*entity.StockMovement, error) {
	defer r.unlock()()
	for _, m := range r.s.movements {
		if m.OrderID == orderID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.unlock()()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.WarehouseID == warehouseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.unlock()()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memTxRunner sostiene el lock del store durante toda la transacción
// (serializa como lo haría el bloqueo de fila) y aplica las escrituras
// provisionales solo si el callback termina sin error.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx := &memTx{fulfilled: map[string]time.Time{}}
	if err := fn(&memOrderRepo{s: r.s, tx: tx}, &memMovementRepo{s: r.s, tx: tx}); err != nil {
		return err // rollback: fulfilled/inserted se descartan
	}
	for id, at := range tx.fulfilled {
		t := at
		r.s.orders[id].FulfilledAt = &t
	}
	for _, m := range tx.inserted {
		r.s.movements[m.ID] = m
	}
	return nil
}

// flakyTxRunner falla las primeras n transacciones con err y luego delega.
type flakyTxRunner struct {
	inner    fulfillment.TxRunner
	failures int
	err      error
}

func (r *flakyTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	if r.failures > 0 {
		r.failures--
		return r.err
	}
	return r.inner.Run(ctx, fn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de sistema bajo prueba
// ──────────────────────────────────────────────────────────────────────────────

func newValidator(s *memStore) *fulfillment.IntakeValidator {
	return fulfillment.NewIntakeValidator(
		&memProductRepo{s: s},
		&memWarehouseRepo{s: s},
		&memOrderRepo{s: s},
	)
}

func newExecutor(s *memStore) *fulfillment.FulfillmentExecutor {
	return fulfillment.NewFulfillmentExecutor(&memTxRunner{s: s})
}

func newUseCase(s *memStore) *fulfillment.AddProductUseCase {
	return fulfillment.NewAddProductUseCase(newValidator(s), newExecutor(s))
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
