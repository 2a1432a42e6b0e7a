package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ordertrack/store"
)

// ErrInvalidOrder is returned when a create request fails validation.
var ErrInvalidOrder = errors.New("invalid order")

// EventPublisher publishes an order snapshot after a state-changing
// operation. orderd wires messaging.Publisher here.
type EventPublisher interface {
	PublishOrder(ctx context.Context, o *store.Order) error
}

// Manager handles the order lifecycle. It is the only mutator of orders:
// every write goes store-first, then best-effort publish.
type Manager struct {
	db        *store.DB
	publisher EventPublisher
}

// NewManager creates an order manager.
func NewManager(db *store.DB, publisher EventPublisher) *Manager {
	return &Manager{
		db:        db,
		publisher: publisher,
	}
}

// Create stores a new order with status PENDING and publishes its creation
// event. The status is assigned here, never taken from client input.
func (m *Manager) Create(ctx context.Context, customerName string, amount decimal.Decimal) (*store.Order, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidOrder)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidOrder)
	}

	now := time.Now().UTC()
	o := &store.Order{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		Amount:       amount,
		Status:       string(StatusPending),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := m.db.CreateOrder(o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	m.publish(ctx, o)
	return o, nil
}

// Get returns an order by id.
func (m *Manager) Get(id string) (*store.Order, error) {
	return m.db.GetOrder(id)
}

// List returns all orders, newest first.
func (m *Manager) List() ([]store.Order, error) {
	return m.db.ListOrders()
}

// ListByStatus returns all orders with the given status.
func (m *Manager) ListByStatus(status Status) ([]store.Order, error) {
	return m.db.ListOrdersByStatus(string(status))
}

// History returns the recorded transitions of an order.
func (m *Manager) History(id string) ([]store.OrderHistory, error) {
	if _, err := m.db.GetOrder(id); err != nil {
		return nil, err
	}
	return m.db.ListOrderHistory(id)
}

// UpdateStatus moves an order to a new status with validation, then
// publishes the post-write snapshot.
func (m *Manager) UpdateStatus(ctx context.Context, id string, requested Status) (*store.Order, error) {
	o, err := m.db.GetOrder(id)
	if err != nil {
		return nil, err
	}

	newStatus, err := Transition(Status(o.Status), requested)
	if err != nil {
		return nil, err
	}

	oldStatus := o.Status
	if err := m.db.UpdateOrderStatus(id, string(newStatus)); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if err := m.db.InsertOrderHistory(id, oldStatus, string(newStatus)); err != nil {
		log.Printf("insert order history: %v", err)
	}

	o.Status = string(newStatus)
	o.UpdatedAt = time.Now().UTC()

	m.publish(ctx, o)
	return o, nil
}

// publish hands the snapshot to the broker. The store write already
// committed, so a failure here is logged and not surfaced to the caller.
func (m *Manager) publish(ctx context.Context, o *store.Order) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.PublishOrder(ctx, o); err != nil {
		log.Printf("publish order %s: %v", o.ID, err)
	}
}
