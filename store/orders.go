package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a persisted customer order.
type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// OrderHistory records one status transition.
type OrderHistory struct {
	ID        int64     `json:"id"`
	OrderID   string    `json:"order_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	CreatedAt time.Time `json:"created_at"`
}

const orderSelectCols = `id, customer_name, amount, status, created_at, updated_at`

// CreateOrder inserts a new order row.
func (db *DB) CreateOrder(o *Order) error {
	ts := formatTime(o.CreatedAt)
	_, err := db.Exec(`
		INSERT INTO orders (id, customer_name, amount, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.CustomerName, o.Amount.String(), o.Status, ts, ts)
	return err
}

// GetOrder returns the order with the given id, or ErrNotFound.
func (db *DB) GetOrder(id string) (*Order, error) {
	row := db.QueryRow(`SELECT `+orderSelectCols+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

// ListOrders returns all orders, newest first.
func (db *DB) ListOrders() ([]Order, error) {
	rows, err := db.Query(`SELECT ` + orderSelectCols + ` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListOrdersByStatus returns orders with the given status, newest first.
func (db *DB) ListOrdersByStatus(status string) ([]Order, error) {
	rows, err := db.Query(`SELECT `+orderSelectCols+` FROM orders WHERE status = ? ORDER BY created_at DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// UpdateOrderStatus sets a new status on an existing order.
func (db *DB) UpdateOrderStatus(id, newStatus string) error {
	res, err := db.Exec(`UPDATE orders SET status=?, updated_at=? WHERE id=?`, newStatus, now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertOrderHistory records a status transition.
func (db *DB) InsertOrderHistory(orderID, oldStatus, newStatus string) error {
	_, err := db.Exec(`INSERT INTO order_history (order_id, old_status, new_status, created_at) VALUES (?, ?, ?, ?)`,
		orderID, oldStatus, newStatus, now())
	return err
}

// ListOrderHistory returns the transitions of an order in chronological order.
func (db *DB) ListOrderHistory(orderID string) ([]OrderHistory, error) {
	rows, err := db.Query(`SELECT id, order_id, old_status, new_status, created_at FROM order_history WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var history []OrderHistory
	for rows.Next() {
		var h OrderHistory
		var created string
		if err := rows.Scan(&h.ID, &h.OrderID, &h.OldStatus, &h.NewStatus, &created); err != nil {
			return nil, err
		}
		h.CreatedAt = parseTime(created)
		history = append(history, h)
	}
	return history, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	var amount, created, updated string
	if err := row.Scan(&o.ID, &o.CustomerName, &amount, &o.Status, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if o.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	o.CreatedAt = parseTime(created)
	o.UpdatedAt = parseTime(updated)
	return &o, nil
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
