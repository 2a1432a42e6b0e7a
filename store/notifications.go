package store

import "time"

// Notification is one audit row for a delivered order event.
type Notification struct {
	ID        int64     `json:"id"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// InsertNotification records a rendered notification. Best effort; callers
// log and move on when it fails.
func (db *DB) InsertNotification(orderID, status, message string) error {
	_, err := db.Exec(`INSERT INTO notifications (order_id, status, message, created_at) VALUES (?, ?, ?, ?)`,
		orderID, status, message, now())
	return err
}

// ListNotifications returns the most recent notifications, newest first.
func (db *DB) ListNotifications(limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`SELECT id, order_id, status, message, created_at FROM notifications ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		var n Notification
		var created string
		if err := rows.Scan(&n.ID, &n.OrderID, &n.Status, &n.Message, &created); err != nil {
			return nil, err
		}
		n.CreatedAt = parseTime(created)
		out = append(out, n)
	}
	return out, rows.Err()
}
