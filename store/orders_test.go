package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testOrder(id, status string) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:           id,
		CustomerName: "Alice",
		Amount:       decimal.RequireFromString("100.00"),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateAndGetOrder(t *testing.T) {
	db := openTestDB(t)

	o := testOrder("ord-1", "PENDING")
	if err := db.CreateOrder(o); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := db.GetOrder("ord-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerName != "Alice" || got.Status != "PENDING" {
		t.Errorf("got %+v", got)
	}
	if !got.Amount.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("amount = %s, want 100.00", got.Amount)
	}
	if got.CreatedAt.IsZero() {
		t.Errorf("created_at not round-tripped")
	}
}

func TestGetOrderNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.GetOrder("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListOrdersByStatus(t *testing.T) {
	db := openTestDB(t)

	for _, o := range []*Order{
		testOrder("a", "PENDING"),
		testOrder("b", "SHIPPED"),
		testOrder("c", "PENDING"),
	} {
		if err := db.CreateOrder(o); err != nil {
			t.Fatalf("create %s: %v", o.ID, err)
		}
	}

	all, err := db.ListOrders()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("list returned %d orders, want 3", len(all))
	}

	pending, err := db.ListOrdersByStatus("PENDING")
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("PENDING list returned %d orders, want 2", len(pending))
	}
	for _, o := range pending {
		if o.Status != "PENDING" {
			t.Errorf("order %s has status %s", o.ID, o.Status)
		}
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := openTestDB(t)

	if err := db.CreateOrder(testOrder("a", "PENDING")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.UpdateOrderStatus("a", "PROCESSED"); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := db.GetOrder("a")
	if got.Status != "PROCESSED" {
		t.Errorf("status = %s, want PROCESSED", got.Status)
	}

	if err := db.UpdateOrderStatus("missing", "PROCESSED"); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: want ErrNotFound, got %v", err)
	}
}

func TestOrderHistoryRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.InsertOrderHistory("a", "PENDING", "PROCESSED"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.InsertOrderHistory("a", "PROCESSED", "SHIPPED"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	history, err := db.ListOrderHistory("a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d entries, want 2", len(history))
	}
	if history[0].NewStatus != "PROCESSED" || history[1].NewStatus != "SHIPPED" {
		t.Errorf("history out of order: %+v", history)
	}
}

func TestNotificationAudit(t *testing.T) {
	db := openTestDB(t)

	if err := db.InsertNotification("ord-1", "PENDING", "Hello Alice!"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.InsertNotification("ord-1", "SHIPPED", "Good news, Alice!"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	list, err := db.ListNotifications(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d notifications, want 2", len(list))
	}
	// Newest first.
	if list[0].Status != "SHIPPED" {
		t.Errorf("first notification status = %s, want SHIPPED", list[0].Status)
	}
}
