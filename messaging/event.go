package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ordertrack/store"
)

// OrderEvent is the wire form of an order snapshot at the moment of a
// change. One event is published per create or successful transition.
type OrderEvent struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// NewOrderEvent snapshots an order into its event form.
func NewOrderEvent(o *store.Order) OrderEvent {
	return OrderEvent{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Amount:       o.Amount,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt.UTC(),
	}
}

// Encode serializes the event for publishing.
func (e OrderEvent) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode order event: %w", err)
	}
	return data, nil
}

// DecodeOrderEvent parses an event payload from the broker.
func DecodeOrderEvent(data []byte) (*OrderEvent, error) {
	var e OrderEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode order event: %w", err)
	}
	if e.ID == "" {
		return nil, fmt.Errorf("decode order event: missing id")
	}
	return &e, nil
}
