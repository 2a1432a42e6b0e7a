package orders

import (
	"errors"
	"fmt"
	"strings"
)

// Status is an order lifecycle status.
type Status string

// Order statuses in lifecycle order.
const (
	StatusPending   Status = "PENDING"
	StatusProcessed Status = "PROCESSED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
)

// statusRank orders statuses for the no-regression rule. An order may only
// move to a strictly higher rank.
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusProcessed: 1,
	StatusShipped:   2,
	StatusDelivered: 3,
	StatusCanceled:  4,
	StatusCompleted: 5,
}

// terminalStatuses are statuses from which no further transition is allowed.
// Checked independently of rank: CANCELED outranks DELIVERED but COMPLETED
// outranks CANCELED, so a rank-only rule would let a canceled order complete.
var terminalStatuses = map[Status]bool{
	StatusCanceled:  true,
	StatusCompleted: true,
}

var (
	// ErrTerminalStatus is returned when transitioning an order that is
	// already canceled or completed.
	ErrTerminalStatus = errors.New("order is in a terminal status")

	// ErrStatusRegression is returned when the requested status does not
	// move the order forward.
	ErrStatusRegression = errors.New("order status may not move backward or stay the same")

	// ErrUnknownStatus is returned for a status literal outside the enum.
	ErrUnknownStatus = errors.New("unknown order status")
)

// IsTerminal reports whether s permits no further transitions.
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// Valid reports whether s is one of the six known statuses.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// ParseStatus converts an inbound literal to a Status, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// Transition validates moving an order from current to requested and returns
// the new status. The terminal check runs before the rank check, see the note
// on terminalStatuses.
func Transition(current, requested Status) (Status, error) {
	if !requested.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, string(requested))
	}
	if current.IsTerminal() {
		return "", fmt.Errorf("%w: %s", ErrTerminalStatus, current)
	}
	if statusRank[requested] <= statusRank[current] {
		return "", fmt.Errorf("%w: %s -> %s", ErrStatusRegression, current, requested)
	}
	return requested, nil
}
