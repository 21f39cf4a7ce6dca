package models

import "time"

// OrderStatus is the lifecycle state of a recorded order. Finalized orders
// are always written as completed; the other states exist for the history
// vocabulary of the admin panel.
type OrderStatus string

const (
	StatusCompleted OrderStatus = "completed"
	StatusPending   OrderStatus = "pending"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderLine is one principal item on an order.
type OrderLine struct {
	// ID is a UUID assigned when the line is created.
	ID string `json:"id"`

	Product Product `json:"product"`

	// AddOns are the toppings attached to this line, unique by name.
	AddOns []AddOnLine `json:"add_ons,omitempty"`

	// Quantity is always 1 for size-configurable lines.
	Quantity int `json:"quantity"`

	// Subtotal is UnitPrice*Quantity plus all add-on amounts.
	// Recomputed after every mutation, never edited directly.
	Subtotal int64 `json:"subtotal"`
}

// Recompute re-establishes the subtotal invariant.
func (l *OrderLine) Recompute() {
	sum := l.Product.UnitPrice * int64(l.Quantity)
	for _, a := range l.AddOns {
		sum += a.Amount()
	}
	l.Subtotal = sum
}

// Order is a finalized order as stored in history.
type Order struct {
	// Number is the day-coded ticket number, e.g. "L001".
	Number string `json:"number"`

	CreatedAt time.Time   `json:"created_at"`
	Lines     []OrderLine `json:"lines"`

	// Total is the sum of line subtotals at finalization time.
	Total int64 `json:"total"`

	Status OrderStatus `json:"status"`
}

// DayStats aggregates the finalized orders of one calendar day.
type DayStats struct {
	Orders        int   `json:"orders"`
	Revenue       int64 `json:"revenue"`
	AverageTicket int64 `json:"average_ticket"`
}
