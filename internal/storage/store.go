// Package storage provides abstractions for the kiosk's persistent state:
// the order history, the daily ticket counters, and operator accounts.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/josemedina1/Papafactory/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations of the kiosk. The abstraction
// keeps the ledger and services independent of the backing engine.
type Store interface {
	// AppendOrder records a finalized order. History is append-only; there
	// is no update or delete.
	AppendOrder(ctx context.Context, order *models.Order) error

	// GetOrder retrieves one order by ticket number, for reprinting.
	GetOrder(ctx context.Context, number string) (*models.Order, error)

	// ListOrders returns the full history in insertion order.
	ListOrders(ctx context.Context) ([]*models.Order, error)

	// DayStats aggregates the orders of the calendar day containing t.
	DayStats(ctx context.Context, t time.Time) (*models.DayStats, error)

	// NextOrderNumber atomically advances the per-day counter and returns
	// the formatted ticket number. The first call of a new calendar day
	// yields counter 1.
	NextOrderNumber(ctx context.Context, t time.Time) (string, error)

	// CreateOperator persists a new operator account.
	CreateOperator(ctx context.Context, op *models.Operator) error

	// GetOperatorByUsername retrieves an operator for login.
	GetOperatorByUsername(ctx context.Context, username string) (*models.Operator, error)

	// Close releases any resources held by the store.
	Close() error
}
