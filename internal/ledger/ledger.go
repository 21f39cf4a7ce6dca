// Package ledger owns the active order: its line items, every monetary
// derivation, and finalization into the order history.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/josemedina1/Papafactory/internal/metrics"
	"github.com/josemedina1/Papafactory/internal/models"
)

// ErrEmptyOrder is returned by Finalize when there is nothing to finalize.
// No order number is consumed and history is untouched.
var ErrEmptyOrder = errors.New("order has no lines")

// Catalog is the read-only catalog surface the ledger needs: size-based
// product resolution and add-on pricing.
type Catalog interface {
	ProductBySize(cat models.Category, size models.Size) (models.Product, bool)
	AddOnPrice(tier models.AddOnTier, size models.Size) (int64, error)
}

// Sequencer issues day-scoped order numbers, strictly increasing from 1
// within a calendar day.
type Sequencer interface {
	NextOrderNumber(ctx context.Context, t time.Time) (string, error)
}

// History is the append-only store of finalized orders.
type History interface {
	AppendOrder(ctx context.Context, order *models.Order) error
}

// Ledger holds the single active order of the till. All mutations are
// serialized through one mutex; the kiosk has exactly one operator, the lock
// only guards against overlapping HTTP requests.
type Ledger struct {
	mu      sync.Mutex
	catalog Catalog
	seq     Sequencer
	history History
	now     func() time.Time
	lines   []models.OrderLine
}

// New creates an empty ledger.
func New(catalog Catalog, seq Sequencer, history History) *Ledger {
	return &Ledger{
		catalog: catalog,
		seq:     seq,
		history: history,
		now:     time.Now,
	}
}

// AddLine adds a product to the order and returns the affected line ID.
// Size-configurable products always open a new line with quantity 1;
// fixed-size products merge into an existing line for the same product,
// incrementing its quantity.
func (l *Ledger) AddLine(product models.Product, addOns []models.AddOn) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !product.Category.SizeConfigurable() {
		for i := range l.lines {
			if l.lines[i].Product.ID == product.ID {
				l.lines[i].Quantity++
				l.lines[i].Recompute()
				return l.lines[i].ID
			}
		}
	}

	line := models.OrderLine{
		ID:       uuid.New().String(),
		Product:  product,
		Quantity: 1,
	}
	for _, a := range addOns {
		attach(&line, a)
	}
	line.Recompute()
	l.lines = append(l.lines, line)
	return line.ID
}

// AttachAddOn attaches one unit of a topping to a line, pricing it for the
// line's size. An existing entry with the same name has its quantity
// incremented instead of being duplicated. Unknown lines and unpriceable
// sizes are logged no-ops.
func (l *Ledger) AttachAddOn(lineID, name string, tier models.AddOnTier) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.find(lineID)
	if line == nil {
		slog.Warn("AttachAddOn: line not found", "line_id", lineID)
		return
	}
	price, err := l.catalog.AddOnPrice(tier, line.Product.Size)
	if err != nil {
		slog.Warn("AttachAddOn: no price for size, leaving line unchanged",
			"line_id", lineID, "add_on", name, "error", err)
		return
	}
	attach(line, models.AddOn{Name: name, Tier: tier, UnitPrice: price})
	line.Recompute()
}

// DetachAddOn decrements a topping's quantity by one, removing the entry at
// zero. Detaching past zero, an unknown topping, or an unknown line is a
// logged no-op.
func (l *Ledger) DetachAddOn(lineID, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.find(lineID)
	if line == nil {
		slog.Warn("DetachAddOn: line not found", "line_id", lineID)
		return
	}
	for i := range line.AddOns {
		if line.AddOns[i].Name != name {
			continue
		}
		line.AddOns[i].Quantity--
		if line.AddOns[i].Quantity <= 0 {
			line.AddOns = append(line.AddOns[:i], line.AddOns[i+1:]...)
		}
		line.Recompute()
		return
	}
	slog.Warn("DetachAddOn: add-on not on line", "line_id", lineID, "add_on", name)
}

// ChangeLineSize re-resolves a size-configurable line against the catalog
// entry of the requested size, keeping its add-ons and re-pricing them for
// the new size. When no catalog entry matches, the line is left untouched.
func (l *Ledger) ChangeLineSize(lineID string, newSize models.Size) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.find(lineID)
	if line == nil {
		slog.Warn("ChangeLineSize: line not found", "line_id", lineID)
		return
	}
	if !line.Product.Category.SizeConfigurable() {
		slog.Warn("ChangeLineSize: product has no size options", "line_id", lineID, "product", line.Product.ID)
		return
	}
	product, ok := l.catalog.ProductBySize(line.Product.Category, newSize)
	if !ok {
		slog.Warn("ChangeLineSize: no catalog entry for size", "line_id", lineID, "size", newSize)
		return
	}

	line.Product = product
	for i := range line.AddOns {
		price, err := l.catalog.AddOnPrice(line.AddOns[i].Tier, newSize)
		if err != nil {
			// Keep the previous price rather than zeroing the entry.
			slog.Warn("ChangeLineSize: keeping previous add-on price",
				"line_id", lineID, "add_on", line.AddOns[i].Name, "error", err)
			continue
		}
		line.AddOns[i].UnitPrice = price
	}
	line.Recompute()
}

// SetLineQuantity sets the quantity of a fixed-size line. A quantity below
// one removes the line. Size-configurable lines are pinned to quantity 1 and
// only leave the order via RemoveLine.
func (l *Ledger) SetLineQuantity(lineID string, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.find(lineID)
	if line == nil {
		slog.Warn("SetLineQuantity: line not found", "line_id", lineID)
		return
	}
	if line.Product.Category.SizeConfigurable() {
		slog.Warn("SetLineQuantity: size-configurable lines hold quantity 1", "line_id", lineID)
		return
	}
	if quantity < 1 {
		l.remove(lineID)
		return
	}
	line.Quantity = quantity
	line.Recompute()
}

// RemoveLine deletes a line unconditionally. Unknown IDs are a no-op.
func (l *Ledger) RemoveLine(lineID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.remove(lineID)
}

// Lines returns a snapshot of the current order lines.
func (l *Ledger) Lines() []models.OrderLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return snapshot(l.lines)
}

// Total sums the line subtotals. Recomputed on every call rather than
// cached; staleness bugs cost more than the walk.
func (l *Ledger) Total() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return total(l.lines)
}

// Clear abandons the active order without recording anything.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
}

// Finalize assigns the next day-scoped order number, appends the completed
// order to history, clears the ledger, and returns the recorded order.
func (l *Ledger) Finalize(ctx context.Context) (*models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.lines) == 0 {
		return nil, ErrEmptyOrder
	}

	now := l.now()
	number, err := l.seq.NextOrderNumber(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to assign order number: %w", err)
	}

	order := &models.Order{
		Number:    number,
		CreatedAt: now,
		Lines:     snapshot(l.lines),
		Total:     total(l.lines),
		Status:    models.StatusCompleted,
	}
	if err := l.history.AppendOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to record order %s: %w", number, err)
	}

	l.lines = nil
	metrics.OrdersFinalized.Inc()
	metrics.Revenue.Add(float64(order.Total))
	slog.Info("Order finalized", "number", order.Number, "lines", len(order.Lines), "total", order.Total)
	return order, nil
}

func (l *Ledger) find(lineID string) *models.OrderLine {
	for i := range l.lines {
		if l.lines[i].ID == lineID {
			return &l.lines[i]
		}
	}
	return nil
}

func (l *Ledger) remove(lineID string) {
	for i := range l.lines {
		if l.lines[i].ID == lineID {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			return
		}
	}
	slog.Warn("RemoveLine: line not found", "line_id", lineID)
}

// attach merges one unit of an add-on into a line without recomputing.
func attach(line *models.OrderLine, a models.AddOn) {
	for i := range line.AddOns {
		if line.AddOns[i].Name == a.Name {
			line.AddOns[i].Quantity++
			return
		}
	}
	line.AddOns = append(line.AddOns, models.AddOnLine{AddOn: a, Quantity: 1})
}

func total(lines []models.OrderLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Subtotal
	}
	return sum
}

// snapshot deep-copies lines so history records cannot alias live state.
func snapshot(lines []models.OrderLine) []models.OrderLine {
	out := make([]models.OrderLine, len(lines))
	for i, l := range lines {
		out[i] = l
		out[i].AddOns = append([]models.AddOnLine(nil), l.AddOns...)
	}
	return out
}
