package catalog

import (
	"sync/atomic"

	"github.com/josemedina1/Papafactory/internal/models"
)

// Holder hands out the current catalog snapshot and swaps it atomically
// when an admin edit triggers a reload. The ledger reads through the holder
// so re-pricing after an edit needs no restart.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder wraps an initial snapshot.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Current returns the active snapshot.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Swap replaces the active snapshot.
func (h *Holder) Swap(c *Catalog) {
	h.current.Store(c)
}

// ProductBySize delegates to the active snapshot.
func (h *Holder) ProductBySize(cat models.Category, size models.Size) (models.Product, bool) {
	return h.Current().ProductBySize(cat, size)
}

// AddOnPrice delegates to the active snapshot.
func (h *Holder) AddOnPrice(tier models.AddOnTier, size models.Size) (int64, error) {
	return h.Current().AddOnPrice(tier, size)
}
