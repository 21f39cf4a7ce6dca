// Package catalog provides read access to the product and add-on catalog.
// Data comes from the remote collection API when reachable and from the
// bundled static definition otherwise; consumers never see the difference.
package catalog

import (
	"errors"
	"fmt"

	"github.com/josemedina1/Papafactory/internal/models"
)

var (
	// ErrUnknownSize is returned when an add-on price is requested for a
	// size the tier table does not carry. Callers are expected to leave
	// the affected entry untouched rather than defaulting to zero.
	ErrUnknownSize = errors.New("no add-on price for size")

	ErrUnknownTier = errors.New("unknown add-on tier")
)

// Catalog is an immutable snapshot of products and add-on price tables.
type Catalog struct {
	products    []models.Product
	addOnItems  map[models.AddOnTier][]string
	addOnPrices map[models.AddOnTier]map[models.Size]int64
}

// Products returns all catalog products in definition order.
func (c *Catalog) Products() []models.Product {
	return c.products
}

// ProductsByCategory returns the products of one category in definition order.
func (c *Catalog) ProductsByCategory(cat models.Category) []models.Product {
	var out []models.Product
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// ProductByID looks a product up by catalog identifier.
func (c *Catalog) ProductByID(id string) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ProductBySize resolves the product of a size-configurable category that
// matches the requested size. Used when a line changes size.
func (c *Catalog) ProductBySize(cat models.Category, size models.Size) (models.Product, bool) {
	for _, p := range c.products {
		if p.Category == cat && p.Size == size {
			return p, true
		}
	}
	return models.Product{}, false
}

// AddOnItems returns the topping names of a tier.
func (c *Catalog) AddOnItems(tier models.AddOnTier) []string {
	return c.addOnItems[tier]
}

// AddOnPrice resolves the per-unit price of a tier for a given line size.
func (c *Catalog) AddOnPrice(tier models.AddOnTier, size models.Size) (int64, error) {
	table, ok := c.addOnPrices[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTier, tier)
	}
	price, ok := table[size]
	if !ok {
		return 0, fmt.Errorf("%w: %s/%s", ErrUnknownSize, tier, size)
	}
	return price, nil
}

// ResolveAddOn builds a priced AddOn for attachment to a line of the given size.
func (c *Catalog) ResolveAddOn(name string, tier models.AddOnTier, size models.Size) (models.AddOn, error) {
	price, err := c.AddOnPrice(tier, size)
	if err != nil {
		return models.AddOn{}, err
	}
	return models.AddOn{Name: name, Tier: tier, UnitPrice: price}, nil
}

// sizeLabels maps internal sizes to the labels printed on cards and tickets.
var sizeLabels = map[models.Category]map[models.Size]string{
	models.CategoryFries: {
		models.SizeSmall:  "200G",
		models.SizeMedium: "350G",
		models.SizeLarge:  "500G",
	},
	models.CategoryCombo: {
		models.SizeSmall:  "Chica",
		models.SizeMedium: "Mediana",
		models.SizeLarge:  "Grande",
	},
}

// SizeLabel returns the display label for a size within a category,
// or the raw size when the category has no label scheme.
func SizeLabel(cat models.Category, size models.Size) string {
	if labels, ok := sizeLabels[cat]; ok {
		if l, ok := labels[size]; ok {
			return l
		}
	}
	return string(size)
}

func sizeFromLabel(cat models.Category, label string) (models.Size, bool) {
	for size, l := range sizeLabels[cat] {
		if l == label {
			return size, true
		}
	}
	return "", false
}
