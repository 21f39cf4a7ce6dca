package models

// Category classifies a catalog product. The ledger switches on this tag,
// never on ID or name patterns.
type Category string

const (
	CategoryFries    Category = "fries"
	CategoryCombo    Category = "combo" // chorrillanas
	CategoryBeverage Category = "beverage"
	CategoryExtra    Category = "extra"
)

// SizeConfigurable reports whether products in this category come in
// selectable sizes. Size-configurable lines are never merged and always
// carry quantity 1.
func (c Category) SizeConfigurable() bool {
	return c == CategoryFries || c == CategoryCombo
}

// Size identifies one of the three portion sizes.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Product is an immutable catalog entry.
type Product struct {
	// ID is the catalog identifier, e.g. "papas_350g".
	ID string `json:"id"`

	// Name is the display name, e.g. "Papas Fritas Medianas".
	Name string `json:"name"`

	Category Category `json:"category"`

	// Size is set for size-configurable categories and for beverages
	// (where it is informational only, e.g. a bottle volume label).
	Size Size `json:"size,omitempty"`

	// SizeLabel is the printed label for the size, e.g. "350G" or "Mediana".
	SizeLabel string `json:"size_label,omitempty"`

	// UnitPrice is the price in Chilean pesos.
	UnitPrice int64 `json:"unit_price"`

	// Currency is always "CLP" for now.
	Currency string `json:"currency"`

	Description string `json:"description,omitempty"`
}

// AddOnTier splits toppings into the two price bands of the catalog.
type AddOnTier string

const (
	TierBasic   AddOnTier = "basic"
	TierPremium AddOnTier = "premium"
)

// AddOn is a topping priced for a particular line size.
type AddOn struct {
	Name      string    `json:"name"`
	Tier      AddOnTier `json:"tier"`
	UnitPrice int64     `json:"unit_price"`
}

// AddOnLine is an add-on as attached to an order line.
// A line never holds two entries with the same add-on name; repeated
// additions increment Quantity instead.
type AddOnLine struct {
	AddOn
	Quantity int `json:"quantity"`
}

// Amount is this entry's contribution to the line subtotal.
func (a AddOnLine) Amount() int64 {
	return a.UnitPrice * int64(a.Quantity)
}
