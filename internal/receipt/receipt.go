// Package receipt builds the print-ready documents of a finalized order.
// Content lives in a structured document model; each output target (thermal
// text, HTML print job) has its own renderer, so the print path never pastes
// markup together from business code.
package receipt

import (
	"time"

	"github.com/josemedina1/Papafactory/internal/models"
)

// Copy distinguishes the two tickets of one order.
type Copy string

const (
	// CopyCustomer is the stub handed to the customer: order number only.
	CopyCustomer Copy = "CLIENTE"
	// CopyMerchant is the itemized ticket kept at the till.
	CopyMerchant Copy = "COMERCIO"
)

// AddOnEntry is one add-on sub-line on the merchant copy.
type AddOnEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
}

// LineEntry is one principal line on the merchant copy.
type LineEntry struct {
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice int64        `json:"unit_price"`
	Amount    int64        `json:"amount"`
	AddOns    []AddOnEntry `json:"add_ons,omitempty"`
}

// Document is a print-ready receipt, independent of output format.
type Document struct {
	OrderNumber string      `json:"order_number"`
	IssuedAt    time.Time   `json:"issued_at"`
	Copy        Copy        `json:"copy"`
	Reprint     bool        `json:"reprint"`
	Lines       []LineEntry `json:"lines,omitempty"`
	Total       int64       `json:"total"`
}

// CustomerCopy builds the customer stub: number and nothing else.
func CustomerCopy(order *models.Order, reprint bool) Document {
	return Document{
		OrderNumber: order.Number,
		IssuedAt:    order.CreatedAt,
		Copy:        CopyCustomer,
		Reprint:     reprint,
		Total:       order.Total,
	}
}

// MerchantCopy builds the itemized till ticket, walking the order lines in
// insertion order.
func MerchantCopy(order *models.Order, reprint bool) Document {
	doc := Document{
		OrderNumber: order.Number,
		IssuedAt:    order.CreatedAt,
		Copy:        CopyMerchant,
		Reprint:     reprint,
		Total:       order.Total,
	}
	for _, line := range order.Lines {
		entry := LineEntry{
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.UnitPrice,
			Amount:    line.Product.UnitPrice * int64(line.Quantity),
		}
		for _, a := range line.AddOns {
			entry.AddOns = append(entry.AddOns, AddOnEntry{
				Name:     a.Name,
				Quantity: a.Quantity,
				Amount:   a.Amount(),
			})
		}
		doc.Lines = append(doc.Lines, entry)
	}
	return doc
}

// Pair builds both copies of an order.
func Pair(order *models.Order, reprint bool) (customer, merchant Document) {
	return CustomerCopy(order, reprint), MerchantCopy(order, reprint)
}
