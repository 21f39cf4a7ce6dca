package receipt

import (
	"fmt"
	"strings"

	"github.com/josemedina1/Papafactory/internal/money"
)

// width is the character width of the 80mm thermal stock at the font the
// printer is configured for.
const width = 32

const timeLayout = "02-01-2006 15:04"

// RenderText renders one document for the thermal printer.
func RenderText(doc Document) string {
	var b strings.Builder

	writeCentered(&b, "PAPA FACTORY")
	writeCentered(&b, "ORDEN N° "+doc.OrderNumber)
	writeCentered(&b, "COPIA "+string(doc.Copy))
	if doc.Reprint {
		writeCentered(&b, "REIMPRESIÓN")
	}
	writeCentered(&b, doc.IssuedAt.Format(timeLayout))

	if len(doc.Lines) > 0 {
		b.WriteString(strings.Repeat("-", width) + "\n")
		for i, line := range doc.Lines {
			name := fmt.Sprintf("%d. %s", i+1, line.Name)
			if line.Quantity > 1 {
				name += fmt.Sprintf(" x%d", line.Quantity)
			}
			writeAmountLine(&b, name, line.Amount)
			for _, a := range line.AddOns {
				writeAmountLine(&b, fmt.Sprintf("  - %s x%d", a.Name, a.Quantity), a.Amount)
			}
		}
		b.WriteString(strings.Repeat("-", width) + "\n")
		writeAmountLine(&b, "TOTAL:", doc.Total)
		writeCentered(&b, "¡Gracias por su preferencia!")
		writeCentered(&b, "@papafactory")
	}

	return b.String()
}

// RenderTextCombined joins both copies with a form feed, the page-break
// marker thermal drivers understand.
func RenderTextCombined(customer, merchant Document) string {
	return RenderText(customer) + "\f" + RenderText(merchant)
}

func writeCentered(b *strings.Builder, s string) {
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + s + "\n")
}

// writeAmountLine prints a label on the left and an amount flush right,
// wrapping onto two rows when the label is too long.
func writeAmountLine(b *strings.Builder, label string, amount int64) {
	price := money.FormatCLP(amount)
	gap := width - len([]rune(label)) - len([]rune(price))
	if gap < 1 {
		b.WriteString(label + "\n")
		b.WriteString(strings.Repeat(" ", width-len([]rune(price))) + price + "\n")
		return
	}
	b.WriteString(label + strings.Repeat(" ", gap) + price + "\n")
}
