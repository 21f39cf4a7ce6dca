package receipt

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/josemedina1/Papafactory/internal/money"
)

// htmlDoc is the two-page 80mm print document: customer stub first, then the
// itemized merchant copy after a page break.
var htmlDoc = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"clp": money.FormatCLP,
	"fecha": func(d Document) string {
		return d.IssuedAt.Format(timeLayout)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Orden Papa Factory - {{.Customer.OrderNumber}}</title>
<style>
@media print { body { margin: 0; padding: 0; } @page { margin: 0; size: 80mm auto; } }
body { font-family: 'Courier New', monospace; width: 80mm; margin: 0; padding: 0; font-weight: bold; }
.pagina-cliente { page-break-after: always; text-align: center; padding: 10mm 5mm; font-size: 16px; }
.numero-ticket { font-size: 24px; border: 3px solid #000; padding: 10mm; margin: 5mm 0; background-color: #f0f0f0; }
.reimpresion { font-size: 10px; margin-top: 5mm; color: #666; }
.pagina-comercio { padding: 3mm; font-size: 10px; line-height: 1.2; }
.header { text-align: center; border-bottom: 1px solid #000; padding-bottom: 2mm; margin-bottom: 3mm; font-size: 14px; }
.tipo-copia { background-color: #000; color: #fff; padding: 2mm; margin: 3mm 0; text-align: center; }
.orden-info { background-color: #f0f0f0; text-align: center; padding: 2mm; margin: 2mm 0; border: 1px solid #000; font-size: 12px; }
.fecha { text-align: center; font-size: 8px; margin-bottom: 3mm; }
.item { margin-bottom: 2mm; border-bottom: 1px dotted #999; padding-bottom: 1mm; }
.item-principal { font-size: 9px; display: flex; justify-content: space-between; margin-bottom: 1mm; }
.agregado { font-size: 8px; margin-left: 3mm; display: flex; justify-content: space-between; margin-bottom: 1mm; }
.total { font-size: 12px; text-align: center; background-color: #f0f0f0; border: 2px solid #000; padding: 2mm; margin: 3mm 0 2mm; }
.footer { text-align: center; font-size: 8px; margin-top: 3mm; border-top: 1px solid #999; padding-top: 2mm; }
</style>
</head>
<body>
<div class="pagina-cliente">
  <div class="numero-ticket">{{.Customer.OrderNumber}}</div>
  {{- if .Customer.Reprint}}
  <div class="reimpresion">REIMPRESIÓN</div>
  {{- end}}
</div>
<div class="pagina-comercio">
  <div class="header">PAPA FACTORY</div>
  <div class="tipo-copia">COPIA COMERCIO{{if .Merchant.Reprint}} (REIMPRESIÓN){{end}}</div>
  <div class="orden-info">ORDEN N° {{.Merchant.OrderNumber}}</div>
  <div class="fecha">{{fecha .Merchant}}</div>
  <div class="items">
  {{- range .Merchant.Lines}}
    <div class="item">
      <div class="item-principal"><span>{{.Name}}{{if gt .Quantity 1}} x{{.Quantity}}{{end}}</span><span>{{clp .Amount}}</span></div>
      {{- range .AddOns}}
      <div class="agregado"><span>{{.Name}} x{{.Quantity}}</span><span>{{clp .Amount}}</span></div>
      {{- end}}
    </div>
  {{- end}}
  </div>
  <div class="total">TOTAL: {{clp .Merchant.Total}}</div>
  <div class="footer">
    <div>¡Gracias por su preferencia!</div>
    <div>@papafactory</div>
  </div>
</div>
</body>
</html>
`))

// RenderHTML renders the combined two-page print document.
func RenderHTML(customer, merchant Document) (string, error) {
	var b strings.Builder
	err := htmlDoc.Execute(&b, struct {
		Customer Document
		Merchant Document
	}{customer, merchant})
	if err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return b.String(), nil
}
