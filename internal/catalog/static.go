package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/josemedina1/Papafactory/internal/models"
)

// catalogJSON is the bundled catalog definition. It keeps the field names of
// the original productos.json so the same document can be served by the
// remote collection API unchanged.
//
//go:embed catalog.json
var catalogJSON []byte

type staticProduct struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Tamano      string `json:"tamano"`
	Precio      int64  `json:"precio"`
	Moneda      string `json:"moneda"`
	Descripcion string `json:"descripcion"`
}

type staticSection struct {
	Items []staticProduct `json:"items"`
}

type staticAddOns struct {
	Items   []string         `json:"items"`
	Precios map[string]int64 `json:"precios_por_tamano"`
}

type staticFile struct {
	Productos struct {
		PapasFritas  staticSection `json:"papas_fritas"`
		Chorrillanas staticSection `json:"chorrillanas"`
		Bebidas      staticSection `json:"bebidas"`
		Extras       staticSection `json:"extras"`
		Basicos      staticAddOns  `json:"agregados_basicos"`
		Premium      staticAddOns  `json:"agregados_premium"`
	} `json:"productos"`
}

// Static parses the bundled catalog definition.
func Static() (*Catalog, error) {
	var file staticFile
	if err := json.Unmarshal(catalogJSON, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bundled catalog: %w", err)
	}

	c := &Catalog{
		addOnItems:  make(map[models.AddOnTier][]string),
		addOnPrices: make(map[models.AddOnTier]map[models.Size]int64),
	}

	sections := []struct {
		cat   models.Category
		items []staticProduct
	}{
		{models.CategoryFries, file.Productos.PapasFritas.Items},
		{models.CategoryCombo, file.Productos.Chorrillanas.Items},
		{models.CategoryBeverage, file.Productos.Bebidas.Items},
		{models.CategoryExtra, file.Productos.Extras.Items},
	}
	for _, sec := range sections {
		for _, sp := range sec.items {
			p, err := sp.toModel(sec.cat)
			if err != nil {
				return nil, err
			}
			c.products = append(c.products, p)
		}
	}

	tiers := []struct {
		tier models.AddOnTier
		data staticAddOns
	}{
		{models.TierBasic, file.Productos.Basicos},
		{models.TierPremium, file.Productos.Premium},
	}
	for _, t := range tiers {
		c.addOnItems[t.tier] = t.data.Items
		table, err := priceTable(t.data.Precios)
		if err != nil {
			return nil, fmt.Errorf("tier %s: %w", t.tier, err)
		}
		c.addOnPrices[t.tier] = table
	}

	return c, nil
}

func (sp staticProduct) toModel(cat models.Category) (models.Product, error) {
	p := models.Product{
		ID:          sp.ID,
		Name:        sp.Nombre,
		Category:    cat,
		SizeLabel:   sp.Tamano,
		UnitPrice:   sp.Precio,
		Currency:    sp.Moneda,
		Description: sp.Descripcion,
	}
	if cat.SizeConfigurable() {
		size, ok := sizeFromLabel(cat, sp.Tamano)
		if !ok {
			return models.Product{}, fmt.Errorf("product %s: unrecognized size label %q", sp.ID, sp.Tamano)
		}
		p.Size = size
	}
	return p, nil
}

// priceTable maps the fries gram labels of a price table onto sizes.
// Add-on tables are keyed by the fries labels; combo sizes map onto the
// same three entries.
func priceTable(precios map[string]int64) (map[models.Size]int64, error) {
	table := make(map[models.Size]int64, len(precios))
	for label, price := range precios {
		size, ok := sizeFromLabel(models.CategoryFries, label)
		if !ok {
			return nil, fmt.Errorf("unrecognized price table label %q", label)
		}
		table[size] = price
	}
	return table, nil
}
