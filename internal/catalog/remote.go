package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/josemedina1/Papafactory/internal/models"
)

// RemoteProduct is the wire form of a product on the collection API.
type RemoteProduct struct {
	ID          string `json:"id,omitempty"`
	Nombre      string `json:"nombre"`
	Tamano      string `json:"tamano,omitempty"`
	Precio      int64  `json:"precio"`
	Moneda      string `json:"moneda"`
	Categoria   string `json:"categoria"`
	Descripcion string `json:"descripcion,omitempty"`
}

// RemoteAddOn is the wire form of a topping on the collection API.
// The three price columns cover the portion sizes in ascending order.
type RemoteAddOn struct {
	ID        string `json:"id,omitempty"`
	Item      string `json:"item"`
	Categoria string `json:"categoria"`
	PrecioM   int64  `json:"precioM"`
	PrecioL   int64  `json:"precioL"`
	PrecioXL  int64  `json:"precioXL"`
}

var remoteCategories = map[string]models.Category{
	"papas_fritas": models.CategoryFries,
	"chorrillanas": models.CategoryCombo,
	"bebidas":      models.CategoryBeverage,
	"extras":       models.CategoryExtra,
}

var remoteTiers = map[string]models.AddOnTier{
	"basico":  models.TierBasic,
	"premium": models.TierPremium,
}

// Client talks to the hosted collection API that the admin panel edits.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a collection API client. baseURL is the collection root,
// e.g. "https://example.mockapi.io/api/v1".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the full catalog from the collection API.
func (c *Client) Fetch(ctx context.Context) (*Catalog, error) {
	var products []RemoteProduct
	if err := c.do(ctx, http.MethodGet, "/productos", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var addOns []RemoteAddOn
	if err := c.do(ctx, http.MethodGet, "/agregados", nil, &addOns); err != nil {
		return nil, fmt.Errorf("failed to fetch add-ons: %w", err)
	}

	return fromRemote(products, addOns)
}

// CreateProduct adds a product to the remote collection and returns it with
// the assigned ID.
func (c *Client) CreateProduct(ctx context.Context, p RemoteProduct) (RemoteProduct, error) {
	var created RemoteProduct
	err := c.do(ctx, http.MethodPost, "/productos", p, &created)
	return created, err
}

// UpdateProduct replaces a product on the remote collection.
func (c *Client) UpdateProduct(ctx context.Context, id string, p RemoteProduct) (RemoteProduct, error) {
	var updated RemoteProduct
	err := c.do(ctx, http.MethodPut, "/productos/"+id, p, &updated)
	return updated, err
}

// DeleteProduct removes a product from the remote collection.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/productos/"+id, nil, nil)
}

// CreateAddOn adds a topping row to the remote collection.
func (c *Client) CreateAddOn(ctx context.Context, a RemoteAddOn) (RemoteAddOn, error) {
	var created RemoteAddOn
	err := c.do(ctx, http.MethodPost, "/agregados", a, &created)
	return created, err
}

// UpdateAddOn replaces a topping row on the remote collection.
func (c *Client) UpdateAddOn(ctx context.Context, id string, a RemoteAddOn) (RemoteAddOn, error) {
	var updated RemoteAddOn
	err := c.do(ctx, http.MethodPut, "/agregados/"+id, a, &updated)
	return updated, err
}

// DeleteAddOn removes a topping row from the remote collection.
func (c *Client) DeleteAddOn(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/agregados/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// fromRemote converts wire rows into a catalog snapshot. Rows with an
// unrecognized category or size label are skipped with a warning so one bad
// admin edit cannot take the catalog down.
func fromRemote(products []RemoteProduct, addOns []RemoteAddOn) (*Catalog, error) {
	c := &Catalog{
		addOnItems:  make(map[models.AddOnTier][]string),
		addOnPrices: make(map[models.AddOnTier]map[models.Size]int64),
	}

	for _, rp := range products {
		cat, ok := remoteCategories[rp.Categoria]
		if !ok {
			slog.Warn("Skipping remote product with unknown category", "id", rp.ID, "categoria", rp.Categoria)
			continue
		}
		p := models.Product{
			ID:          rp.ID,
			Name:        rp.Nombre,
			Category:    cat,
			SizeLabel:   rp.Tamano,
			UnitPrice:   rp.Precio,
			Currency:    rp.Moneda,
			Description: rp.Descripcion,
		}
		if cat.SizeConfigurable() {
			size, ok := sizeFromLabel(cat, rp.Tamano)
			if !ok {
				slog.Warn("Skipping remote product with unknown size label", "id", rp.ID, "tamano", rp.Tamano)
				continue
			}
			p.Size = size
		}
		c.products = append(c.products, p)
	}

	for _, ra := range addOns {
		tier, ok := remoteTiers[ra.Categoria]
		if !ok {
			slog.Warn("Skipping remote add-on with unknown tier", "id", ra.ID, "categoria", ra.Categoria)
			continue
		}
		c.addOnItems[tier] = append(c.addOnItems[tier], ra.Item)
		// All rows of a tier share one price table; the first row wins.
		if _, exists := c.addOnPrices[tier]; !exists {
			c.addOnPrices[tier] = map[models.Size]int64{
				models.SizeSmall:  ra.PrecioM,
				models.SizeMedium: ra.PrecioL,
				models.SizeLarge:  ra.PrecioXL,
			}
		}
	}

	if len(c.products) == 0 {
		return nil, fmt.Errorf("remote catalog is empty")
	}
	return c, nil
}
