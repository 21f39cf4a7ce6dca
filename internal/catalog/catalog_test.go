package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/josemedina1/Papafactory/internal/models"
)

func TestStaticCatalogParses(t *testing.T) {
	c, err := Static()
	if err != nil {
		t.Fatalf("Static: %v", err)
	}

	if got := len(c.ProductsByCategory(models.CategoryFries)); got != 3 {
		t.Errorf("fries products = %d, want 3", got)
	}
	if got := len(c.ProductsByCategory(models.CategoryCombo)); got != 3 {
		t.Errorf("combo products = %d, want 3", got)
	}

	p, ok := c.ProductBySize(models.CategoryFries, models.SizeMedium)
	if !ok {
		t.Fatal("no medium fries in bundled catalog")
	}
	if p.UnitPrice != 3500 {
		t.Errorf("medium fries price = %d, want 3500", p.UnitPrice)
	}
	if p.SizeLabel != "350G" {
		t.Errorf("medium fries label = %q, want 350G", p.SizeLabel)
	}

	combo, ok := c.ProductBySize(models.CategoryCombo, models.SizeLarge)
	if !ok {
		t.Fatal("no large chorrillana in bundled catalog")
	}
	if combo.SizeLabel != "Grande" {
		t.Errorf("large combo label = %q, want Grande", combo.SizeLabel)
	}
}

func TestStaticAddOnPrices(t *testing.T) {
	c, err := Static()
	if err != nil {
		t.Fatalf("Static: %v", err)
	}

	tests := []struct {
		tier models.AddOnTier
		size models.Size
		want int64
	}{
		{models.TierBasic, models.SizeSmall, 300},
		{models.TierBasic, models.SizeMedium, 400},
		{models.TierBasic, models.SizeLarge, 500},
		{models.TierPremium, models.SizeSmall, 700},
		{models.TierPremium, models.SizeMedium, 900},
		{models.TierPremium, models.SizeLarge, 1200},
	}
	for _, tt := range tests {
		got, err := c.AddOnPrice(tt.tier, tt.size)
		if err != nil {
			t.Errorf("AddOnPrice(%s, %s): %v", tt.tier, tt.size, err)
			continue
		}
		if got != tt.want {
			t.Errorf("AddOnPrice(%s, %s) = %d, want %d", tt.tier, tt.size, got, tt.want)
		}
	}
}

func TestAddOnPriceUnknownSizeErrors(t *testing.T) {
	c, err := Static()
	if err != nil {
		t.Fatalf("Static: %v", err)
	}

	if _, err := c.AddOnPrice(models.TierBasic, models.Size("jumbo")); !errors.Is(err, ErrUnknownSize) {
		t.Errorf("expected ErrUnknownSize, got %v", err)
	}
	if _, err := c.AddOnPrice(models.AddOnTier("deluxe"), models.SizeSmall); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("expected ErrUnknownTier, got %v", err)
	}
}

func TestResolveAddOn(t *testing.T) {
	c, err := Static()
	if err != nil {
		t.Fatalf("Static: %v", err)
	}

	a, err := c.ResolveAddOn("Queso", models.TierBasic, models.SizeLarge)
	if err != nil {
		t.Fatalf("ResolveAddOn: %v", err)
	}
	if a.UnitPrice != 500 {
		t.Errorf("price = %d, want 500", a.UnitPrice)
	}
}

func remoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/productos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]RemoteProduct{
			{ID: "1", Nombre: "Papas Fritas 200G", Tamano: "200G", Precio: 2600, Moneda: "CLP", Categoria: "papas_fritas"},
			{ID: "2", Nombre: "Bebida Lata", Precio: 1500, Moneda: "CLP", Categoria: "bebidas"},
			{ID: "3", Nombre: "Misterio", Precio: 100, Moneda: "CLP", Categoria: "sorpresas"},
		})
	})
	mux.HandleFunc("/agregados", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]RemoteAddOn{
			{ID: "1", Item: "Queso", Categoria: "basico", PrecioM: 350, PrecioL: 450, PrecioXL: 550},
			{ID: "2", Item: "Tocino", Categoria: "premium", PrecioM: 700, PrecioL: 900, PrecioXL: 1200},
		})
	})
	return httptest.NewServer(mux)
}

func TestClientFetch(t *testing.T) {
	srv := remoteServer(t)
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	c, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// The unknown-category row is skipped, not fatal.
	if got := len(c.Products()); got != 2 {
		t.Errorf("products = %d, want 2", got)
	}
	p, ok := c.ProductBySize(models.CategoryFries, models.SizeSmall)
	if !ok {
		t.Fatal("remote small fries missing")
	}
	if p.UnitPrice != 2600 {
		t.Errorf("price = %d, want 2600", p.UnitPrice)
	}

	price, err := c.AddOnPrice(models.TierBasic, models.SizeMedium)
	if err != nil {
		t.Fatalf("AddOnPrice: %v", err)
	}
	if price != 450 {
		t.Errorf("basic medium price = %d, want 450", price)
	}
}

func TestLoadFallsBackToStatic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	c, err := Load(context.Background(), client)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Fallback serves the bundled definition.
	p, ok := c.ProductBySize(models.CategoryFries, models.SizeSmall)
	if !ok {
		t.Fatal("bundled small fries missing")
	}
	if p.UnitPrice != 2500 {
		t.Errorf("price = %d, want bundled 2500", p.UnitPrice)
	}
}

func TestLoadWithoutClientUsesStatic(t *testing.T) {
	c, err := Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Products()) == 0 {
		t.Error("expected bundled products")
	}
}

func TestHolderSwap(t *testing.T) {
	first, err := Static()
	if err != nil {
		t.Fatalf("Static: %v", err)
	}
	h := NewHolder(first)

	second, _ := fromRemote(
		[]RemoteProduct{{ID: "1", Nombre: "Papas 200G", Tamano: "200G", Precio: 9999, Moneda: "CLP", Categoria: "papas_fritas"}},
		nil,
	)
	h.Swap(second)

	p, ok := h.ProductBySize(models.CategoryFries, models.SizeSmall)
	if !ok {
		t.Fatal("swapped product missing")
	}
	if p.UnitPrice != 9999 {
		t.Errorf("price = %d, want 9999", p.UnitPrice)
	}
}

func TestSizeLabel(t *testing.T) {
	if got := SizeLabel(models.CategoryFries, models.SizeLarge); got != "500G" {
		t.Errorf("fries large label = %q, want 500G", got)
	}
	if got := SizeLabel(models.CategoryCombo, models.SizeSmall); got != "Chica" {
		t.Errorf("combo small label = %q, want Chica", got)
	}
	if got := SizeLabel(models.CategoryBeverage, models.SizeSmall); got != "small" {
		t.Errorf("unlabelled category falls back to raw size, got %q", got)
	}
}
