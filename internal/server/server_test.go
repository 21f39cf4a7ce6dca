package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/josemedina1/Papafactory/internal/auth"
	"github.com/josemedina1/Papafactory/internal/catalog"
	"github.com/josemedina1/Papafactory/internal/ledger"
	"github.com/josemedina1/Papafactory/internal/models"
	"github.com/josemedina1/Papafactory/internal/service"
	"github.com/josemedina1/Papafactory/internal/storage/sqlite"
)

// setupTestServer wires the full stack against a temp database and the
// bundled catalog, no remote.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cat, err := catalog.Static()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	holder := catalog.NewHolder(cat)

	authenticator := auth.NewPasswordAuthenticator(store)
	if err := auth.SeedDefault(context.Background(), authenticator, store, "admin", "papafactory"); err != nil {
		t.Fatalf("failed to seed operator: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	svr := SetupRoutes(
		service.NewOrderService(ledger.New(holder, store, store), holder, store),
		service.NewCatalogService(holder, nil),
		service.NewAuthService(authenticator, jwtManager),
		jwtManager,
	)

	ts := httptest.NewServer(svr.Router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: failed to decode response: %v", method, url, err)
		}
	}
	return resp
}

type orderView struct {
	Lines []models.OrderLine `json:"lines"`
	Total int64              `json:"total"`
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGetCatalog(t *testing.T) {
	ts := setupTestServer(t)

	var body struct {
		Products map[string][]models.Product `json:"products"`
		AddOns   map[string]struct {
			Items  []string         `json:"items"`
			Prices map[string]int64 `json:"prices"`
		} `json:"add_ons"`
	}
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/catalog", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if got := len(body.Products["fries"]); got != 3 {
		t.Errorf("fries = %d, want 3", got)
	}
	if got := body.AddOns["premium"].Prices["large"]; got != 1200 {
		t.Errorf("premium large price = %d, want 1200", got)
	}
}

func TestOrderFlow(t *testing.T) {
	ts := setupTestServer(t)

	// Start with an empty order.
	var view orderView
	doJSON(t, http.MethodGet, ts.URL+"/api/order", nil, &view)
	if len(view.Lines) != 0 || view.Total != 0 {
		t.Fatalf("expected empty order, got %+v", view)
	}

	// Large fries plus double cheese.
	var added struct {
		LineID string             `json:"line_id"`
		Lines  []models.OrderLine `json:"lines"`
		Total  int64              `json:"total"`
	}
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/order/lines",
		map[string]any{"product_id": "papas_500g"}, &added)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add line status = %d", resp.StatusCode)
	}
	lineURL := ts.URL + "/api/order/lines/" + added.LineID

	doJSON(t, http.MethodPost, lineURL+"/addons", map[string]string{"name": "Queso", "tier": "basic"}, &view)
	doJSON(t, http.MethodPost, lineURL+"/addons", map[string]string{"name": "Queso", "tier": "basic"}, &view)
	if view.Total != 4500+2*500 {
		t.Errorf("total = %d, want 5500", view.Total)
	}

	// Shrink to medium, product and add-ons re-price.
	doJSON(t, http.MethodPut, lineURL+"/size", map[string]string{"size": "medium"}, &view)
	if view.Total != 3500+2*400 {
		t.Errorf("total after resize = %d, want 4300", view.Total)
	}

	// One cheese off again.
	resp = doJSON(t, http.MethodDelete, lineURL+"/addons/Queso", nil, &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detach status = %d", resp.StatusCode)
	}
	if view.Total != 3500+400 {
		t.Errorf("total after detach = %d, want 3900", view.Total)
	}

	// Finalize and check the recorded order and receipts.
	var finalized struct {
		Order       *models.Order `json:"order"`
		ReceiptText string        `json:"receipt_text"`
		ReceiptHTML string        `json:"receipt_html"`
	}
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/order/finalize", nil, &finalized)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("finalize status = %d", resp.StatusCode)
	}
	if !regexp.MustCompile(`^[LMWJVSD]\d{3}$`).MatchString(finalized.Order.Number) {
		t.Errorf("order number = %q, want day letter plus three digits", finalized.Order.Number)
	}
	if finalized.Order.Total != 3900 {
		t.Errorf("order total = %d, want 3900", finalized.Order.Total)
	}
	if !strings.Contains(finalized.ReceiptText, "COPIA COMERCIO") {
		t.Error("receipt text missing merchant copy")
	}
	if !strings.Contains(finalized.ReceiptHTML, finalized.Order.Number) {
		t.Error("receipt html missing order number")
	}

	// The ledger is empty again.
	doJSON(t, http.MethodGet, ts.URL+"/api/order", nil, &view)
	if len(view.Lines) != 0 {
		t.Errorf("expected cleared order, got %d lines", len(view.Lines))
	}

	// History holds the order; the reprint carries the mark.
	var orders []*models.Order
	doJSON(t, http.MethodGet, ts.URL+"/api/orders", nil, &orders)
	if len(orders) != 1 || orders[0].Number != finalized.Order.Number {
		t.Fatalf("history = %+v, want the finalized order", orders)
	}

	reprint, err := http.Get(ts.URL + "/api/orders/" + finalized.Order.Number + "/receipt")
	if err != nil {
		t.Fatalf("GET receipt: %v", err)
	}
	defer reprint.Body.Close()
	text, _ := io.ReadAll(reprint.Body)
	if !strings.Contains(string(text), "REIMPRESIÓN") {
		t.Error("reprint missing mark")
	}

	var stats models.DayStats
	doJSON(t, http.MethodGet, ts.URL+"/api/orders/stats", nil, &stats)
	if stats.Orders != 1 || stats.Revenue != 3900 {
		t.Errorf("stats = %+v, want 1 order at 3900", stats)
	}
}

func TestAddLineUnknownProduct(t *testing.T) {
	ts := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/order/lines",
		map[string]any{"product_id": "no_such_thing"}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestBeveragesMergeIntoOneLine(t *testing.T) {
	ts := setupTestServer(t)

	body := map[string]any{"product_id": "bebida_lata_350ml"}
	var view orderView
	doJSON(t, http.MethodPost, ts.URL+"/api/order/lines", body, &view)
	doJSON(t, http.MethodPost, ts.URL+"/api/order/lines", body, &view)

	if len(view.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(view.Lines))
	}
	if view.Lines[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", view.Lines[0].Quantity)
	}
}

func TestFinalizeEmptyOrderRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/order/finalize", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestReprintUnknownOrder(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/orders/Z999/receipt")
	if err != nil {
		t.Fatalf("GET receipt: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestLoginAndAdminAuth(t *testing.T) {
	ts := setupTestServer(t)

	// Admin routes reject anonymous callers.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/admin/products", map[string]any{"nombre": "x"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous admin status = %d, want 401", resp.StatusCode)
	}

	// Bad credentials are rejected.
	resp = doJSON(t, http.MethodPost, ts.URL+"/login",
		map[string]string{"username": "admin", "password": "wrong"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", resp.StatusCode)
	}

	var login struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	resp = doJSON(t, http.MethodPost, ts.URL+"/login",
		map[string]string{"username": "admin", "password": "papafactory"}, &login)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	if login.Token == "" || login.Username != "admin" {
		t.Fatalf("login response = %+v", login)
	}

	// Authenticated, but no remote catalog is configured on this server.
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/admin/products",
		strings.NewReader(`{"nombre":"Papas XL","categoria":"papas_fritas"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+login.Token)
	authed, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("admin request: %v", err)
	}
	defer authed.Body.Close()
	if authed.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("admin status = %d, want 503 without remote catalog", authed.StatusCode)
	}
}

func TestAdminProxiesToRemoteCatalog(t *testing.T) {
	// Remote collection stub that records writes and serves a catalog.
	var gotCreate catalog.RemoteProduct
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/productos":
			json.NewDecoder(r.Body).Decode(&gotCreate)
			gotCreate.ID = "99"
			json.NewEncoder(w).Encode(gotCreate)
		case r.Method == http.MethodGet && r.URL.Path == "/productos":
			json.NewEncoder(w).Encode([]catalog.RemoteProduct{
				{ID: "1", Nombre: "Papas 200G", Tamano: "200G", Precio: 2500, Moneda: "CLP", Categoria: "papas_fritas"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/agregados":
			json.NewEncoder(w).Encode([]catalog.RemoteAddOn{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer remote.Close()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	cat, err := catalog.Static()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	holder := catalog.NewHolder(cat)
	client := catalog.NewClient(remote.URL, 5*time.Second)

	authenticator := auth.NewPasswordAuthenticator(store)
	if err := auth.SeedDefault(context.Background(), authenticator, store, "admin", "papafactory"); err != nil {
		t.Fatalf("failed to seed operator: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	svr := SetupRoutes(
		service.NewOrderService(ledger.New(holder, store, store), holder, store),
		service.NewCatalogService(holder, client),
		service.NewAuthService(authenticator, jwtManager),
		jwtManager,
	)
	ts := httptest.NewServer(svr.Router)
	defer ts.Close()

	var login struct {
		Token string `json:"token"`
	}
	doJSON(t, http.MethodPost, ts.URL+"/login",
		map[string]string{"username": "admin", "password": "papafactory"}, &login)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/admin/products",
		strings.NewReader(`{"nombre":"Papas Gigantes","tamano":"500G","precio":6000,"moneda":"CLP","categoria":"papas_fritas"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 201 (%s)", resp.StatusCode, body)
	}
	if gotCreate.Nombre != "Papas Gigantes" {
		t.Errorf("remote received %+v", gotCreate)
	}

	// The edit triggered a reload; the snapshot now comes from the remote.
	if got := len(holder.Current().Products()); got != 1 {
		t.Errorf("reloaded products = %d, want 1", got)
	}
}
