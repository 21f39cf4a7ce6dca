package service

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/josemedina1/Papafactory/internal/catalog"
	"github.com/josemedina1/Papafactory/internal/models"
)

// CatalogService serves the catalog to the kiosk UI and lets authenticated
// operators edit the remote collection behind it.
type CatalogService struct {
	catalog *catalog.Holder
	client  *catalog.Client // nil when no remote catalog is configured
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(h *catalog.Holder, client *catalog.Client) *CatalogService {
	return &CatalogService{catalog: h, client: client}
}

type addOnTierView struct {
	Items  []string              `json:"items"`
	Prices map[models.Size]int64 `json:"prices"`
}

type catalogView struct {
	Products map[models.Category][]models.Product `json:"products"`
	AddOns   map[models.AddOnTier]addOnTierView   `json:"add_ons"`
}

// GetCatalog returns the active catalog snapshot grouped for the kiosk UI.
func (s *CatalogService) GetCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Current()

	products := make(map[models.Category][]models.Product)
	for _, c := range []models.Category{
		models.CategoryFries, models.CategoryCombo, models.CategoryBeverage, models.CategoryExtra,
	} {
		if ps := cat.ProductsByCategory(c); ps != nil {
			products[c] = ps
		}
	}

	addOns := make(map[models.AddOnTier]addOnTierView)
	for _, tier := range []models.AddOnTier{models.TierBasic, models.TierPremium} {
		view := addOnTierView{Items: cat.AddOnItems(tier), Prices: make(map[models.Size]int64)}
		for _, size := range []models.Size{models.SizeSmall, models.SizeMedium, models.SizeLarge} {
			if price, err := cat.AddOnPrice(tier, size); err == nil {
				view.Prices[size] = price
			}
		}
		addOns[tier] = view
	}

	writeJSON(w, http.StatusOK, catalogView{Products: products, AddOns: addOns})
}

func (s *CatalogService) remoteConfigured(w http.ResponseWriter) bool {
	if s.client == nil {
		writeError(w, http.StatusServiceUnavailable, "remote catalog not configured")
		return false
	}
	return true
}

// reload fetches a fresh snapshot after an admin edit. A failed fetch keeps
// the previous snapshot; the edit itself already succeeded upstream.
func (s *CatalogService) reload(r *http.Request) {
	fresh, err := s.client.Fetch(r.Context())
	if err != nil {
		slog.Warn("Catalog edit saved but reload failed, keeping previous snapshot", "error", err)
		return
	}
	s.catalog.Swap(fresh)
	slog.Info("Catalog reloaded after edit", "products", len(fresh.Products()))
}

// CreateProduct adds a product to the remote catalog.
func (s *CatalogService) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !s.remoteConfigured(w) {
		return
	}
	var req catalog.RemoteProduct
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := s.client.CreateProduct(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create product", "error", err)
		writeError(w, http.StatusBadGateway, "failed to create product")
		return
	}
	s.reload(r)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateProduct updates a product in the remote catalog.
func (s *CatalogService) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !s.remoteConfigured(w) {
		return
	}
	var req catalog.RemoteProduct
	if !decodeJSON(w, r, &req) {
		return
	}
	updated, err := s.client.UpdateProduct(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		slog.Error("Failed to update product", "id", mux.Vars(r)["id"], "error", err)
		writeError(w, http.StatusBadGateway, "failed to update product")
		return
	}
	s.reload(r)
	writeJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes a product from the remote catalog.
func (s *CatalogService) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !s.remoteConfigured(w) {
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.client.DeleteProduct(r.Context(), id); err != nil {
		slog.Error("Failed to delete product", "id", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to delete product")
		return
	}
	s.reload(r)
	w.WriteHeader(http.StatusNoContent)
}

// CreateAddOn adds a topping row to the remote catalog.
func (s *CatalogService) CreateAddOn(w http.ResponseWriter, r *http.Request) {
	if !s.remoteConfigured(w) {
		return
	}
	var req catalog.RemoteAddOn
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := s.client.CreateAddOn(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create add-on", "error", err)
		writeError(w, http.StatusBadGateway, "failed to create add-on")
		return
	}
	s.reload(r)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateAddOn updates a topping row in the remote catalog.
func (s *CatalogService) UpdateAddOn(w http.ResponseWriter, r *http.Request) {
	if !s.remoteConfigured(w) {
		return
	}
	var req catalog.RemoteAddOn
	if !decodeJSON(w, r, &req) {
		return
	}
	updated, err := s.client.UpdateAddOn(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		slog.Error("Failed to update add-on", "id", mux.Vars(r)["id"], "error", err)
		writeError(w, http.StatusBadGateway, "failed to update add-on")
		return
	}
	s.reload(r)
	writeJSON(w, http.StatusOK, updated)
}

// DeleteAddOn removes a topping row from the remote catalog.
func (s *CatalogService) DeleteAddOn(w http.ResponseWriter, r *http.Request) {
	if !s.remoteConfigured(w) {
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.client.DeleteAddOn(r.Context(), id); err != nil {
		slog.Error("Failed to delete add-on", "id", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to delete add-on")
		return
	}
	s.reload(r)
	w.WriteHeader(http.StatusNoContent)
}
