package service

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/josemedina1/Papafactory/internal/catalog"
	"github.com/josemedina1/Papafactory/internal/ledger"
	"github.com/josemedina1/Papafactory/internal/models"
	"github.com/josemedina1/Papafactory/internal/receipt"
	"github.com/josemedina1/Papafactory/internal/storage"
)

// OrderService exposes the active order and the order history over HTTP.
type OrderService struct {
	ledger  *ledger.Ledger
	catalog *catalog.Holder
	store   storage.Store
}

// NewOrderService creates a new order service.
func NewOrderService(l *ledger.Ledger, c *catalog.Holder, store storage.Store) *OrderService {
	return &OrderService{ledger: l, catalog: c, store: store}
}

type orderView struct {
	Lines []models.OrderLine `json:"lines"`
	Total int64              `json:"total"`
}

func (s *OrderService) view() orderView {
	lines := s.ledger.Lines()
	if lines == nil {
		lines = []models.OrderLine{}
	}
	return orderView{Lines: lines, Total: s.ledger.Total()}
}

// GetOrder returns the active order.
func (s *OrderService) GetOrder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.view())
}

// ClearOrder abandons the active order.
func (s *OrderService) ClearOrder(w http.ResponseWriter, r *http.Request) {
	s.ledger.Clear()
	writeJSON(w, http.StatusOK, s.view())
}

type addLineRequest struct {
	ProductID string `json:"product_id"`
	AddOns    []struct {
		Name string `json:"name"`
		Tier string `json:"tier"`
	} `json:"add_ons,omitempty"`
}

type addLineResponse struct {
	LineID string `json:"line_id"`
	orderView
}

// AddLine adds a product to the active order.
func (s *OrderService) AddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cat := s.catalog.Current()
	product, ok := cat.ProductByID(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown product: "+req.ProductID)
		return
	}

	var addOns []models.AddOn
	for _, a := range req.AddOns {
		tier, err := parseTier(a.Tier)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resolved, err := cat.ResolveAddOn(a.Name, tier, product.Size)
		if err != nil {
			slog.Warn("AddLine: skipping unpriceable add-on", "add_on", a.Name, "error", err)
			continue
		}
		addOns = append(addOns, resolved)
	}

	lineID := s.ledger.AddLine(product, addOns)
	writeJSON(w, http.StatusOK, addLineResponse{LineID: lineID, orderView: s.view()})
}

type attachAddOnRequest struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

// AttachAddOn adds one unit of a topping to a line.
func (s *OrderService) AttachAddOn(w http.ResponseWriter, r *http.Request) {
	var req attachAddOnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tier, err := parseTier(req.Tier)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.ledger.AttachAddOn(mux.Vars(r)["id"], req.Name, tier)
	writeJSON(w, http.StatusOK, s.view())
}

// DetachAddOn removes one unit of a topping from a line.
func (s *OrderService) DetachAddOn(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s.ledger.DetachAddOn(vars["id"], vars["name"])
	writeJSON(w, http.StatusOK, s.view())
}

type changeSizeRequest struct {
	Size string `json:"size"`
}

// ChangeSize switches a size-configurable line to another portion size.
func (s *OrderService) ChangeSize(w http.ResponseWriter, r *http.Request) {
	var req changeSizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	size, err := parseSize(req.Size)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.ledger.ChangeLineSize(mux.Vars(r)["id"], size)
	writeJSON(w, http.StatusOK, s.view())
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity sets the quantity of a fixed-size line.
func (s *OrderService) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.ledger.SetLineQuantity(mux.Vars(r)["id"], req.Quantity)
	writeJSON(w, http.StatusOK, s.view())
}

// RemoveLine deletes a line from the active order.
func (s *OrderService) RemoveLine(w http.ResponseWriter, r *http.Request) {
	s.ledger.RemoveLine(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, s.view())
}

type finalizeResponse struct {
	Order       *models.Order `json:"order"`
	ReceiptText string        `json:"receipt_text"`
	ReceiptHTML string        `json:"receipt_html"`
}

// Finalize assigns an order number, records the order, and returns the
// rendered two-part receipt ready for the thermal printer.
func (s *OrderService) Finalize(w http.ResponseWriter, r *http.Request) {
	order, err := s.ledger.Finalize(r.Context())
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyOrder) {
			writeError(w, http.StatusBadRequest, "order has no lines")
			return
		}
		slog.Error("Failed to finalize order", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to finalize order")
		return
	}

	customer, merchant := receipt.Pair(order, false)
	html, err := receipt.RenderHTML(customer, merchant)
	if err != nil {
		slog.Error("Failed to render receipt", "number", order.Number, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render receipt")
		return
	}

	writeJSON(w, http.StatusOK, finalizeResponse{
		Order:       order,
		ReceiptText: receipt.RenderTextCombined(customer, merchant),
		ReceiptHTML: html,
	})
}

// ListOrders returns the recorded order history, oldest first.
func (s *OrderService) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.store.ListOrders(r.Context())
	if err != nil {
		slog.Error("Failed to list orders", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// DayStats returns order count, revenue and average ticket for today.
func (s *OrderService) DayStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.DayStats(r.Context(), time.Now())
	if err != nil {
		slog.Error("Failed to compute day stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Reprint renders the receipt of a recorded order again, marked as a reprint.
// The format query parameter selects text (default) or html output.
func (s *OrderService) Reprint(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	order, err := s.store.GetOrder(r.Context(), number)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found: "+number)
			return
		}
		slog.Error("Failed to load order", "number", number, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}

	customer, merchant := receipt.Pair(order, true)
	switch r.URL.Query().Get("format") {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(receipt.RenderTextCombined(customer, merchant)))
	case "html":
		html, err := receipt.RenderHTML(customer, merchant)
		if err != nil {
			slog.Error("Failed to render receipt", "number", number, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to render receipt")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	default:
		writeError(w, http.StatusBadRequest, "format must be text or html")
	}
}

func parseSize(s string) (models.Size, error) {
	switch models.Size(s) {
	case models.SizeSmall, models.SizeMedium, models.SizeLarge:
		return models.Size(s), nil
	}
	return "", errors.New("size must be small, medium or large")
}

func parseTier(s string) (models.AddOnTier, error) {
	switch models.AddOnTier(s) {
	case models.TierBasic, models.TierPremium:
		return models.AddOnTier(s), nil
	}
	return "", errors.New("tier must be basic or premium")
}
