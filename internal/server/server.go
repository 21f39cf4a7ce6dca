// Package server wires the HTTP routes and owns the server lifecycle.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/josemedina1/Papafactory/internal/auth"
	"github.com/josemedina1/Papafactory/internal/middleware"
	"github.com/josemedina1/Papafactory/internal/service"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 1 * time.Minute
)

// Server holds the router and the underlying http.Server.
type Server struct {
	Router *mux.Router
	server *http.Server
}

// SetupRoutes builds the full route table of the kiosk API.
func SetupRoutes(orders *service.OrderService, catalogs *service.CatalogService, auths *service.AuthService, jwt *auth.JWTManager) *Server {
	router := mux.NewRouter()
	router.Use(middleware.Logging)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/login", auths.Login).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/catalog", catalogs.GetCatalog).Methods("GET")

	api.HandleFunc("/order", orders.GetOrder).Methods("GET")
	api.HandleFunc("/order", orders.ClearOrder).Methods("DELETE")
	api.HandleFunc("/order/finalize", orders.Finalize).Methods("POST")
	api.HandleFunc("/order/lines", orders.AddLine).Methods("POST")
	api.HandleFunc("/order/lines/{id}", orders.RemoveLine).Methods("DELETE")
	api.HandleFunc("/order/lines/{id}/size", orders.ChangeSize).Methods("PUT")
	api.HandleFunc("/order/lines/{id}/quantity", orders.SetQuantity).Methods("PUT")
	api.HandleFunc("/order/lines/{id}/addons", orders.AttachAddOn).Methods("POST")
	api.HandleFunc("/order/lines/{id}/addons/{name}", orders.DetachAddOn).Methods("DELETE")

	api.HandleFunc("/orders", orders.ListOrders).Methods("GET")
	api.HandleFunc("/orders/stats", orders.DayStats).Methods("GET")
	api.HandleFunc("/orders/{number}/receipt", orders.Reprint).Methods("GET")

	// catalog edits require an authenticated operator
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAuth(jwt))

	admin.HandleFunc("/products", catalogs.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", catalogs.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", catalogs.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/addons", catalogs.CreateAddOn).Methods("POST")
	admin.HandleFunc("/addons/{id}", catalogs.UpdateAddOn).Methods("PUT")
	admin.HandleFunc("/addons/{id}", catalogs.DeleteAddOn).Methods("DELETE")

	return &Server{Router: router}
}

// Run starts listening on the given port and blocks until the server stops.
func (svr *Server) Run(port string) error {
	svr.server = &http.Server{
		Addr:              ":" + port,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

// Shutdown drains in-flight requests, waiting at most timeout.
func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
