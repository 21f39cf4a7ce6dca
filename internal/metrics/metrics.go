// Package metrics exposes the kiosk's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersFinalized counts orders finalized since startup.
	OrdersFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "papafactory_orders_finalized_total",
		Help: "Number of finalized orders.",
	})

	// Revenue accumulates the CLP total of finalized orders.
	Revenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "papafactory_revenue_clp_total",
		Help: "Revenue of finalized orders in Chilean pesos.",
	})

	// CatalogFallbacks counts catalog loads that fell back to the bundled
	// definition because the remote collection API was unreachable.
	CatalogFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "papafactory_catalog_fallbacks_total",
		Help: "Catalog loads served from the bundled definition.",
	})
)
