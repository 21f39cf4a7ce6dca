package catalog

import (
	"context"
	"log/slog"

	"github.com/josemedina1/Papafactory/internal/metrics"
)

// Load returns the remote catalog when the collection API answers, and the
// bundled static definition otherwise. Order-taking must never block on the
// network, so any remote failure degrades silently apart from a log line and
// a fallback counter tick.
func Load(ctx context.Context, client *Client) (*Catalog, error) {
	if client != nil {
		c, err := client.Fetch(ctx)
		if err == nil {
			slog.Info("Catalog loaded from remote collection", "products", len(c.products))
			return c, nil
		}
		slog.Warn("Remote catalog unavailable, using bundled definition", "error", err)
		metrics.CatalogFallbacks.Inc()
	}

	c, err := Static()
	if err != nil {
		return nil, err
	}
	slog.Info("Catalog loaded from bundled definition", "products", len(c.products))
	return c, nil
}
