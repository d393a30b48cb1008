package http

import "net/http"

// DestinationCatalog provides the encoded destination list.
type DestinationCatalog interface {
	CatalogJSON() []byte
}

type DestinationHandler struct {
	Catalog DestinationCatalog
}

// List handles GET /api/destinations. The body is identical on every call.
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.Catalog.CatalogJSON())
}
