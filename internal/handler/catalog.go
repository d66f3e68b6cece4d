package handler

import (
	"log/slog"
	"net/http"

	"pitchcraft/internal/catalog"
	"pitchcraft/internal/httputil"
)

// CatalogHandler serves the read-only section type catalog
type CatalogHandler struct {
	registry *catalog.Registry
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(registry *catalog.Registry, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListSectionTypes returns the standard section types in suggested order
// GET /api/section-types
func (h *CatalogHandler) ListSectionTypes(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"section_types": h.registry.List(),
	})
}
