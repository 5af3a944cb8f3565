package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Quino300923/frontera-backend/internal/catalog"
	"github.com/Quino300923/frontera-backend/pkg/httputil"
)

// CatalogHandler serves the public product listings and details.
type CatalogHandler struct {
	service *catalog.Service
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *catalog.Service, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{service: svc, logger: logger}
}

// ListMotos handles GET /api/motos
func (h *CatalogHandler) ListMotos(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.service.ListMotos(r.Context()))
}

// GetMoto handles GET /api/moto/{codigo}
func (h *CatalogHandler) GetMoto(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetMoto(r.Context(), chi.URLParam(r, "codigo"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, detail)
}

// ListHelmets handles GET /api/cascos
func (h *CatalogHandler) ListHelmets(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.service.ListHelmets(r.Context()))
}

// GetHelmet handles GET /api/cascos/{codigo}
func (h *CatalogHandler) GetHelmet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetHelmet(r.Context(), chi.URLParam(r, "codigo"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, detail)
}

// ListAccessories handles GET /api/accesorios
func (h *CatalogHandler) ListAccessories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.service.ListAccessories(r.Context()))
}

// GetAccessory handles GET /api/accesorios/{codigo}
func (h *CatalogHandler) GetAccessory(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetAccessory(r.Context(), chi.URLParam(r, "codigo"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, detail)
}

// ListApparel handles GET /api/indumentaria
func (h *CatalogHandler) ListApparel(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.service.ListApparel(r.Context()))
}

// GetApparel handles GET /api/indumentaria/{codigo}
func (h *CatalogHandler) GetApparel(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetApparel(r.Context(), chi.URLParam(r, "codigo"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, detail)
}

// ListParts handles GET /api/repuestos
func (h *CatalogHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.service.ListParts(r.Context()))
}

// GetPart handles GET /api/repuestos/{codigo}
func (h *CatalogHandler) GetPart(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetPart(r.Context(), chi.URLParam(r, "codigo"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, detail)
}

// Brands handles GET /api/marcas
func (h *CatalogHandler) Brands(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.service.Brands(r.Context()))
}

// Models handles GET /api/modelos/{marca}
func (h *CatalogHandler) Models(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.service.ModelsByBrand(r.Context(), chi.URLParam(r, "marca")))
}

// Search handles GET /api/buscar?q=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.service.Search(r.Context(), r.URL.Query().Get("q")))
}
