package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Quino300923/frontera-backend/internal/content"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
	"github.com/Quino300923/frontera-backend/pkg/httputil"
	"github.com/Quino300923/frontera-backend/pkg/validator"
)

// ContentHandler serves the editable home page content.
type ContentHandler struct {
	store    *content.Store
	featured *content.Featured
	logger   *slog.Logger
}

// NewContentHandler creates a new home content HTTP handler.
func NewContentHandler(store *content.Store, featured *content.Featured, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{store: store, featured: featured, logger: logger}
}

// GetContent handles GET /api/contenidos
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.store.Read())
}

// UpdateContent handles POST /api/contenidos and POST /api/home-content.
// Changing the featured selection invalidates its cache.
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch == nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}

	merged := h.store.Update(patch)

	if _, ok := patch["productosDestacados"]; ok {
		h.featured.Invalidate()
		h.logger.InfoContext(r.Context(), "featured cache invalidated")
	}

	httputil.WriteData(w, merged)
}

// GetFeatured handles GET /api/home-destacados
func (h *ContentHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.featured.Get(r.Context()))
}

// GetBanners handles GET /api/contenidos/banners
func (h *ContentHandler) GetBanners(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.store.Banners())
}

// AddBannerRequest is the JSON body for adding a home banner.
type AddBannerRequest struct {
	URL string `json:"url" validate:"required"`
}

// AddBanner handles POST /api/contenidos/banners
func (h *ContentHandler) AddBanner(w http.ResponseWriter, r *http.Request) {
	var req AddBannerRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	httputil.WriteData(w, h.store.AddBanner(req.URL))
}

// DeleteBanner handles DELETE /api/contenidos/banners/{index}
func (h *ContentHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("índice de banner inválido"), h.logger)
		return
	}

	banners, err := h.store.DeleteBanner(index)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, banners)
}

// OfferBannerRequest is the JSON body for the home offers banner.
type OfferBannerRequest struct {
	Imagen string `json:"imagen"`
	Titulo string `json:"titulo"`
	Boton  string `json:"boton"`
	Link   string `json:"link"`
}

// SetOfferBanner handles POST /api/home/banner-ofertas
func (h *ContentHandler) SetOfferBanner(w http.ResponseWriter, r *http.Request) {
	var req OfferBannerRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if req.Link == "" {
		req.Link = "#"
	}
	banner := map[string]any{
		"activo": true,
		"imagen": req.Imagen,
		"titulo": req.Titulo,
		"boton":  req.Boton,
		"link":   req.Link,
	}
	h.store.Update(map[string]any{"bannerOfertas": banner})

	httputil.WriteData(w, banner)
}

// HomeVideoRequest is the JSON body for the home video section.
type HomeVideoRequest struct {
	Archivo   string `json:"archivo"`
	Titulo    string `json:"titulo"`
	Subtitulo string `json:"subtitulo"`
	Link      string `json:"link"`
}

// SetHomeVideo handles POST /api/home/video
func (h *ContentHandler) SetHomeVideo(w http.ResponseWriter, r *http.Request) {
	var req HomeVideoRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if req.Link == "" {
		req.Link = "#"
	}
	video := map[string]any{
		"activo":    true,
		"archivo":   req.Archivo,
		"titulo":    req.Titulo,
		"subtitulo": req.Subtitulo,
		"link":      req.Link,
	}
	h.store.Update(map[string]any{"videoHome": video})

	httputil.WriteData(w, video)
}

// SectionBannerRequest is the JSON body for a catalog section banner.
type SectionBannerRequest struct {
	Categoria string `json:"categoria" validate:"required"`
	URL       string `json:"url" validate:"required"`
}

// SetSectionBanner handles POST /api/home/seccion-banner
func (h *ContentHandler) SetSectionBanner(w http.ResponseWriter, r *http.Request) {
	var req SectionBannerRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	httputil.WriteData(w, h.store.SetSectionBanner(req.Categoria, req.URL))
}
