package http

import (
	"log/slog"
	"net/http"

	"github.com/Quino300923/frontera-backend/internal/auth"
	"github.com/Quino300923/frontera-backend/internal/cache"
	"github.com/Quino300923/frontera-backend/internal/catalog"
	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/overrides"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
	"github.com/Quino300923/frontera-backend/pkg/httputil"
	"github.com/Quino300923/frontera-backend/pkg/validator"
)

// AdminHandler handles back-office endpoints: login, product enrichment,
// the universal product finder, and cache recovery.
type AdminHandler struct {
	auth      *auth.Service
	overrides *overrides.Store
	catalog   *catalog.Service
	inventory *cache.Inventory
	logger    *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(
	authSvc *auth.Service,
	ovr *overrides.Store,
	cat *catalog.Service,
	inv *cache.Inventory,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		auth:      authSvc,
		overrides: ovr,
		catalog:   cat,
		inventory: inv,
		logger:    logger,
	}
}

// LoginRequest is the JSON body for an admin login.
type LoginRequest struct {
	User string `json:"user" validate:"required"`
	Pass string `json:"pass" validate:"required"`
}

// LoginResponse carries the session token and the account identity.
type LoginResponse struct {
	Token string           `json:"token"`
	User  *domain.AdminUser `json:"user"`
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	admin, token, err := h.auth.Login(r.Context(), req.User, req.Pass)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, LoginResponse{Token: token, User: admin})
}

// Logout handles POST /api/admin/logout. Sessions are stateless JWTs, so
// logout is the client discarding its token; the endpoint exists for the
// storefront's flow.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, map[string]string{"message": "sesión cerrada"})
}

// UpsertComplementRequest is the JSON body for enriching a product.
type UpsertComplementRequest struct {
	Code string `json:"codigoarticulo" validate:"required"`

	domain.OverrideRecord
}

// UpsertComplement handles POST /api/admin/complements
func (h *AdminHandler) UpsertComplement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpsertComplementRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	merged := h.overrides.Upsert(req.Code, req.OverrideRecord)
	httputil.WriteData(w, merged)
}

// Find handles GET /api/admin/buscar?categoria=&marca=&modelo=
func (h *AdminHandler) Find(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categoria := q.Get("categoria")
	if categoria == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("categoria is required"), h.logger)
		return
	}

	product, err := h.catalog.AdminFind(r.Context(), categoria, q.Get("marca"), q.Get("modelo"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, product)
}

// Brands handles GET /api/admin/marcas
func (h *AdminHandler) Brands(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, h.catalog.Brands(r.Context()))
}

// RefreshCache handles POST /api/admin/cache/refresh. It refetches the
// inventory from Flexxus and rewrites the disk snapshot so staff can recover
// from known-stale data immediately.
func (h *AdminHandler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	items := h.inventory.ForceRefresh(r.Context())

	h.logger.InfoContext(r.Context(), "inventory cache refreshed by admin",
		slog.Int("items", len(items)),
	)
	httputil.WriteData(w, map[string]int{"articulos": len(items)})
}
