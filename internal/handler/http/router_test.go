package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Quino300923/frontera-backend/internal/auth"
	"github.com/Quino300923/frontera-backend/internal/cache"
	"github.com/Quino300923/frontera-backend/internal/catalog"
	"github.com/Quino300923/frontera-backend/internal/content"
	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/event"
	"github.com/Quino300923/frontera-backend/internal/overrides"
	"github.com/Quino300923/frontera-backend/internal/service"
	"github.com/Quino300923/frontera-backend/pkg/health"
	"github.com/Quino300923/frontera-backend/pkg/middleware"
)

type fakeAppointmentRepo struct {
	appointments []domain.Appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (int64, error) {
	a.ID = int64(len(r.appointments) + 1)
	r.appointments = append(r.appointments, *a)
	return a.ID, nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context) ([]domain.Appointment, error) {
	return r.appointments, nil
}

func (r *fakeAppointmentRepo) MarkAttended(ctx context.Context, id int64) error { return nil }
func (r *fakeAppointmentRepo) Delete(ctx context.Context, id int64) error       { return nil }

type fakeSubscriberRepo struct{}

func (r *fakeSubscriberRepo) Create(ctx context.Context, email string) (int64, error) {
	return 1, nil
}
func (r *fakeSubscriberRepo) List(ctx context.Context) ([]domain.Subscriber, error) {
	return []domain.Subscriber{}, nil
}
func (r *fakeSubscriberRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeAdminRepo struct {
	hash string
}

func (r *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	return &domain.AdminUser{
		ID: 1, Username: username, PasswordHash: r.hash, Role: "admin",
	}, nil
}

// newTestRouter seeds the disk snapshot and wires the full router with fake
// database repositories.
func newTestRouter(t *testing.T, items []domain.InventoryItem) http.Handler {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	disk := cache.NewDisk(dir, logger)
	disk.Write(domain.InventorySnapshot{FetchedAt: time.Now().UnixMilli(), Items: items})
	inv := cache.NewInventory(cache.InventoryConfig{
		Disk:   disk,
		Fetch:  func(ctx context.Context) []domain.InventoryItem { return items },
		Logger: logger,
	})

	ovr := overrides.NewStore(dir, logger)
	store := content.NewStore(dir, logger)
	featured := content.NewFeatured(content.FeaturedConfig{
		DataDir: dir, Store: store, Inventory: inv, Overrides: ovr, Logger: logger,
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	producer := event.NewProducer(nil, logger)

	return NewRouter(RouterConfig{
		Catalog:      catalog.NewService(inv, ovr, logger),
		Content:      store,
		Featured:     featured,
		Appointments: service.NewAppointmentService(&fakeAppointmentRepo{}, producer, logger),
		Subscribers:  service.NewSubscriberService(&fakeSubscriberRepo{}, producer, logger),
		Auth: auth.NewService(
			&fakeAdminRepo{hash: string(hash)},
			auth.NewJWTManager("test-secret"),
			logger,
		),
		Overrides: ovr,
		Inventory: inv,
		Health:    health.NewHandler(),
		CORS:      middleware.DefaultCORSConfig(),
		Logger:    logger,
	})
}

func testInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{
			Code:        "00123",
			Description: "MOTOMEL SKUA 250",
			Brand:       domain.Brand{Name: "MOTOMEL", Code: "M01"},
			BasePrice:   1000,
		},
		{
			Code:        "h1",
			Description: "CASCO VERTIGO HK1 TALLE L",
			Brand:       domain.Brand{Name: "VERTIGO"},
			BasePrice:   100,
		},
	}
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	rec, env := doRequest(t, router, http.MethodPost, "/api/admin/login",
		map[string]string{"user": "joaquin", "pass": "hunter2"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRouter_ListMotos(t *testing.T) {
	router := newTestRouter(t, testInventory())

	rec, env := doRequest(t, router, http.MethodGet, "/api/motos", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.OK)

	var motos []catalog.MotoSummary
	require.NoError(t, json.Unmarshal(env.Data, &motos))
	require.Len(t, motos, 1)
	assert.Equal(t, 1210.0, motos[0].PrecioFinal)

	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=60")
}

func TestRouter_GetMoto_NotFound(t *testing.T) {
	router := newTestRouter(t, testInventory())

	rec, env := doRequest(t, router, http.MethodGet, "/api/moto/999", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.OK)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestRouter_CreateAppointment_Validation(t *testing.T) {
	router := newTestRouter(t, testInventory())

	rec, env := doRequest(t, router, http.MethodPost, "/api/turnos",
		map[string]string{"nombre": "Juan"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
}

func TestRouter_CreateAppointment(t *testing.T) {
	router := newTestRouter(t, testInventory())

	rec, env := doRequest(t, router, http.MethodPost, "/api/turnos", map[string]string{
		"nombre":      "Juan",
		"telefono":    "123456",
		"fecha_turno": "2026-09-01",
		"hora":        "10:30",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.OK)

	var created domain.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, domain.AppointmentPending, created.Status)
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, testInventory())

	rec, _ := doRequest(t, router, http.MethodGet, "/api/turnos", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, "/api/admin/complements",
		map[string]any{"codigoarticulo": "00123"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminComplementUpsert(t *testing.T) {
	router := newTestRouter(t, testInventory())
	token := login(t, router)

	rec, env := doRequest(t, router, http.MethodPost, "/api/admin/complements", map[string]any{
		"codigoarticulo": "00123",
		"precioManual":   999.0,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.OK)

	// Manual price now wins on the public listing.
	_, listEnv := doRequest(t, router, http.MethodGet, "/api/motos", nil, "")
	var motos []catalog.MotoSummary
	require.NoError(t, json.Unmarshal(listEnv.Data, &motos))
	require.Len(t, motos, 1)
	assert.Equal(t, 999.0, motos[0].PrecioFinal)
}

func TestRouter_AdminCacheRefresh(t *testing.T) {
	router := newTestRouter(t, testInventory())
	token := login(t, router)

	rec, env := doRequest(t, router, http.MethodPost, "/api/admin/cache/refresh", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.OK)
}

func TestRouter_FeaturedEmpty(t *testing.T) {
	router := newTestRouter(t, testInventory())

	rec, env := doRequest(t, router, http.MethodGet, "/api/home-destacados", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.OK)

	var items []content.FeaturedItem
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &items))
	}
	assert.Empty(t, items)
}
