package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Quino300923/frontera-backend/internal/auth"
	"github.com/Quino300923/frontera-backend/internal/cache"
	"github.com/Quino300923/frontera-backend/internal/catalog"
	"github.com/Quino300923/frontera-backend/internal/content"
	"github.com/Quino300923/frontera-backend/internal/overrides"
	"github.com/Quino300923/frontera-backend/internal/service"
	"github.com/Quino300923/frontera-backend/pkg/health"
	"github.com/Quino300923/frontera-backend/pkg/middleware"
)

// RouterConfig carries everything the router wires together.
type RouterConfig struct {
	Catalog      *catalog.Service
	Content      *content.Store
	Featured     *content.Featured
	Appointments *service.AppointmentService
	Subscribers  *service.SubscriberService
	Auth         *auth.Service
	Overrides    *overrides.Store
	Inventory    *cache.Inventory
	Health       *health.Handler
	CORS         middleware.CORSConfig
	Logger       *slog.Logger
}

// NewRouter creates a chi router with every storefront and back-office route.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.Tracing("frontera-backend"))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("frontera"))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.Logger)
	contentHandler := NewContentHandler(cfg.Content, cfg.Featured, cfg.Logger)
	appointmentHandler := NewAppointmentHandler(cfg.Appointments, cfg.Logger)
	subscriberHandler := NewSubscriberHandler(cfg.Subscribers, cfg.Logger)
	adminHandler := NewAdminHandler(cfg.Auth, cfg.Overrides, cfg.Catalog, cfg.Inventory, cfg.Logger)

	validateToken := func(token string) (*middleware.Claims, error) {
		claims, err := cfg.Auth.Validate(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			AdminID:  claims.RegisteredClaims.Subject,
			Username: claims.Username,
			Role:     claims.Role,
		}, nil
	}

	// Public storefront API. Listings are cacheable for one minute at the
	// CDN; details come from the same snapshot so they get it too.
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(60))

			r.Get("/motos", catalogHandler.ListMotos)
			r.Get("/moto/{codigo}", catalogHandler.GetMoto)
			r.Get("/cascos", catalogHandler.ListHelmets)
			r.Get("/cascos/{codigo}", catalogHandler.GetHelmet)
			r.Get("/accesorios", catalogHandler.ListAccessories)
			r.Get("/accesorios/{codigo}", catalogHandler.GetAccessory)
			r.Get("/indumentaria", catalogHandler.ListApparel)
			r.Get("/indumentaria/{codigo}", catalogHandler.GetApparel)
			r.Get("/repuestos", catalogHandler.ListParts)
			r.Get("/repuestos/{codigo}", catalogHandler.GetPart)
			r.Get("/marcas", catalogHandler.Brands)
			r.Get("/modelos/{marca}", catalogHandler.Models)
			r.Get("/buscar", catalogHandler.Search)
		})

		r.Get("/contenidos", contentHandler.GetContent)
		r.Get("/contenidos/banners", contentHandler.GetBanners)
		r.Get("/home-content", contentHandler.GetContent)
		r.Get("/home-destacados", contentHandler.GetFeatured)

		r.Post("/turnos", appointmentHandler.Create)
		r.Post("/suscribir", subscriberHandler.Subscribe)

		r.Post("/admin/login", adminHandler.Login)
		r.Post("/admin/logout", adminHandler.Logout)

		// Back-office routes require a valid admin session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(validateToken))
			r.Use(middleware.RequireRole("admin"))

			r.Get("/turnos", appointmentHandler.List)
			r.Put("/turnos/{id}/atendido", appointmentHandler.MarkAttended)
			r.Delete("/turnos/{id}", appointmentHandler.Delete)

			r.Get("/suscriptores", subscriberHandler.List)
			r.Delete("/suscriptores/{id}", subscriberHandler.Delete)

			r.Post("/contenidos", contentHandler.UpdateContent)
			r.Post("/contenidos/banners", contentHandler.AddBanner)
			r.Delete("/contenidos/banners/{index}", contentHandler.DeleteBanner)
			r.Post("/home-content", contentHandler.UpdateContent)
			r.Post("/home/banner-ofertas", contentHandler.SetOfferBanner)
			r.Post("/home/video", contentHandler.SetHomeVideo)
			r.Post("/home/seccion-banner", contentHandler.SetSectionBanner)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/complements", adminHandler.UpsertComplement)
				r.Get("/buscar", adminHandler.Find)
				r.Get("/marcas", adminHandler.Brands)
				r.Get("/modelos/{marca}", catalogHandler.Models)
				r.Post("/cache/refresh", adminHandler.RefreshCache)
			})
		})
	})

	return r
}
