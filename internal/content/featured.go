package content

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Quino300923/frontera-backend/internal/cache"
	"github.com/Quino300923/frontera-backend/internal/catalog"
	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/overrides"
)

const featuredCacheFile = "destacados_cache.json"

// FeaturedTTL is the freshness window for the composed featured list.
const FeaturedTTL = 5 * time.Minute

// FeaturedItem is one home page featured product, composed from the admin
// selection, the inventory, and the overrides.
type FeaturedItem struct {
	Categoria       string  `json:"categoria"`
	Codigo          string  `json:"codigo"`
	Descripcion     string  `json:"descripcion"`
	Marca           string  `json:"marca"`
	PrecioFinal     float64 `json:"precioFinal"`
	ImagenPrincipal string  `json:"imagenPrincipal"`
}

type featuredSnapshot struct {
	LastUpdate int64          `json:"lastUpdate"`
	Items      []FeaturedItem `json:"items"`
}

// Featured serves the home page featured products through its own disk
// cache so the home page never waits on inventory composition.
type Featured struct {
	mu        sync.Mutex
	path      string
	store     *Store
	inventory *cache.Inventory
	overrides *overrides.Store
	ttl       time.Duration
	clock     func() time.Time
	logger    *slog.Logger
}

// FeaturedConfig configures the featured products cache.
type FeaturedConfig struct {
	DataDir   string
	Store     *Store
	Inventory *cache.Inventory
	Overrides *overrides.Store
	Logger    *slog.Logger

	// TTL defaults to FeaturedTTL; Clock to time.Now.
	TTL   time.Duration
	Clock func() time.Time
}

// NewFeatured creates the featured products cache.
func NewFeatured(cfg FeaturedConfig) *Featured {
	if cfg.TTL <= 0 {
		cfg.TTL = FeaturedTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Featured{
		path:      filepath.Join(cfg.DataDir, featuredCacheFile),
		store:     cfg.Store,
		inventory: cfg.Inventory,
		overrides: cfg.Overrides,
		ttl:       cfg.TTL,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
	}
}

// Get returns the featured products, serving the disk cache while fresh and
// recomposing from the inventory when stale. An empty admin selection yields
// an empty list without touching the cache.
func (f *Featured) Get(ctx context.Context) []FeaturedItem {
	selection := f.selection()
	if len(selection) == 0 {
		return []FeaturedItem{}
	}

	now := f.clock()
	if snap := f.read(); len(snap.Items) > 0 &&
		now.UnixMilli()-snap.LastUpdate < f.ttl.Milliseconds() {
		return snap.Items
	}

	items := f.compose(ctx, selection)
	f.write(featuredSnapshot{LastUpdate: now.UnixMilli(), Items: items})
	return items
}

// Invalidate clears the cache so the next read recomposes. Called when the
// admin changes the featured selection.
func (f *Featured) Invalidate() {
	f.write(featuredSnapshot{LastUpdate: 0, Items: []FeaturedItem{}})
}

type featuredRef struct {
	Categoria string
	Codigo    string
}

func (f *Featured) selection() []featuredRef {
	raw, ok := f.store.Read()["productosDestacados"].([]any)
	if !ok {
		return nil
	}

	refs := make([]featuredRef, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		ref := featuredRef{}
		if v, ok := m["categoria"].(string); ok {
			ref.Categoria = v
		}
		if v, ok := m["codigo"].(string); ok {
			ref.Codigo = v
		}
		refs = append(refs, ref)
	}
	return refs
}

// compose resolves each selected code against the inventory and overrides.
// A code missing from the inventory still yields an entry so the admin can
// see and fix it.
func (f *Featured) compose(ctx context.Context, selection []featuredRef) []FeaturedItem {
	items := f.inventory.Get(ctx)
	all := f.overrides.ReadAll()

	index := make(map[string]domain.InventoryItem, len(items))
	for _, item := range items {
		if key := domain.CanonicalCode(item.Code); key != "" {
			index[key] = item
		}
	}

	result := make([]FeaturedItem, 0, len(selection))
	for _, ref := range selection {
		flex, found := index[domain.CanonicalCode(ref.Codigo)]

		code := ref.Codigo
		if found {
			code = flex.Code
		}
		code = domain.PadCode(code)

		rec, _ := overrides.Lookup(all, code)

		item := FeaturedItem{
			Categoria:       ref.Categoria,
			Codigo:          code,
			Descripcion:     "Código " + code,
			ImagenPrincipal: catalog.DefaultLogoImage,
		}

		if found {
			item.Descripcion = flex.Description
			item.Marca = flex.Brand.Name
			item.PrecioFinal = catalog.FinalPrice(flex.BasePrice)
		} else if extra := rec.ExtraDescription; extra != nil && *extra != "" {
			item.Descripcion = *extra
		}
		if item.Marca == "" && rec.Brand != nil {
			item.Marca = *rec.Brand
		}
		if rec.ManualPrice != nil {
			item.PrecioFinal = *rec.ManualPrice
		}
		if rec.PrimaryImage != nil && *rec.PrimaryImage != "" {
			item.ImagenPrincipal = *rec.PrimaryImage
		}

		result = append(result, item)
	}

	f.logger.InfoContext(ctx, "featured products composed",
		slog.Int("items", len(result)),
	)
	return result
}

func (f *Featured) read() featuredSnapshot {
	empty := featuredSnapshot{Items: []FeaturedItem{}}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("read featured cache", slog.String("error", err.Error()))
		}
		return empty
	}

	var snap featuredSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		f.logger.Warn("corrupt featured cache, treating as empty", slog.String("error", err.Error()))
		return empty
	}
	if snap.Items == nil {
		snap.Items = []FeaturedItem{}
	}
	return snap
}

func (f *Featured) write(snap featuredSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		f.logger.Error("marshal featured cache", slog.String("error", err.Error()))
		return
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		f.logger.Error("write featured cache", slog.String("error", err.Error()))
		return
	}
	if err := os.Rename(tmp, f.path); err != nil {
		f.logger.Error("replace featured cache", slog.String("error", err.Error()))
		_ = os.Remove(tmp)
	}
}
