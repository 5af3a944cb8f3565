package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Quino300923/frontera-backend/internal/domain"
)

// DefaultTTL is the freshness window for the in-process inventory cache.
const DefaultTTL = 5 * time.Minute

var inventoryReads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "inventory_cache_reads_total",
		Help: "Inventory reads by source (disk, memory, upstream)",
	},
	[]string{"source"},
)

// FetchFunc retrieves the inventory from upstream. It must be fail-open:
// worst case it returns an empty slice, never an error.
type FetchFunc func(ctx context.Context) []domain.InventoryItem

// InventoryConfig configures the in-process inventory cache.
type InventoryConfig struct {
	Disk   *Disk
	Fetch  FetchFunc
	Logger *slog.Logger

	// TTL bounds the in-process cache age. Defaults to DefaultTTL.
	TTL time.Duration

	// Clock is injected for deterministic staleness tests. Defaults to time.Now.
	Clock func() time.Time
}

// Inventory is the hot read path for every listing and detail endpoint: an
// in-process cache in front of the disk store and the upstream client.
//
// Read order: disk wins whenever it holds data, so the TTL below only applies
// while the disk snapshot is empty. Flexxus rate-limits and rejects under
// load; a stale catalog is preferable to an empty one.
type Inventory struct {
	mu         sync.Mutex
	items      []domain.InventoryItem
	lastUpdate time.Time

	disk   *Disk
	fetch  FetchFunc
	ttl    time.Duration
	clock  func() time.Time
	logger *slog.Logger
}

// NewInventory creates the inventory cache.
func NewInventory(cfg InventoryConfig) *Inventory {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Inventory{
		disk:   cfg.Disk,
		fetch:  cfg.Fetch,
		ttl:    cfg.TTL,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}
}

// Get returns the current inventory. It cannot fail; worst case is an empty
// slice. Concurrent cache misses may each trigger an upstream fetch and an
// overlapping disk write; all writes are full-snapshot overwrites, so
// last-write-wins converges.
func (c *Inventory) Get(ctx context.Context) []domain.InventoryItem {
	// 1. Non-empty disk snapshot is authoritative.
	if snap := c.disk.Read(); !snap.IsEmpty() {
		inventoryReads.WithLabelValues("disk").Inc()
		return snap.Items
	}

	// 2. In-process cache, if younger than the TTL.
	now := c.clock()
	c.mu.Lock()
	if c.items != nil && now.Sub(c.lastUpdate) < c.ttl {
		items := c.items
		c.mu.Unlock()
		inventoryReads.WithLabelValues("memory").Inc()
		return items
	}
	c.mu.Unlock()

	// 3. Refetch from upstream, persist, populate memory.
	inventoryReads.WithLabelValues("upstream").Inc()
	return c.refresh(ctx)
}

// ForceRefresh bypasses both cache tiers, refetches from upstream, and
// rewrites the disk snapshot. Exposed through the admin API so staff can
// recover from a known-stale snapshot without waiting for the TTL.
func (c *Inventory) ForceRefresh(ctx context.Context) []domain.InventoryItem {
	return c.refresh(ctx)
}

func (c *Inventory) refresh(ctx context.Context) []domain.InventoryItem {
	items := c.fetch(ctx)
	now := c.clock()

	if len(items) > 0 {
		c.disk.Write(domain.InventorySnapshot{
			FetchedAt: now.UnixMilli(),
			Items:     items,
		})
	}

	c.mu.Lock()
	c.items = items
	c.lastUpdate = now
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "inventory refreshed",
		slog.Int("items", len(items)),
	)
	return items
}
