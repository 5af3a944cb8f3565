package flexxus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Quino300923/frontera-backend/internal/cache"
	"github.com/Quino300923/frontera-backend/internal/domain"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

// Resource paths exposed by the Flexxus API.
const (
	PathArticulos = "/articulos?limit=5000"
	PathProductos = "/productos"
)

// HTTPDoer is the transport used for upstream calls. Both httpclient.Client
// and httpclient.CircuitBreakerClient satisfy it.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client fetches inventory from the Flexxus API with bearer-token auth.
//
// Flexxus is unreliable: under load or auth failure it returns an HTML error
// page with a 200 status. The client reads the whole body as text and treats
// anything that does not start with "{" as upstream degraded. On any failure
// it falls back to the last disk snapshot, then to an empty list; a catalog
// read never sees a 5xx because Flexxus is down.
type Client struct {
	base   string
	token  string
	http   HTTPDoer
	disk   *cache.Disk
	logger *slog.Logger
}

// NewClient creates a Flexxus client. disk is the fallback source when the
// upstream is unavailable.
func NewClient(base, token string, doer HTTPDoer, disk *cache.Disk, logger *slog.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		token:  token,
		http:   doer,
		disk:   disk,
		logger: logger,
	}
}

type listResponse struct {
	Data []rawArticle `json:"data"`
}

// FetchInventory retrieves and normalizes the article list at the given
// resource path. It never returns an error: failure degrades to the disk
// snapshot, then to an empty slice (fail-open).
func (c *Client) FetchInventory(ctx context.Context, path string) []domain.InventoryItem {
	items, err := c.fetch(ctx, path)
	if err == nil {
		return items
	}

	c.logger.WarnContext(ctx, "flexxus unavailable, falling back",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)

	if snap := c.disk.Read(); !snap.IsEmpty() {
		c.logger.WarnContext(ctx, "serving last disk snapshot",
			slog.Int("items", len(snap.Items)),
		)
		return snap.Items
	}

	return []domain.InventoryItem{}
}

// Inventory fetches the full article list. It matches cache.FetchFunc so the
// inventory cache can refetch through it.
func (c *Client) Inventory(ctx context.Context) []domain.InventoryItem {
	return c.FetchInventory(ctx, PathArticulos)
}

// fetch performs the authenticated request and classifies non-JSON bodies as
// upstream degraded.
func (c *Client) fetch(ctx context.Context, path string) ([]domain.InventoryItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create flexxus request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("flexxus request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read the body as text first: Flexxus returns HTML error pages with a
	// 200 status, so the content has to be sniffed before parsing.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read flexxus response: %w", err)
	}

	text := strings.TrimSpace(string(body))
	if !strings.HasPrefix(text, "{") {
		preview := text
		if len(preview) > 200 {
			preview = preview[:200]
		}
		c.logger.WarnContext(ctx, "flexxus returned non-JSON body",
			slog.Int("status", resp.StatusCode),
			slog.String("preview", preview),
		)
		return nil, apperrors.UpstreamDegraded(fmt.Errorf("non-JSON body (status %d)", resp.StatusCode))
	}

	var list listResponse
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, apperrors.UpstreamDegraded(fmt.Errorf("decode flexxus body: %w", err))
	}

	return normalizeAll(list.Data), nil
}

// Ping reports whether the upstream currently answers with JSON. Used as a
// non-critical health check; a failure here does not flip readiness.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.fetch(ctx, PathProductos)
	return err
}
