package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Quino300923/frontera-backend/internal/domain"
)

const snapshotFile = "flex_cache.json"

// Disk persists the inventory snapshot as a single JSON document so the
// catalog survives process restarts without hitting Flexxus.
type Disk struct {
	path   string
	logger *slog.Logger
}

// NewDisk creates a disk store rooted at dataDir. The directory is created
// if missing; failure to create it is logged and surfaces later as swallowed
// write errors.
func NewDisk(dataDir string, logger *slog.Logger) *Disk {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Error("create data dir", slog.String("dir", dataDir), slog.String("error", err.Error()))
	}
	return &Disk{
		path:   filepath.Join(dataDir, snapshotFile),
		logger: logger,
	}
}

// Read loads the last persisted snapshot. It never fails: a missing or
// corrupt file yields an empty snapshot with timestamp 0.
func (d *Disk) Read() domain.InventorySnapshot {
	empty := domain.InventorySnapshot{FetchedAt: 0, Items: []domain.InventoryItem{}}

	raw, err := os.ReadFile(d.path)
	if err != nil {
		if !os.IsNotExist(err) {
			d.logger.Warn("read inventory snapshot", slog.String("error", err.Error()))
		}
		return empty
	}

	var snap domain.InventorySnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		d.logger.Warn("corrupt inventory snapshot, treating as empty", slog.String("error", err.Error()))
		return empty
	}
	if snap.Items == nil {
		snap.Items = []domain.InventoryItem{}
	}
	return snap
}

// Write atomically replaces the persisted snapshot. I/O errors are logged
// and swallowed: a failed cache write must never fail the request that
// triggered it.
func (d *Disk) Write(snap domain.InventorySnapshot) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		d.logger.Error("marshal inventory snapshot", slog.String("error", err.Error()))
		return
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		d.logger.Error("write inventory snapshot", slog.String("error", err.Error()))
		return
	}
	if err := os.Rename(tmp, d.path); err != nil {
		d.logger.Error("replace inventory snapshot", slog.String("error", err.Error()))
		_ = os.Remove(tmp)
	}
}
