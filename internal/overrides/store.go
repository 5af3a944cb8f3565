package overrides

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Quino300923/frontera-backend/internal/domain"
)

const overridesFile = "complements.json"

// Store persists admin-authored product enrichment as one JSON object keyed
// by product code. Keys are stored exactly as submitted; readers must try
// the code's normalized variants (see Lookup).
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewStore creates the overrides store under dataDir, self-initializing an
// empty mapping file on first use.
func NewStore(dataDir string, logger *slog.Logger) *Store {
	s := &Store{
		path:   filepath.Join(dataDir, overridesFile),
		logger: logger,
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Error("create data dir", slog.String("dir", dataDir), slog.String("error", err.Error()))
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := os.WriteFile(s.path, []byte("{}"), 0o644); err != nil {
			logger.Error("init overrides file", slog.String("error", err.Error()))
		}
	}
	return s
}

// ReadAll returns the full code-to-override mapping. A missing or corrupt
// file yields an empty mapping.
func (s *Store) ReadAll() map[string]domain.OverrideRecord {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read overrides", slog.String("error", err.Error()))
		}
		return map[string]domain.OverrideRecord{}
	}

	var all map[string]domain.OverrideRecord
	if err := json.Unmarshal(raw, &all); err != nil {
		s.logger.Warn("corrupt overrides file, treating as empty", slog.String("error", err.Error()))
		return map[string]domain.OverrideRecord{}
	}
	if all == nil {
		all = map[string]domain.OverrideRecord{}
	}
	return all
}

// Upsert shallow-merges patch onto the existing record for code and writes
// the full mapping back atomically. It returns the merged record. The key is
// stored exactly as submitted.
func (s *Store) Upsert(code string, patch domain.OverrideRecord) domain.OverrideRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.ReadAll()
	merged := all[code].Merge(patch)
	all[code] = merged
	s.write(all)
	return merged
}

// Lookup finds the override for a code, trying the exact form first and then
// its zero-stripped and zero-padded variants.
func Lookup(all map[string]domain.OverrideRecord, code string) (domain.OverrideRecord, bool) {
	for _, v := range domain.CodeVariants(code) {
		if rec, ok := all[v]; ok {
			return rec, true
		}
	}
	return domain.OverrideRecord{}, false
}

func (s *Store) write(all map[string]domain.OverrideRecord) {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		s.logger.Error("marshal overrides", slog.String("error", err.Error()))
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Error("write overrides", slog.String("error", err.Error()))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("replace overrides", slog.String("error", err.Error()))
		_ = os.Remove(tmp)
	}
}
