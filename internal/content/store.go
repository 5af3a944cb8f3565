package content

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

const homeContentFile = "home_content.json"

// Store persists the editable home page content (banners, featured product
// selection, promo video, section banners) as one free-form JSON document.
// Updates are shallow merges so an admin saving one section never wipes
// another.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewStore creates the home content store under dataDir, self-initializing
// an empty document on first use.
func NewStore(dataDir string, logger *slog.Logger) *Store {
	s := &Store{
		path:   filepath.Join(dataDir, homeContentFile),
		logger: logger,
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Error("create data dir", slog.String("dir", dataDir), slog.String("error", err.Error()))
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := os.WriteFile(s.path, []byte("{}"), 0o644); err != nil {
			logger.Error("init home content file", slog.String("error", err.Error()))
		}
	}
	return s
}

// Read returns the full home content document. A missing or corrupt file
// yields an empty document.
func (s *Store) Read() map[string]any {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read home content", slog.String("error", err.Error()))
		}
		return map[string]any{}
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("corrupt home content, treating as empty", slog.String("error", err.Error()))
		return map[string]any{}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc
}

// Update shallow-merges patch onto the current document and writes it back
// atomically, returning the merged document. Keys absent from patch survive.
func (s *Store) Update(patch map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Read()
	for k, v := range patch {
		doc[k] = v
	}
	s.write(doc)
	return doc
}

// Banners returns the home carousel banner URLs.
func (s *Store) Banners() []string {
	return stringSlice(s.Read()["banners"])
}

// AddBanner appends a banner URL and returns the updated list.
func (s *Store) AddBanner(url string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Read()
	banners := append(stringSlice(doc["banners"]), url)
	doc["banners"] = banners
	s.write(doc)
	return banners
}

// DeleteBanner removes the banner at index and returns the updated list.
func (s *Store) DeleteBanner(index int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Read()
	banners := stringSlice(doc["banners"])
	if index < 0 || index >= len(banners) {
		return nil, apperrors.InvalidInput("índice de banner inválido")
	}

	banners = append(banners[:index], banners[index+1:]...)
	doc["banners"] = banners
	s.write(doc)
	return banners, nil
}

// SetSectionBanner stores the banner image for one catalog section and
// returns the full section-to-banner mapping.
func (s *Store) SetSectionBanner(section, url string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Read()
	sections := stringMap(doc["bannersSecciones"])
	sections[section] = url
	doc["bannersSecciones"] = sections
	s.write(doc)
	return sections
}

func (s *Store) write(doc map[string]any) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.logger.Error("marshal home content", slog.String("error", err.Error()))
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Error("write home content", slog.String("error", err.Error()))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("replace home content", slog.String("error", err.Error()))
		_ = os.Remove(tmp)
	}
}

func stringSlice(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]string); ok {
			return typed
		}
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringMap(v any) map[string]string {
	out := map[string]string{}
	items, ok := v.(map[string]any)
	if !ok {
		if typed, ok := v.(map[string]string); ok {
			return typed
		}
		return out
	}
	for k, item := range items {
		if s, ok := item.(string); ok {
			out[k] = s
		}
	}
	return out
}
