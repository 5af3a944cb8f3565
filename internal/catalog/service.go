package catalog

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/Quino300923/frontera-backend/internal/cache"
	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/overrides"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

// TaxMultiplier converts a pre-tax Flexxus price into the displayed price.
const TaxMultiplier = 1.21

// Default placeholder images per category.
const (
	DefaultMotoImage = "/imagenes/motos/default_moto.jpg"
	DefaultLogoImage = "/imagenes/img_logo/img_logo_fr.png"
)

const searchLimit = 20

// FinalPrice applies the tax multiplier and rounds to cents.
func FinalPrice(base float64) float64 {
	return math.Round(base*TaxMultiplier*100) / 100
}

// MotoSummary is one motorcycle in the listing.
type MotoSummary struct {
	Codigo          string   `json:"codigo"`
	Descripcion     string   `json:"descripcion"`
	Marca           string   `json:"marca"`
	PrecioFinal     float64  `json:"precioFinal"`
	ImagenPrincipal string   `json:"imagenPrincipal"`
	Miniaturas      []string `json:"miniaturas"`
	FichaTecnica    *string  `json:"fichaTecnica"`
}

// MotoDetail is the full motorcycle view with its color variants.
type MotoDetail struct {
	Codigo          string                `json:"codigo"`
	Descripcion     string                `json:"descripcion"`
	Marca           string                `json:"marca"`
	PrecioFinal     float64               `json:"precioFinal"`
	ImagenPrincipal string                `json:"imagenPrincipal"`
	Miniaturas      []string              `json:"miniaturas"`
	Colores         []domain.ColorVariant `json:"colores"`
	FichaTecnica    *string               `json:"fichaTecnica"`
}

// ItemView is the shared shape for accessory, apparel, and part listings.
type ItemView struct {
	Codigo          string   `json:"codigo"`
	Descripcion     string   `json:"descripcion"`
	Marca           string   `json:"marca"`
	Tipo            string   `json:"tipo"`
	Talle           string   `json:"talle,omitempty"`
	Rubro           string   `json:"rubro,omitempty"`
	PrecioFinal     float64  `json:"precioFinal"`
	ImagenPrincipal string   `json:"imagenPrincipal"`
	Miniaturas      []string `json:"miniaturas"`
	FichaTecnica    *string  `json:"fichaTecnica,omitempty"`
}

// HelmetGroup aggregates every size of one helmet model into a single
// listing entry.
type HelmetGroup struct {
	Modelo          string   `json:"modelo"`
	Marca           string   `json:"marca"`
	Talles          []string `json:"talles"`
	Codigos         []string `json:"codigos"`
	PrecioFinal     float64  `json:"precioFinal"`
	ImagenPrincipal string   `json:"imagenPrincipal"`
}

// HelmetVariant is one purchasable size/color of a helmet model.
type HelmetVariant struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
}

// HelmetDetail is the full helmet view with sibling variants.
type HelmetDetail struct {
	Modelo             string          `json:"modelo"`
	ModeloBase         string          `json:"modeloBase"`
	Tipo               string          `json:"tipo"`
	Marca              string          `json:"marca"`
	Codigo             string          `json:"codigo"`
	Talle              string          `json:"talle"`
	TallesDisponibles  []string        `json:"tallesDisponibles"`
	ColoresDisponibles []string        `json:"coloresDisponibles"`
	Variantes          []HelmetVariant `json:"variantes"`
	Imagen             string          `json:"imagen"`
	Miniaturas         []string        `json:"miniaturas"`
	PrecioFinal        float64         `json:"precioFinal"`
}

// BrandInfo is one motorcycle brand present in the inventory.
type BrandInfo struct {
	Nombre string `json:"nombre"`
	Codigo string `json:"codigo"`
}

// ModelInfo is one model offered under a brand.
type ModelInfo struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
}

// SearchResult is the reduced shape served to the autocomplete search.
type SearchResult struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
	Categoria   string `json:"categoria"`
	Marca       string `json:"marca"`
}

// Service composes the cached inventory with the local overrides into the
// externally visible catalog views. Stateless per request; all state lives
// in the cache layers underneath.
type Service struct {
	inventory *cache.Inventory
	overrides *overrides.Store
	logger    *slog.Logger
}

// NewService creates the catalog service.
func NewService(inventory *cache.Inventory, ovr *overrides.Store, logger *slog.Logger) *Service {
	return &Service{inventory: inventory, overrides: ovr, logger: logger}
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func thumbnails(rec domain.OverrideRecord) []string {
	if rec.Thumbnails == nil {
		return []string{}
	}
	return rec.Thumbnails
}

// priceWith applies the manual price override, else tax on the base price.
func priceWith(rec domain.OverrideRecord, base float64) float64 {
	if rec.ManualPrice != nil {
		return *rec.ManualPrice
	}
	return FinalPrice(base)
}

func imageWith(rec domain.OverrideRecord, fallback string) string {
	if rec.PrimaryImage != nil && *rec.PrimaryImage != "" {
		return *rec.PrimaryImage
	}
	return fallback
}

// findItem locates an inventory item by any surface form of its code.
func findItem(items []domain.InventoryItem, code string) (domain.InventoryItem, bool) {
	for _, item := range items {
		if domain.SameCode(code, item.Code) {
			return item, true
		}
	}
	return domain.InventoryItem{}, false
}

// ListMotos returns every complete motorcycle with overrides applied.
func (s *Service) ListMotos(ctx context.Context) []MotoSummary {
	items := s.inventory.Get(ctx)
	all := s.overrides.ReadAll()

	motos := make([]MotoSummary, 0)
	for _, item := range items {
		if !IsMoto(item) {
			continue
		}
		code := domain.PadCode(item.Code)
		rec, _ := overrides.Lookup(all, code)

		desc := item.Description
		if extra := strOrEmpty(rec.ExtraDescription); extra != "" {
			desc = extra
		}
		brand := item.Brand.Name
		if b := strOrEmpty(rec.Brand); b != "" {
			brand = b
		}

		motos = append(motos, MotoSummary{
			Codigo:          code,
			Descripcion:     desc,
			Marca:           brand,
			PrecioFinal:     priceWith(rec, item.BasePrice),
			ImagenPrincipal: imageWith(rec, DefaultMotoImage),
			Miniaturas:      thumbnails(rec),
			FichaTecnica:    rec.SpecSheetURL,
		})
	}
	return motos
}

// GetMoto returns the detail view for one motorcycle, deriving color
// variants from sibling descriptions when the override supplies none.
func (s *Service) GetMoto(ctx context.Context, code string) (*MotoDetail, error) {
	items := s.inventory.Get(ctx)

	item, ok := findItem(items, code)
	if !ok {
		return nil, apperrors.NotFound("moto", code)
	}

	all := s.overrides.ReadAll()
	rec, _ := overrides.Lookup(all, item.Code)

	colors := rec.ColorVariants
	if len(colors) == 0 {
		colors = s.deriveColors(items, item, all, rec)
	}

	return &MotoDetail{
		Codigo:          item.Code,
		Descripcion:     item.Description,
		Marca:           item.Brand.Name,
		PrecioFinal:     FinalPrice(item.BasePrice),
		ImagenPrincipal: imageWith(rec, DefaultMotoImage),
		Miniaturas:      thumbnails(rec),
		Colores:         colors,
		FichaTecnica:    rec.SpecSheetURL,
	}, nil
}

// deriveColors groups the inventory by size-free model base and emits one
// variant per distinct color. First occurrence wins on duplicate colors so
// similar models never mix.
func (s *Service) deriveColors(
	items []domain.InventoryItem,
	item domain.InventoryItem,
	all map[string]domain.OverrideRecord,
	rec domain.OverrideRecord,
) []domain.ColorVariant {
	base := ModelBase(item.Description)
	if base == "" {
		return []domain.ColorVariant{}
	}

	seen := make(map[string]struct{})
	variants := make([]domain.ColorVariant, 0)
	for _, sibling := range items {
		sibBase, color := ModelAndColor(sibling.Description)
		if strings.ToUpper(sibBase) != base || color == "" {
			continue
		}
		if _, dup := seen[color]; dup {
			continue
		}
		seen[color] = struct{}{}

		sibCode := strings.TrimSpace(sibling.Code)
		image := imageWith(rec, DefaultMotoImage)
		if sibRec, ok := overrides.Lookup(all, sibCode); ok {
			image = imageWith(sibRec, image)
		}

		variants = append(variants, domain.ColorVariant{
			Color: color,
			Code:  sibCode,
			Price: FinalPrice(sibling.BasePrice),
			Image: image,
		})
	}
	return variants
}

// ListAccessories returns accessories with overrides applied.
func (s *Service) ListAccessories(ctx context.Context) []ItemView {
	return s.listItems(ctx, IsAccessory, false)
}

// GetAccessory returns the detail view for one accessory.
func (s *Service) GetAccessory(ctx context.Context, code string) (*ItemView, error) {
	return s.getItem(ctx, code, "accesorio", false)
}

// ListApparel returns riding gear with the extracted size per item.
func (s *Service) ListApparel(ctx context.Context) []ItemView {
	return s.listItems(ctx, IsApparel, true)
}

// GetApparel returns the detail view for one garment.
func (s *Service) GetApparel(ctx context.Context, code string) (*ItemView, error) {
	return s.getItem(ctx, code, "producto", true)
}

// ListParts returns spare parts with overrides applied.
func (s *Service) ListParts(ctx context.Context) []ItemView {
	return s.listItems(ctx, IsPart, false)
}

// GetPart returns the detail view for one spare part.
func (s *Service) GetPart(ctx context.Context, code string) (*ItemView, error) {
	items := s.inventory.Get(ctx)

	item, ok := findItem(items, code)
	if !ok {
		return nil, apperrors.NotFound("repuesto", code)
	}

	all := s.overrides.ReadAll()
	rec, _ := overrides.Lookup(all, item.Code)

	return &ItemView{
		Codigo:          item.Code,
		Descripcion:     item.Description,
		Rubro:           item.Rubro,
		Marca:           item.Brand.Name,
		PrecioFinal:     priceWith(rec, item.BasePrice),
		ImagenPrincipal: imageWith(rec, DefaultLogoImage),
		Miniaturas:      thumbnails(rec),
	}, nil
}

func (s *Service) listItems(ctx context.Context, match func(domain.InventoryItem) bool, withSize bool) []ItemView {
	items := s.inventory.Get(ctx)
	all := s.overrides.ReadAll()

	views := make([]ItemView, 0)
	for _, item := range items {
		if !match(item) {
			continue
		}
		rec, _ := overrides.Lookup(all, item.Code)

		view := ItemView{
			Codigo:          strings.TrimSpace(item.Code),
			Descripcion:     item.Description,
			Marca:           item.Brand.Name,
			PrecioFinal:     priceWith(rec, item.BasePrice),
			ImagenPrincipal: imageWith(rec, DefaultLogoImage),
			Miniaturas:      thumbnails(rec),
		}
		if withSize {
			view.Talle = SizeFromDescription(item.Description)
		}
		views = append(views, view)
	}
	return views
}

func (s *Service) getItem(ctx context.Context, code, resource string, withSize bool) (*ItemView, error) {
	items := s.inventory.Get(ctx)

	item, ok := findItem(items, code)
	if !ok {
		return nil, apperrors.NotFound(resource, code)
	}

	all := s.overrides.ReadAll()
	rec, _ := overrides.Lookup(all, item.Code)

	view := &ItemView{
		Codigo:          strings.TrimSpace(item.Code),
		Descripcion:     item.Description,
		Marca:           item.Brand.Name,
		PrecioFinal:     priceWith(rec, item.BasePrice),
		ImagenPrincipal: imageWith(rec, DefaultLogoImage),
		Miniaturas:      thumbnails(rec),
		FichaTecnica:    rec.SpecSheetURL,
	}
	if withSize {
		view.Talle = SizeFromDescription(item.Description)
	}
	return view, nil
}

// ListHelmets groups helmets by size-free model base, aggregating sizes and
// codes into one listing entry per model.
func (s *Service) ListHelmets(ctx context.Context) []HelmetGroup {
	items := s.inventory.Get(ctx)
	all := s.overrides.ReadAll()

	order := make([]string, 0)
	groups := make(map[string]*HelmetGroup)

	for _, item := range items {
		if !IsHelmet(item) {
			continue
		}

		base := StripSize(item.Description)
		group, ok := groups[base]
		if !ok {
			rec, _ := overrides.Lookup(all, item.Code)
			group = &HelmetGroup{
				Modelo:          base,
				Marca:           item.Brand.Name,
				Talles:          []string{},
				Codigos:         []string{},
				PrecioFinal:     FinalPrice(item.BasePrice),
				ImagenPrincipal: imageWith(rec, DefaultLogoImage),
			}
			groups[base] = group
			order = append(order, base)
		}

		if size := SizeFromDescription(item.Description); size != "" {
			group.Talles = append(group.Talles, size)
		}
		group.Codigos = append(group.Codigos, item.Code)
	}

	result := make([]HelmetGroup, 0, len(order))
	for _, base := range order {
		result = append(result, *groups[base])
	}
	return result
}

// GetHelmet returns one helmet with every sibling size and detected color.
func (s *Service) GetHelmet(ctx context.Context, code string) (*HelmetDetail, error) {
	items := s.inventory.Get(ctx)

	item, ok := findItem(items, code)
	if !ok {
		return nil, apperrors.NotFound("casco", code)
	}

	base := StripSize(item.Description)

	variants := make([]domain.InventoryItem, 0)
	for _, sibling := range items {
		if strings.Contains(strings.ToUpper(sibling.Description), base) {
			variants = append(variants, sibling)
		}
	}

	sizes := make([]string, 0)
	colors := make([]string, 0)
	helmetVariants := make([]HelmetVariant, 0, len(variants))
	for _, v := range variants {
		if size := SizeFromDescription(v.Description); size != "" {
			sizes = append(sizes, size)
		}
		leftover := strings.ToUpper(v.Description)
		leftover = strings.TrimSpace(strings.ReplaceAll(leftover, base, ""))
		leftover = strings.TrimSpace(sizeMarker.ReplaceAllString(leftover, ""))
		if leftover != "" {
			colors = append(colors, leftover)
		}
		helmetVariants = append(helmetVariants, HelmetVariant{
			Codigo:      v.Code,
			Descripcion: v.Description,
		})
	}
	if len(colors) == 0 {
		colors = []string{"Único color"}
	}

	all := s.overrides.ReadAll()
	rec, _ := overrides.Lookup(all, item.Code)

	return &HelmetDetail{
		Modelo:             item.Description,
		ModeloBase:         base,
		Tipo:               HelmetType(item.Description),
		Marca:              item.Brand.Name,
		Codigo:             item.Code,
		Talle:              SizeFromDescription(item.Description),
		TallesDisponibles:  sizes,
		ColoresDisponibles: colors,
		Variantes:          helmetVariants,
		Imagen:             imageWith(rec, DefaultMotoImage),
		Miniaturas:         thumbnails(rec),
		PrecioFinal:        FinalPrice(item.BasePrice),
	}, nil
}

// Brands returns the distinct motorcycle brands present in the inventory.
func (s *Service) Brands(ctx context.Context) []BrandInfo {
	items := s.inventory.Get(ctx)

	order := make([]string, 0)
	codes := make(map[string]string)
	for _, item := range items {
		name := strings.ToUpper(item.Brand.Name)
		if !IsMotoBrand(name) {
			continue
		}
		if _, ok := codes[name]; !ok {
			order = append(order, name)
		}
		codes[name] = item.Brand.Code
	}

	brands := make([]BrandInfo, 0, len(order))
	for _, name := range order {
		brands = append(brands, BrandInfo{Nombre: name, Codigo: codes[name]})
	}
	return brands
}

// ModelsByBrand returns every model offered under a brand.
func (s *Service) ModelsByBrand(ctx context.Context, brand string) []ModelInfo {
	items := s.inventory.Get(ctx)
	target := strings.ToUpper(strings.TrimSpace(brand))

	models := make([]ModelInfo, 0)
	for _, item := range items {
		if strings.ToUpper(item.Brand.Name) != target {
			continue
		}
		models = append(models, ModelInfo{
			Codigo:      item.Code,
			Descripcion: item.Description,
		})
	}
	return models
}

// Search matches the query against description, brand, and category and
// returns at most 20 reduced results for autocomplete.
func (s *Service) Search(ctx context.Context, query string) []SearchResult {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return []SearchResult{}
	}

	items := s.inventory.Get(ctx)

	results := make([]SearchResult, 0, searchLimit)
	for _, item := range items {
		haystack := classificationText(item) + " " + strings.ToUpper(item.Brand.Name)
		if !strings.Contains(haystack, q) {
			continue
		}
		results = append(results, SearchResult{
			Codigo:      item.Code,
			Descripcion: item.Description,
			Categoria:   item.GroupSuperRubro,
			Marca:       item.Brand.Name,
		})
		if len(results) == searchLimit {
			break
		}
	}
	return results
}

// AdminFind locates the first product of a category matching the optional
// brand and model filters. Used by the back-office product picker.
func (s *Service) AdminFind(ctx context.Context, category, brand, model string) (*ItemView, error) {
	var list []ItemView

	switch strings.ToLower(category) {
	case "motos":
		for _, m := range s.ListMotos(ctx) {
			list = append(list, ItemView{
				Codigo:          m.Codigo,
				Descripcion:     m.Descripcion,
				Marca:           m.Marca,
				PrecioFinal:     m.PrecioFinal,
				ImagenPrincipal: m.ImagenPrincipal,
				Miniaturas:      m.Miniaturas,
			})
		}
	case "cascos":
		items := s.inventory.Get(ctx)
		all := s.overrides.ReadAll()
		for _, item := range items {
			if !IsHelmet(item) {
				continue
			}
			rec, _ := overrides.Lookup(all, item.Code)
			list = append(list, ItemView{
				Codigo:          item.Code,
				Descripcion:     item.Description,
				Marca:           item.Brand.Name,
				PrecioFinal:     priceWith(rec, item.BasePrice),
				ImagenPrincipal: imageWith(rec, DefaultMotoImage),
				Miniaturas:      thumbnails(rec),
			})
		}
	case "accesorios":
		list = s.ListAccessories(ctx)
	case "indumentaria":
		list = s.ListApparel(ctx)
	case "repuestos":
		list = s.ListParts(ctx)
	default:
		return nil, apperrors.InvalidInput("categoría desconocida: " + category)
	}

	brand = strings.ToUpper(strings.TrimSpace(brand))
	model = strings.ToUpper(strings.TrimSpace(model))

	for _, p := range list {
		if brand != "" && strings.ToUpper(p.Marca) != brand {
			continue
		}
		if model != "" && !strings.Contains(strings.ToUpper(p.Descripcion), model) {
			continue
		}
		found := p
		return &found, nil
	}
	return nil, apperrors.NotFound("producto", category)
}
