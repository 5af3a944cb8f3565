package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quino300923/frontera-backend/internal/cache"
	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/internal/overrides"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newService seeds the disk snapshot with items and wires a service whose
// upstream fetch never fires.
func newService(t *testing.T, items []domain.InventoryItem) *Service {
	t.Helper()
	dir := t.TempDir()
	logger := testLogger()

	disk := cache.NewDisk(dir, logger)
	disk.Write(domain.InventorySnapshot{
		FetchedAt: time.Now().UnixMilli(),
		Items:     items,
	})

	inv := cache.NewInventory(cache.InventoryConfig{
		Disk: disk,
		Fetch: func(ctx context.Context) []domain.InventoryItem {
			t.Fatal("upstream fetch must not run when the disk snapshot is populated")
			return nil
		},
		Logger: logger,
	})

	return NewService(inv, overrides.NewStore(dir, logger), logger)
}

func inventoryItem(code, desc, brand string, price float64) domain.InventoryItem {
	return domain.InventoryItem{
		Code:        code,
		Description: desc,
		Brand:       domain.Brand{Name: brand},
		BasePrice:   price,
	}
}

func TestFinalPrice(t *testing.T) {
	assert.Equal(t, 1210.0, FinalPrice(1000))
	assert.Equal(t, 0.0, FinalPrice(0))
	// Rounds to cents.
	assert.Equal(t, 121.0, FinalPrice(100.0))
	assert.Equal(t, 12.1, FinalPrice(10))
	assert.Equal(t, 120.99, FinalPrice(99.99))
}

func TestListMotos_AppliesTaxAndDefaults(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("123", "MOTOMEL SKUA 250", "MOTOMEL", 1000),
		inventoryItem("456", "FILTRO AIRE SKUA", "MOTOMEL", 50),
	})

	motos := s.ListMotos(context.Background())
	require.Len(t, motos, 1)

	m := motos[0]
	assert.Equal(t, "00123", m.Codigo)
	assert.Equal(t, "MOTOMEL SKUA 250", m.Descripcion)
	assert.Equal(t, 1210.0, m.PrecioFinal)
	assert.Equal(t, DefaultMotoImage, m.ImagenPrincipal)
	assert.NotNil(t, m.Miniaturas)
}

func TestListMotos_ManualPriceWins(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("123", "MOTOMEL SKUA 250", "MOTOMEL", 1000),
	})

	manual := 999.0
	s.overrides.Upsert("00123", domain.OverrideRecord{ManualPrice: &manual})

	motos := s.ListMotos(context.Background())
	require.Len(t, motos, 1)
	assert.Equal(t, 999.0, motos[0].PrecioFinal)
}

func TestListMotos_OverrideEnrichment(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("7", "ZANELLA ZB 110", "ZANELLA", 500),
	})

	img := "/imagenes/motos/zb110.jpg"
	desc := "Zanella ZB 110 Full"
	s.overrides.Upsert("7", domain.OverrideRecord{
		PrimaryImage:     &img,
		ExtraDescription: &desc,
		Thumbnails:       []string{"a.jpg", "b.jpg"},
	})

	motos := s.ListMotos(context.Background())
	require.Len(t, motos, 1)
	assert.Equal(t, img, motos[0].ImagenPrincipal)
	assert.Equal(t, desc, motos[0].Descripcion)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, motos[0].Miniaturas)
}

func TestGetMoto_NotFound(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("123", "MOTOMEL SKUA 250", "MOTOMEL", 1000),
	})

	_, err := s.GetMoto(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetMoto_NormalizedCodeLookup(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("00123", "MOTOMEL SKUA 250", "MOTOMEL", 1000),
	})

	// Stripped form finds the padded inventory code.
	detail, err := s.GetMoto(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "00123", detail.Codigo)
}

func TestGetMoto_DerivesColorVariants(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("1", "MOTOMEL SKUA 250 COLOR ROJO", "MOTOMEL", 1000),
		inventoryItem("2", "MOTOMEL SKUA 250 COLOR NEGRO", "MOTOMEL", 1000),
		// Duplicate color; first occurrence wins.
		inventoryItem("3", "MOTOMEL SKUA 250 COLOR ROJO", "MOTOMEL", 2000),
		// Different model base, never grouped in.
		inventoryItem("4", "MOTOMEL BLITZ COLOR ROJO", "MOTOMEL", 500),
	})

	detail, err := s.GetMoto(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, detail.Colores, 2)

	assert.Equal(t, "ROJO", detail.Colores[0].Color)
	assert.Equal(t, "1", detail.Colores[0].Code)
	assert.Equal(t, 1210.0, detail.Colores[0].Price)
	assert.Equal(t, "NEGRO", detail.Colores[1].Color)
	assert.Equal(t, "2", detail.Colores[1].Code)
}

func TestGetMoto_OverrideColorsWin(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("1", "MOTOMEL SKUA 250 COLOR ROJO", "MOTOMEL", 1000),
		inventoryItem("2", "MOTOMEL SKUA 250 COLOR NEGRO", "MOTOMEL", 1000),
	})

	s.overrides.Upsert("1", domain.OverrideRecord{
		ColorVariants: []domain.ColorVariant{
			{Color: "AZUL", Code: "1", Price: 1500, Image: "azul.jpg"},
		},
	})

	detail, err := s.GetMoto(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, detail.Colores, 1)
	assert.Equal(t, "AZUL", detail.Colores[0].Color)
}

func TestListHelmets_GroupsBySizeFreeBase(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("h1", "CASCO VERTIGO HK1 TALLE L", "VERTIGO", 100),
		inventoryItem("h2", "CASCO VERTIGO HK1 TALLE XL", "VERTIGO", 100),
		inventoryItem("h3", "CASCO MAC REBATIBLE TALLE M", "MAC", 200),
	})

	groups := s.ListHelmets(context.Background())
	require.Len(t, groups, 2)

	assert.Equal(t, "CASCO VERTIGO HK1", groups[0].Modelo)
	assert.Equal(t, []string{"L", "XL"}, groups[0].Talles)
	assert.Equal(t, []string{"h1", "h2"}, groups[0].Codigos)
	assert.Equal(t, 121.0, groups[0].PrecioFinal)

	assert.Equal(t, "CASCO MAC REBATIBLE", groups[1].Modelo)
}

func TestGetHelmet_SiblingsAndColors(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("h1", "CASCO VERTIGO HK1 TALLE L", "VERTIGO", 100),
		inventoryItem("h2", "CASCO VERTIGO HK1 TALLE XL", "VERTIGO", 100),
	})

	detail, err := s.GetHelmet(context.Background(), "h1")
	require.NoError(t, err)

	assert.Equal(t, "CASCO VERTIGO HK1", detail.ModeloBase)
	assert.Equal(t, "L", detail.Talle)
	assert.Equal(t, []string{"L", "XL"}, detail.TallesDisponibles)
	assert.Len(t, detail.Variantes, 2)
	// No color leftover in the descriptions.
	assert.Equal(t, []string{"Único color"}, detail.ColoresDisponibles)
}

func TestListApparel_ExtractsSize(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("a1", "CAMPERA CORDURA TALLE XL", "LS2", 300),
		inventoryItem("p1", "FILTRO ACEITE", "WANDER", 10),
	})

	apparel := s.ListApparel(context.Background())
	require.Len(t, apparel, 1)
	assert.Equal(t, "XL", apparel[0].Talle)
	assert.Equal(t, DefaultLogoImage, apparel[0].ImagenPrincipal)
}

func TestListParts_ExcludesApparel(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("p1", "FILTRO AIRE SKUA 250", "WANDER", 10),
		inventoryItem("a1", "GUANTES MOTOR SPORT", "LS2", 50),
	})

	parts := s.ListParts(context.Background())
	require.Len(t, parts, 1)
	assert.Equal(t, "p1", parts[0].Codigo)
}

func TestBrands_OnlyMotoBrandsDeduplicated(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		{Code: "1", Description: "MOTOMEL SKUA", Brand: domain.Brand{Name: "MOTOMEL", Code: "M01"}},
		{Code: "2", Description: "MOTOMEL BLITZ", Brand: domain.Brand{Name: "MOTOMEL", Code: "M01"}},
		{Code: "3", Description: "CASCO HK1", Brand: domain.Brand{Name: "VERTIGO", Code: "V01"}},
	})

	brands := s.Brands(context.Background())
	require.Len(t, brands, 1)
	assert.Equal(t, "MOTOMEL", brands[0].Nombre)
	assert.Equal(t, "M01", brands[0].Codigo)
}

func TestModelsByBrand(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("1", "MOTOMEL SKUA 250", "MOTOMEL", 1000),
		inventoryItem("2", "ZANELLA ZB 110", "ZANELLA", 500),
	})

	models := s.ModelsByBrand(context.Background(), "motomel")
	require.Len(t, models, 1)
	assert.Equal(t, "MOTOMEL SKUA 250", models[0].Descripcion)
}

func TestSearch_MatchesAndCapsResults(t *testing.T) {
	items := make([]domain.InventoryItem, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, inventoryItem(
			string(rune('a'+i%26))+"x", "FILTRO AIRE UNIVERSAL", "WANDER", 10,
		))
	}
	items = append(items, inventoryItem("m1", "MOTOMEL SKUA 250", "MOTOMEL", 1000))
	s := newService(t, items)

	assert.Len(t, s.Search(context.Background(), "filtro"), searchLimit)

	results := s.Search(context.Background(), "skua")
	require.Len(t, results, 1)
	assert.Equal(t, "m1", results[0].Codigo)

	assert.Empty(t, s.Search(context.Background(), "  "))
}

func TestAdminFind(t *testing.T) {
	s := newService(t, []domain.InventoryItem{
		inventoryItem("1", "MOTOMEL SKUA 250", "MOTOMEL", 1000),
		inventoryItem("2", "ZANELLA ZB 110", "ZANELLA", 500),
	})

	found, err := s.AdminFind(context.Background(), "motos", "ZANELLA", "ZB")
	require.NoError(t, err)
	assert.Equal(t, "ZANELLA ZB 110", found.Descripcion)

	_, err = s.AdminFind(context.Background(), "motos", "HONDA", "")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = s.AdminFind(context.Background(), "naves", "", "")
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
}
