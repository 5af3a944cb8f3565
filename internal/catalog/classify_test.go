package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Quino300923/frontera-backend/internal/domain"
)

func item(desc, rubro, superRubro, group string) domain.InventoryItem {
	return domain.InventoryItem{
		Description:     desc,
		Rubro:           rubro,
		SuperRubro:      superRubro,
		GroupSuperRubro: group,
	}
}

func TestIsMoto(t *testing.T) {
	assert.True(t, IsMoto(item("MOTOMEL SKUA 250", "", "", "")))
	assert.True(t, IsMoto(item("zanella zb 110", "", "", "")))
	// Brand name alone, with no model after it, is not a listing.
	assert.False(t, IsMoto(item("MOTOMEL", "", "", "")))
	// Parts mentioning a brand mid-description do not qualify.
	assert.False(t, IsMoto(item("FILTRO AIRE MOTOMEL SKUA", "", "", "")))
	assert.False(t, IsMoto(item("", "", "", "")))
}

func TestIsMotoBrand(t *testing.T) {
	assert.True(t, IsMotoBrand("YAMAHA"))
	assert.True(t, IsMotoBrand(" bajaj "))
	assert.False(t, IsMotoBrand("HONDA"))
	assert.False(t, IsMotoBrand(""))
}

func TestIsHelmet(t *testing.T) {
	assert.True(t, IsHelmet(item("CASCO VERTIGO HK1 TALLE L", "", "", "")))
	assert.True(t, IsHelmet(item("casco abierto", "", "", "")))
	assert.False(t, IsHelmet(item("ANTIPARRA CROSS", "", "", "")))
}

func TestIsAccessory(t *testing.T) {
	// Upstream category fields take precedence.
	assert.True(t, IsAccessory(item("GENERICO", "ACCESORIOS MOTO", "", "")))
	assert.True(t, IsAccessory(item("GENERICO", "", "ACCESORIOS", "")))
	// Keyword fallback for unclassified items.
	assert.True(t, IsAccessory(item("BAUL 30L NEGRO", "", "", "")))
	assert.True(t, IsAccessory(item("PARABRISAS UNIVERSAL", "", "", "")))
	assert.False(t, IsAccessory(item("ACEITE 10W40", "", "", "")))
}

func TestIsApparel(t *testing.T) {
	assert.True(t, IsApparel(item("CAMPERA CORDURA TALLE XL", "", "", "")))
	assert.True(t, IsApparel(item("GUANTES PROTECCION", "", "", "")))
	assert.False(t, IsApparel(item("FILTRO ACEITE", "", "", "")))
}

func TestIsPart(t *testing.T) {
	assert.True(t, IsPart(item("FILTRO AIRE SKUA 250", "", "", "")))
	assert.True(t, IsPart(item("KIT TRANSMISION ZB 110", "", "", "")))
	// Group field alone is enough.
	assert.True(t, IsPart(item("COSA SIN KEYWORD", "", "", "REPUESTOS")))

	// Exclusions win even when an inclusion keyword or group also matches.
	assert.False(t, IsPart(item("CUBRE CADENA", "", "", "REPUESTOS")))
	assert.False(t, IsPart(item("GUANTES MOTOR SPORT", "", "", "")))
	assert.False(t, IsPart(item("CASCO CROSS", "", "", "")))

	assert.False(t, IsPart(item("MOTOMEL SKUA 250", "", "", "")))
}
