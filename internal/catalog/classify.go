package catalog

import (
	"strings"

	"github.com/Quino300923/frontera-backend/internal/domain"
)

// Category classification is data-driven: membership is decided by keyword
// tables against the upstream category fields and the free-text description,
// never by per-endpoint branches. Exclusion always wins over inclusion.

// motoBrands are the brands the dealership sells complete motorcycles for.
// A real motorcycle listing always starts with its brand name.
var motoBrands = []string{
	"MOTOMEL", "BAJAJ", "BENELLI", "ZANELLA", "TVS",
	"HERO", "GILERA", "CORVEN", "SUZUKI", "YAMAHA",
}

// accessoryKeywords catch accessories that Flexxus left unclassified.
var accessoryKeywords = []string{
	"PORTA EQUIPAJE", "PORTAEQUIPAJE", "BOLSO",
	"PORTA CELULAR", "BAUL", "BAÚL",
	"PARABRISAS", "CUBRE", "DEFENSA",
	"SOPORTE", "ALFORJA",
}

var apparelKeywords = []string{
	"CAMPERA", "CHAQUETA", "CAMISA", "REMERA", "PANTALON", "PANTALÓN",
	"CALZA", "BUZO", "CAMISETA", "BOTA", "BOTAS", "ZAPATILLA", "ZAPATILLAS",
	"GUANTE", "GUANTES", "PARKA", "JEAN", "POLAR", "INDUMENT", "ROPA",
	"CHALECO", "OVEROL",
}

var partKeywords = []string{
	// oils and lubricants
	"ACEITE", "LUBRICANTE", "GRASA",
	// filters
	"FILTRO", "FILTRO AIRE", "FILTRO ACEITE", "FILTRO COMBUSTIBLE",
	// seals and gaskets
	"RETEN", "RETÉN", "RETENES",
	"JUNTA", "JUNTAS", "JUEGO DE JUNTA", "JUEGO DE JUNTAS",
	// engine
	"MOTOR", "PERNO", "PERNO PISTON", "PISTON", "PISTÓN",
	"CILINDRO", "AROS", "BIELA", "CIGUEÑAL", "CIGÜEÑAL",
	"VALVULA", "VÁLVULA", "VALVULAS", "VÁLVULAS",
	// transmission
	"CADENA", "CORONA", "PIÑON", "PIÑÓN", "KIT TRANSMISION",
	"TRANSMISION", "EMBRAGUE", "DISCO EMBRAGUE",
	// brakes
	"FRENO", "PASTILLA", "PASTILLAS", "DISCO FRENO", "CAMPANA",
	// electrical
	"BOBINA", "REGULADOR", "RECTIFICADOR", "CDI", "ECU",
	"RELÉ", "RELE", "ESTATOR", "ARRANQUE", "ENCENDIDO",
	// fuel and carburetion
	"CARBURADOR", "CHICLER", "CHICLEUR", "AGUJA CARBURADOR",
	// suspension
	"AMORTIGUADOR", "BARRAL", "BARRALES",
	// bearings
	"RULEMAN", "RULEMÁN", "RODAMIENTO",
	// chassis and dash
	"TABLERO", "INSTRUMENTO", "TABLERO INSTRUMENTO",
	"PEDAL", "POSAPIE", "POSAPIÉ", "CABALLETE", "CARENADO",
	"GUARDABARROS", "TAPON", "TAPÓN",
	// fuel system
	"BOMBA NAFTA", "BOMBA COMBUSTIBLE", "FLOTANTE",
	// steering
	"MANUBRIO", "CAZOLETA",
	// kits
	"KIT MOTOR", "KIT REPARACION", "KIT REPARACIÓN",
}

// partExclusions keep accessories, helmets, and apparel out of the parts
// bucket. Evaluated before the inclusion keywords.
var partExclusions = []string{
	"BAUL", "BAÚL", "BAULERA", "PORTAEQUIPAJE",
	"BOLSO", "BOLSA", "CUBRE", "PROTECTOR",
	"CASCO", "ANTIPARRA", "LENTE", "GUANTE",
	"CAMPERA", "PANTALON", "PANTALÓN", "REMERA",
	"INDUMENTARIA",
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// classificationText joins description and every upstream category field
// into one searchable string.
func classificationText(item domain.InventoryItem) string {
	return strings.ToUpper(strings.Join([]string{
		item.Description, item.GroupSuperRubro, item.SuperRubro, item.Rubro,
	}, " "))
}

// IsMoto reports whether the item is a complete motorcycle: its description
// starts with one of the dealership's motorcycle brands.
func IsMoto(item domain.InventoryItem) bool {
	desc := strings.ToUpper(strings.TrimSpace(item.Description))
	if desc == "" {
		return false
	}
	for _, brand := range motoBrands {
		if strings.HasPrefix(desc, brand+" ") {
			return true
		}
	}
	return false
}

// IsMotoBrand reports whether the brand name is one of the dealership's
// motorcycle brands.
func IsMotoBrand(name string) bool {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, brand := range motoBrands {
		if upper == brand {
			return true
		}
	}
	return false
}

// IsHelmet matches on the literal CASCO marker in the description.
func IsHelmet(item domain.InventoryItem) bool {
	return strings.Contains(strings.ToUpper(item.Description), "CASCO")
}

// IsAccessory prefers the upstream category fields and falls back to the
// keyword table for unclassified items.
func IsAccessory(item domain.InventoryItem) bool {
	superRubro := strings.ToUpper(item.SuperRubro)
	rubro := strings.ToUpper(item.Rubro)
	if strings.Contains(superRubro, "ACCESORIO") || strings.Contains(rubro, "ACCESORIO") {
		return true
	}
	return containsAny(strings.ToUpper(item.Description), accessoryKeywords)
}

// IsApparel matches riding gear by description keywords.
func IsApparel(item domain.InventoryItem) bool {
	return containsAny(strings.ToUpper(item.Description), apparelKeywords)
}

// IsPart classifies spare parts. The exclusion table is checked first so
// accessories and apparel never leak into the parts bucket, then the
// upstream group field, then the inclusion keywords.
func IsPart(item domain.InventoryItem) bool {
	text := classificationText(item)

	if containsAny(text, partExclusions) {
		return false
	}
	if strings.Contains(strings.ToUpper(item.GroupSuperRubro), "REPUESTO") {
		return true
	}
	return containsAny(text, partKeywords)
}
