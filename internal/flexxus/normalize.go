package flexxus

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Quino300923/frontera-backend/internal/domain"
)

// flexString tolerates Flexxus emitting the same field as a JSON string or
// number depending on the endpoint.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexNumber tolerates numeric fields arriving as numbers or numeric strings.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = flexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = flexNumber(f)
	return nil
}

type rawBrand struct {
	Descripcion flexString `json:"descripcion"`
	CodigoMarca flexString `json:"codigomarca"`
}

// rawArticle carries every field alias Flexxus is known to use across its
// /articulos and /productos endpoints. normalize() collapses the aliases into
// the one canonical InventoryItem shape.
type rawArticle struct {
	// code aliases, first non-empty wins
	CodigoArticulo flexString `json:"codigoarticulo"`
	IDArticulo     flexString `json:"ID_ARTICULO"`
	CodigoProducto flexString `json:"CODIGO_PRODUCTO"`
	Codigo         flexString `json:"codigo"`

	// description aliases
	Descripcion flexString `json:"descripcion"`
	Nombre      flexString `json:"NOMBRE"`

	// brand aliases
	Marca            *rawBrand  `json:"marca"`
	MarcaPlana       flexString `json:"MARCA"`
	DescripcionMarca flexString `json:"DESCRIPCION_MARCA"`

	// price aliases
	PrecioVenta1 flexNumber `json:"precioventa1"`
	PrecioVenta  flexNumber `json:"PRECIOVENTA"`
	PrecioVentaU flexNumber `json:"PRECIO_VENTA"`

	// category aliases
	Rubro            flexString `json:"descripcionrubro"`
	RubroU           flexString `json:"DESCRIPCIONRUBRO"`
	SuperRubro       flexString `json:"descripcionsuperrubro"`
	SuperRubroU      flexString `json:"DESCRIPCIONSUPERRUBRO"`
	GrupoSuperRubro  flexString `json:"descripciongruposuperrubro"`
	GrupoSuperRubroU flexString `json:"DESCRIPCIONGRUPOSUPERRUBRO"`
}

func firstNonEmpty(values ...flexString) string {
	for _, v := range values {
		if s := strings.TrimSpace(string(v)); s != "" {
			return s
		}
	}
	return ""
}

func firstNonZero(values ...flexNumber) float64 {
	for _, v := range values {
		if v != 0 {
			return float64(v)
		}
	}
	return 0
}

// normalize maps one raw Flexxus record into the canonical InventoryItem.
func (r rawArticle) normalize() domain.InventoryItem {
	brandName := ""
	brandCode := ""
	if r.Marca != nil {
		brandName = strings.TrimSpace(string(r.Marca.Descripcion))
		brandCode = strings.TrimSpace(string(r.Marca.CodigoMarca))
	}
	if brandName == "" {
		brandName = firstNonEmpty(r.MarcaPlana, r.DescripcionMarca)
	}

	return domain.InventoryItem{
		Code:            firstNonEmpty(r.CodigoArticulo, r.IDArticulo, r.CodigoProducto, r.Codigo),
		Description:     firstNonEmpty(r.Descripcion, r.Nombre),
		Brand:           domain.Brand{Name: brandName, Code: brandCode},
		BasePrice:       firstNonZero(r.PrecioVenta1, r.PrecioVenta, r.PrecioVentaU),
		Rubro:           firstNonEmpty(r.Rubro, r.RubroU),
		SuperRubro:      firstNonEmpty(r.SuperRubro, r.SuperRubroU),
		GroupSuperRubro: firstNonEmpty(r.GrupoSuperRubro, r.GrupoSuperRubroU),
	}
}

// normalizeAll converts a raw article list, dropping records with no usable code.
func normalizeAll(raw []rawArticle) []domain.InventoryItem {
	items := make([]domain.InventoryItem, 0, len(raw))
	for _, r := range raw {
		item := r.normalize()
		if item.Code == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
