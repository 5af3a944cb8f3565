package domain

// Brand is the nested brand record carried by every inventory item.
type Brand struct {
	Name string `json:"descripcion"`
	Code string `json:"codigomarca,omitempty"`
}

// InventoryItem is the canonical shape of one Flexxus article after field
// normalization. Items are immutable once fetched; a refresh replaces the
// whole snapshot, never individual fields.
//
// JSON tags match the upstream "articulos" keys so the disk snapshot
// round-trips byte-compatible with what Flexxus returns.
type InventoryItem struct {
	Code            string  `json:"codigoarticulo"`
	Description     string  `json:"descripcion"`
	Brand           Brand   `json:"marca"`
	BasePrice       float64 `json:"precioventa1"`
	Rubro           string  `json:"descripcionrubro,omitempty"`
	SuperRubro      string  `json:"descripcionsuperrubro,omitempty"`
	GroupSuperRubro string  `json:"descripciongruposuperrubro,omitempty"`
}

// InventorySnapshot is a timestamped, complete copy of the inventory list.
// An empty Items slice is a valid-but-degraded state: the catalog serves
// what it has rather than failing.
type InventorySnapshot struct {
	// FetchedAt is epoch milliseconds; 0 means "never fetched".
	FetchedAt int64           `json:"timestamp"`
	Items     []InventoryItem `json:"articulos"`
}

// IsEmpty reports whether the snapshot carries no items.
func (s InventorySnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}
