package domain

// ColorVariant is one purchasable color of a motorcycle model, either
// admin-authored in an override or derived from inventory descriptions.
type ColorVariant struct {
	Color string  `json:"color"`
	Code  string  `json:"codigo"`
	Price float64 `json:"precio"`
	Image string  `json:"imagen"`
}

// OverrideRecord is admin-supplied enrichment layered over an inventory item.
// Every field is optional; nil means "not set" and the inventory value (or a
// default) applies. An override never removes inventory data.
type OverrideRecord struct {
	PrimaryImage     *string        `json:"imagenPrincipal,omitempty"`
	Thumbnails       []string       `json:"miniaturas,omitempty"`
	ColorVariants    []ColorVariant `json:"colores,omitempty"`
	ExtraDescription *string        `json:"descripcionExtra,omitempty"`
	ManualPrice      *float64       `json:"precioManual,omitempty"`
	SpecSheetURL     *string        `json:"fichaTecnica,omitempty"`
	Brand            *string        `json:"marca,omitempty"`
}

// Merge returns a copy of r with every set field of patch layered on top.
// Unset patch fields retain the prior value (shallow merge, never a replace).
func (r OverrideRecord) Merge(patch OverrideRecord) OverrideRecord {
	out := r
	if patch.PrimaryImage != nil {
		out.PrimaryImage = patch.PrimaryImage
	}
	if patch.Thumbnails != nil {
		out.Thumbnails = patch.Thumbnails
	}
	if patch.ColorVariants != nil {
		out.ColorVariants = patch.ColorVariants
	}
	if patch.ExtraDescription != nil {
		out.ExtraDescription = patch.ExtraDescription
	}
	if patch.ManualPrice != nil {
		out.ManualPrice = patch.ManualPrice
	}
	if patch.SpecSheetURL != nil {
		out.SpecSheetURL = patch.SpecSheetURL
	}
	if patch.Brand != nil {
		out.Brand = patch.Brand
	}
	return out
}
