package model

// Product is one entry of the static catalog resource. Products are
// immutable once loaded; the catalog JSON is the source of truth.
type Product struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Image   string   `json:"image"`
	Options []Option `json:"options"`
}

// Option is a purchasable quantity tier of a product. Option order is
// meaningful: selections address options by index.
type Option struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}
