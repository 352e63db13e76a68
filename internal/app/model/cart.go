package model

// CartItem is a denormalized snapshot of a selected product and its chosen
// option, taken at the moment the cart is persisted. It carries no live
// reference: later catalog or selection changes do not affect it.
//
// Qty carries the chosen option's label ("1 kg", "700 ml"). Pkg is always
// the constant "Standard", kept only so the order email template's fields
// stay filled.
type CartItem struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Pkg   string  `json:"pkg"`
	Qty   string  `json:"qty"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// PkgStandard is the placeholder packaging value written into every
// snapshot.
const PkgStandard = "Standard"

// Details renders the item variant for display. The generic packaging
// value collapses to the bare quantity label.
func (i CartItem) Details() string {
	if i.Pkg == PkgStandard {
		return i.Qty
	}
	return i.Qty + " (" + i.Pkg + ")"
}

// CartTotal sums the item prices of a persisted cart.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total
}
