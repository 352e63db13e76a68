package model

// SelectionState is the per-product user intent on the listing page: which
// option tab is active and whether the product is ticked. One entry exists
// per loaded product, created at catalog load time.
//
// Invariant: SelectedOptionIndex is always a valid index into the
// corresponding product's options.
type SelectionState struct {
	SelectedOptionIndex int  `json:"selected_option_index"`
	IsSelected          bool `json:"is_selected"`
}
