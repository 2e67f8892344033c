package model

// Budget caps spend for a season, optionally narrowed to one category or
// one vendor. Spent is derived from the product collection and never
// entered by hand.
type Budget struct {
	Record
	Season   string  `json:"season"`
	Category string  `json:"category,omitempty"`
	VendorID string  `json:"vendorId,omitempty"`
	Amount   float64 `json:"amount"`
	Spent    float64 `json:"spent"`
}

// BudgetPatch is a partial budget update. Spent is not patchable.
type BudgetPatch struct {
	Season   *string
	Category *string
	VendorID *string
	Amount   *float64
}

// Apply merges the patch onto b.
func (u BudgetPatch) Apply(b *Budget) {
	setIf(&b.Season, u.Season)
	setIf(&b.Category, u.Category)
	setIf(&b.VendorID, u.VendorID)
	setIf(&b.Amount, u.Amount)
}

// Matches reports whether p falls inside the budget's season, category and
// vendor scope. Status is not considered.
func (b *Budget) Matches(p *Product) bool {
	if p.Season != b.Season {
		return false
	}
	if b.Category != "" && p.Category != b.Category {
		return false
	}
	if b.VendorID != "" && p.VendorID != b.VendorID {
		return false
	}
	return true
}
