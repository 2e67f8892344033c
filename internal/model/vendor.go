package model

// Vendor is a wholesale brand or showroom the store buys from.
type Vendor struct {
	Record
	PackRatio    *PackRatio `json:"packRatio,omitempty"`
	Name         string     `json:"name"`
	ContactName  string     `json:"contactName,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Website      string     `json:"website,omitempty"`
	PaymentTerms string     `json:"paymentTerms,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// VendorPatch is a partial vendor update.
type VendorPatch struct {
	PackRatio    *PackRatio
	Name         *string
	ContactName  *string
	Email        *string
	Phone        *string
	Website      *string
	PaymentTerms *string
	Notes        *string
}

// Apply merges the patch onto v.
func (u VendorPatch) Apply(v *Vendor) {
	setIf(&v.Name, u.Name)
	setIf(&v.ContactName, u.ContactName)
	setIf(&v.Email, u.Email)
	setIf(&v.Phone, u.Phone)
	setIf(&v.Website, u.Website)
	setIf(&v.PaymentTerms, u.PaymentTerms)
	setIf(&v.Notes, u.Notes)
	if u.PackRatio != nil {
		ratio := *u.PackRatio
		v.PackRatio = &ratio
	}
}
