package model

import (
	"fmt"
	"strings"
)

// ProductStatus tracks a product line through the buying cycle.
type ProductStatus string

const (
	// StatusMaybe marks a line the buyer is still considering.
	StatusMaybe ProductStatus = "maybe"
	// StatusOrdered marks a placed order.
	StatusOrdered ProductStatus = "ordered"
	// StatusShipped marks an order the vendor has shipped.
	StatusShipped ProductStatus = "shipped"
	// StatusDelivered marks an order the carrier has delivered.
	StatusDelivered ProductStatus = "delivered"
	// StatusReceived marks stock checked in by the store.
	StatusReceived ProductStatus = "received"
	// StatusCancelled marks an order that will not arrive.
	StatusCancelled ProductStatus = "cancelled"
)

// Statuses lists every status in workflow order.
var Statuses = []ProductStatus{
	StatusMaybe,
	StatusOrdered,
	StatusShipped,
	StatusDelivered,
	StatusReceived,
	StatusCancelled,
}

var statusLabels = map[ProductStatus]string{
	StatusMaybe:     "Maybe",
	StatusOrdered:   "Ordered",
	StatusShipped:   "Shipped",
	StatusDelivered: "Delivered",
	StatusReceived:  "Received",
	StatusCancelled: "Cancelled",
}

// Label returns the display label for the status.
func (s ProductStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s ProductStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// CountsTowardSpend reports whether a product in this status is committed
// spend. Cancelled lines and lines still marked maybe are not.
func (s ProductStatus) CountsTowardSpend() bool {
	return s != StatusCancelled && s != StatusMaybe
}

// ParseStatus accepts a status value or its label, case-insensitively.
func ParseStatus(s string) (ProductStatus, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, status := range Statuses {
		if string(status) == needle {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown product status %q", s)
}

// Product is one purchasable catalog line.
type Product struct {
	Record
	RetailPrice    *float64      `json:"retailPrice,omitempty"`
	Packs          *int          `json:"packs,omitempty"`
	PackRatio      *PackRatio    `json:"packRatio,omitempty"`
	Name           string        `json:"name"`
	StyleNumber    string        `json:"styleNumber"`
	VendorID       string        `json:"vendorId"`
	VendorName     string        `json:"vendorName"`
	Category       string        `json:"category"`
	Subcategory    string        `json:"subcategory,omitempty"`
	DeliveryDate   string        `json:"deliveryDate"`
	ReceivedDate   string        `json:"receivedDate,omitempty"`
	Season         string        `json:"season"`
	Collection     string        `json:"collection,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	Status         ProductStatus `json:"status"`
	ImageURI       string        `json:"imageUri,omitempty"`
	Colors         []string      `json:"colors"`
	SelectedColors []string      `json:"selectedColors,omitempty"`
	Sizes          []string      `json:"sizes"`
	WholesalePrice float64       `json:"wholesalePrice"`
	Quantity       int           `json:"quantity"`
}

// PackQuantity returns packs × units-per-pack when the product carries both
// a pack count and a valid pack ratio.
func (p *Product) PackQuantity() (int, bool) {
	if p.Packs == nil || !p.PackRatio.Valid() {
		return 0, false
	}
	return *p.Packs * p.PackRatio.UnitsPerPack(), true
}

// SyncPackQuantity stores the pack-derived quantity into Quantity so the
// two cannot diverge. Products without packs keep their entered quantity.
func (p *Product) SyncPackQuantity() {
	if q, ok := p.PackQuantity(); ok {
		p.Quantity = q
	}
}

// WorkingColors returns the ordered colour subset when one was chosen,
// otherwise every offered colour.
func (p *Product) WorkingColors() []string {
	if len(p.SelectedColors) > 0 {
		return p.SelectedColors
	}
	return p.Colors
}

// ExplicitRetail returns the entered retail price. A zero price counts as
// not entered.
func (p *Product) ExplicitRetail() (float64, bool) {
	if p.RetailPrice == nil || *p.RetailPrice <= 0 {
		return 0, false
	}
	return *p.RetailPrice, true
}

// ProductPatch is a partial product update. Nil fields are left alone.
type ProductPatch struct {
	Name           *string
	StyleNumber    *string
	VendorID       *string
	VendorName     *string
	Category       *string
	Subcategory    *string
	WholesalePrice *float64
	RetailPrice    *float64
	Quantity       *int
	Packs          *int
	PackRatio      *PackRatio
	Colors         *[]string
	SelectedColors *[]string
	Sizes          *[]string
	DeliveryDate   *string
	ReceivedDate   *string
	Season         *string
	Collection     *string
	Notes          *string
	Status         *ProductStatus
	ImageURI       *string
}

// Apply merges the patch onto p.
func (u ProductPatch) Apply(p *Product) {
	setIf(&p.Name, u.Name)
	setIf(&p.StyleNumber, u.StyleNumber)
	setIf(&p.VendorID, u.VendorID)
	setIf(&p.VendorName, u.VendorName)
	setIf(&p.Category, u.Category)
	setIf(&p.Subcategory, u.Subcategory)
	setIf(&p.WholesalePrice, u.WholesalePrice)
	setIf(&p.Quantity, u.Quantity)
	setIf(&p.DeliveryDate, u.DeliveryDate)
	setIf(&p.ReceivedDate, u.ReceivedDate)
	setIf(&p.Season, u.Season)
	setIf(&p.Collection, u.Collection)
	setIf(&p.Notes, u.Notes)
	setIf(&p.Status, u.Status)
	setIf(&p.ImageURI, u.ImageURI)
	setIf(&p.Colors, u.Colors)
	setIf(&p.SelectedColors, u.SelectedColors)
	setIf(&p.Sizes, u.Sizes)
	if u.RetailPrice != nil {
		v := *u.RetailPrice
		p.RetailPrice = &v
	}
	if u.Packs != nil {
		v := *u.Packs
		p.Packs = &v
	}
	if u.PackRatio != nil {
		ratio := *u.PackRatio
		p.PackRatio = &ratio
	}
}

// TouchesSpend reports whether applying the patch can change any budget's
// spend.
func (u ProductPatch) TouchesSpend() bool {
	return u.Season != nil || u.Category != nil || u.VendorID != nil ||
		u.Status != nil || u.WholesalePrice != nil || u.Quantity != nil ||
		u.Packs != nil || u.PackRatio != nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
