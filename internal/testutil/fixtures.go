package testutil

import (
	"github.com/Veraticus/digitalhaute/internal/model"
)

// Common catalog values used across tests.
const (
	SeasonSpring = "Spring 2026"
	SeasonFall   = "Fall 2026"
)

// ProductBuilder builds products fluently.
//
// Example:
//
//	p := testutil.NewProduct("Silk Slip Dress").
//		WithVendor(v).
//		WithPrice(42).
//		WithQuantity(12).
//		Build()
type ProductBuilder struct {
	product model.Product
}

// NewProduct starts an ordered Dresses product for SeasonSpring.
func NewProduct(name string) *ProductBuilder {
	return &ProductBuilder{product: model.Product{
		Name:         name,
		StyleNumber:  "STY-" + name,
		Category:     "Dresses",
		Season:       SeasonSpring,
		DeliveryDate: "2026-04-01",
		Status:       model.StatusOrdered,
		Colors:       []string{"Black"},
		Sizes:        []string{"S", "M", "L"},
	}}
}

// WithVendor links the product to v.
func (b *ProductBuilder) WithVendor(v model.Vendor) *ProductBuilder {
	b.product.VendorID = v.ID
	b.product.VendorName = v.Name
	return b
}

// WithPrice sets the wholesale price.
func (b *ProductBuilder) WithPrice(wholesale float64) *ProductBuilder {
	b.product.WholesalePrice = wholesale
	return b
}

// WithRetail sets an explicit retail price.
func (b *ProductBuilder) WithRetail(retail float64) *ProductBuilder {
	b.product.RetailPrice = &retail
	return b
}

// WithQuantity sets the unit quantity.
func (b *ProductBuilder) WithQuantity(q int) *ProductBuilder {
	b.product.Quantity = q
	return b
}

// WithPacks sets a pack count and ratio and syncs the quantity.
func (b *ProductBuilder) WithPacks(packs int, ratio *model.PackRatio) *ProductBuilder {
	b.product.Packs = &packs
	b.product.PackRatio = ratio
	b.product.SyncPackQuantity()
	return b
}

// WithStatus sets the workflow status.
func (b *ProductBuilder) WithStatus(s model.ProductStatus) *ProductBuilder {
	b.product.Status = s
	return b
}

// WithSeason sets the season.
func (b *ProductBuilder) WithSeason(season string) *ProductBuilder {
	b.product.Season = season
	return b
}

// WithCategory sets the category.
func (b *ProductBuilder) WithCategory(category string) *ProductBuilder {
	b.product.Category = category
	return b
}

// WithStyleNumber sets the style number.
func (b *ProductBuilder) WithStyleNumber(style string) *ProductBuilder {
	b.product.StyleNumber = style
	return b
}

// WithColors sets the offered colours.
func (b *ProductBuilder) WithColors(colors ...string) *ProductBuilder {
	b.product.Colors = colors
	return b
}

// WithSizes sets the sizes.
func (b *ProductBuilder) WithSizes(sizes ...string) *ProductBuilder {
	b.product.Sizes = sizes
	return b
}

// WithDelivery sets the delivery date (YYYY-MM-DD).
func (b *ProductBuilder) WithDelivery(date string) *ProductBuilder {
	b.product.DeliveryDate = date
	return b
}

// Build returns the product.
func (b *ProductBuilder) Build() model.Product {
	return b.product
}

// Vendor returns a vendor fixture.
func Vendor(name string) model.Vendor {
	return model.Vendor{Name: name, Email: "orders@example.test", PaymentTerms: "Net 30"}
}

// Budget returns a season budget fixture.
func Budget(season string, amount float64) model.Budget {
	return model.Budget{Season: season, Amount: amount}
}
