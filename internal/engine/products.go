package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/Veraticus/digitalhaute/internal/budget"
	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/model"
)

// UnknownVendor is the vendor name recorded when the chosen vendor no
// longer exists.
const UnknownVendor = "Unknown Vendor"

// ProductInput is a new product as entered by the buyer.
type ProductInput struct {
	WholesalePrice *float64
	RetailPrice    *float64
	Quantity       *int
	Packs          *int
	Status         model.ProductStatus
	Name           string
	StyleNumber    string
	VendorID       string
	Category       string
	Subcategory    string
	Season         string
	Collection     string
	DeliveryDate   string
	Notes          string
	ImageURI       string
	Colors         []string
	SelectedColors []string
	Sizes          []string
}

func (in *ProductInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return common.NewValidationError("name", "Product name is required")
	case in.VendorID == "":
		return common.NewValidationError("vendorId", "Please select a vendor")
	case in.Category == "":
		return common.NewValidationError("category", "Please select a category")
	case in.WholesalePrice == nil || *in.WholesalePrice < 0:
		return common.NewValidationError("wholesalePrice", "Valid wholesale price is required")
	case (in.Quantity == nil || *in.Quantity < 0) && in.Packs == nil:
		return common.NewValidationError("quantity", "Valid quantity is required")
	case in.Packs != nil && *in.Packs < 0:
		return common.NewValidationError("packs", "Valid pack count is required")
	case in.Season == "":
		return common.NewValidationError("season", "Please select a season")
	case in.DeliveryDate == "":
		return common.NewValidationError("deliveryDate", "Delivery date is required")
	}
	if _, ok := budget.ParseDate(in.DeliveryDate, time.UTC); !ok {
		return common.NewValidationError("deliveryDate", "Delivery date must be YYYY-MM-DD")
	}
	if in.Status != "" && !in.Status.Valid() {
		return common.NewValidationError("status", fmt.Sprintf("Unknown status %q", in.Status))
	}
	return nil
}

// AddProduct validates in, creates the product and recomputes spend.
// Nothing is written when validation fails.
func (e *Engine) AddProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		Name:           strings.TrimSpace(in.Name),
		StyleNumber:    strings.TrimSpace(in.StyleNumber),
		VendorID:       in.VendorID,
		VendorName:     UnknownVendor,
		Category:       in.Category,
		Subcategory:    in.Subcategory,
		WholesalePrice: *in.WholesalePrice,
		Season:         in.Season,
		Collection:     in.Collection,
		DeliveryDate:   in.DeliveryDate,
		Notes:          strings.TrimSpace(in.Notes),
		Status:         in.Status,
		ImageURI:       in.ImageURI,
		Colors:         orEmpty(in.Colors),
		SelectedColors: in.SelectedColors,
		Sizes:          orEmpty(in.Sizes),
	}
	if p.StyleNumber == "" {
		p.StyleNumber = e.generateStyleNumber()
	}
	if p.Status == "" {
		p.Status = model.StatusOrdered
	}
	if in.RetailPrice != nil {
		retail := *in.RetailPrice
		p.RetailPrice = &retail
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}

	if vendor, ok := e.store.Vendors.GetByID(ctx, in.VendorID); ok {
		p.VendorName = vendor.Name
		if in.Packs != nil && vendor.PackRatio.Valid() {
			ratio := *vendor.PackRatio
			p.PackRatio = &ratio
			if len(p.Sizes) == 0 {
				p.Sizes = append([]string(nil), ratio.Sizes...)
			}
		}
	}
	if in.Packs != nil {
		if p.PackRatio == nil {
			// Packs mean nothing without a ratio; an entered quantity stands in.
			if in.Quantity == nil || *in.Quantity < 0 {
				return model.Product{}, errNoPackRatio
			}
		} else {
			packs := *in.Packs
			p.Packs = &packs
		}
	}
	p.SyncPackQuantity()

	created, err := e.store.Products.Create(ctx, p)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to save product: %w", err)
	}
	e.logger.Info("Added product", "id", created.ID, "style", created.StyleNumber, "vendor", created.VendorName)

	if err := e.RecomputeSpend(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// generateStyleNumber returns STY- followed by the current millisecond
// time in upper-case base 36.
func (e *Engine) generateStyleNumber() string {
	return "STY-" + strings.ToUpper(strconv.FormatInt(e.now().UnixMilli(), 36))
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// GetProduct returns the product with id.
func (e *Engine) GetProduct(ctx context.Context, id string) (model.Product, error) {
	p, ok := e.store.Products.GetByID(ctx, id)
	if !ok {
		return model.Product{}, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	return p, nil
}

var errNoPackRatio = common.NewValidationError("packs", "Vendor has no pack ratio; enter a quantity")

// UpdateProduct applies patch to the product with id. A vendor change
// refreshes the vendor name snapshot and, for products bought in packs, the
// pack ratio. Spend is recomputed when the patch touches a spend input.
func (e *Engine) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (model.Product, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return model.Product{}, common.NewValidationError("status", fmt.Sprintf("Unknown status %q", *patch.Status))
	}
	if patch.WholesalePrice != nil && *patch.WholesalePrice < 0 {
		return model.Product{}, common.NewValidationError("wholesalePrice", "Valid wholesale price is required")
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return model.Product{}, common.NewValidationError("quantity", "Valid quantity is required")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Product{}, common.NewValidationError("name", "Product name is required")
	}

	current, ok := e.store.Products.GetByID(ctx, id)
	if !ok {
		return model.Product{}, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}

	vendorChanged := patch.VendorID != nil && *patch.VendorID != current.VendorID
	var vendorRatio *model.PackRatio
	if patch.VendorID != nil {
		vendor, found := e.store.Vendors.GetByID(ctx, *patch.VendorID)
		if patch.VendorName == nil {
			name := UnknownVendor
			if found {
				name = vendor.Name
			}
			patch.VendorName = &name
		}
		if found && vendor.PackRatio.Valid() {
			ratio := *vendor.PackRatio
			vendorRatio = &ratio
		}
	}

	ratio := current.PackRatio
	switch {
	case patch.PackRatio != nil:
		ratio = patch.PackRatio
	case vendorChanged:
		ratio = vendorRatio
	}
	if patch.Packs != nil && !ratio.Valid() && patch.Quantity == nil {
		return model.Product{}, errNoPackRatio
	}

	updated, found, err := e.store.Products.Update(ctx, id, func(p *model.Product) {
		patch.Apply(p)
		if patch.PackRatio == nil && vendorChanged && p.Packs != nil {
			p.PackRatio = vendorRatio
		}
		if p.Packs != nil && !p.PackRatio.Valid() {
			p.Packs = nil
			p.PackRatio = nil
		}
		p.SyncPackQuantity()
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return model.Product{}, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}

	if patch.TouchesSpend() {
		if err := e.RecomputeSpend(ctx); err != nil {
			return updated, err
		}
	}
	return updated, nil
}

// ChangeStatus moves a product through the workflow. Receiving stamps the
// received date; any other status clears it.
func (e *Engine) ChangeStatus(ctx context.Context, id string, status model.ProductStatus) (model.Product, error) {
	received := ""
	if status == model.StatusReceived {
		received = model.FormatTimestamp(e.now())
	}
	return e.UpdateProduct(ctx, id, model.ProductPatch{
		Status:       &status,
		ReceivedDate: &received,
	})
}

// DeleteProduct removes a product and recomputes spend.
func (e *Engine) DeleteProduct(ctx context.Context, id string) error {
	found, err := e.store.Products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	return e.RecomputeSpend(ctx)
}

// ProductFilter narrows a product listing. Zero fields match everything.
type ProductFilter struct {
	Query    string `schema:"q"`
	Category string `schema:"category"`
	Season   string `schema:"season"`
	VendorID string `schema:"vendorId"`
	Status   string `schema:"status"`
}

// SearchProducts returns products whose name, vendor name or style number
// contains the query case-insensitively, narrowed by the other filters.
func (e *Engine) SearchProducts(ctx context.Context, filter ProductFilter) []model.Product {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(filter.Query))

	all := e.store.Products.GetAll(ctx)
	out := make([]model.Product, 0, len(all))
	for _, p := range all {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Season != "" && p.Season != filter.Season {
			continue
		}
		if filter.VendorID != "" && p.VendorID != filter.VendorID {
			continue
		}
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		if query != "" &&
			!strings.Contains(fold.String(p.Name), query) &&
			!strings.Contains(fold.String(p.VendorName), query) &&
			!strings.Contains(fold.String(p.StyleNumber), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}
