package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/digitalhaute/internal/budget"
	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/model"
)

// VendorInput is a new vendor as entered by the buyer. PackRatio and
// PackSizes are the raw "2-2-2" and "S, M, L" strings.
type VendorInput struct {
	Name         string
	ContactName  string
	Email        string
	Phone        string
	Website      string
	PaymentTerms string
	Notes        string
	PackRatio    string
	PackSizes    string
}

// AddVendor creates a vendor. An unparseable or mismatched pack ratio is
// dropped rather than rejected.
func (e *Engine) AddVendor(ctx context.Context, in VendorInput) (model.Vendor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Vendor{}, common.NewValidationError("name", "Vendor name is required")
	}

	v := model.Vendor{
		Name:         name,
		ContactName:  strings.TrimSpace(in.ContactName),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Website:      strings.TrimSpace(in.Website),
		PaymentTerms: strings.TrimSpace(in.PaymentTerms),
		Notes:        strings.TrimSpace(in.Notes),
		PackRatio:    model.ParsePackRatio(in.PackRatio, in.PackSizes),
	}
	if v.PackRatio == nil && strings.TrimSpace(in.PackRatio) != "" {
		e.logger.Warn("Ignoring pack ratio that does not match sizes",
			"ratio", in.PackRatio, "sizes", in.PackSizes)
	}

	created, err := e.store.Vendors.Create(ctx, v)
	if err != nil {
		return model.Vendor{}, fmt.Errorf("failed to save vendor: %w", err)
	}
	e.logger.Info("Added vendor", "id", created.ID, "name", created.Name)
	return created, nil
}

// UpdateVendor applies patch to the vendor with id.
func (e *Engine) UpdateVendor(ctx context.Context, id string, patch model.VendorPatch) (model.Vendor, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Vendor{}, common.NewValidationError("name", "Vendor name is required")
	}
	updated, found, err := e.store.Vendors.Update(ctx, id, func(v *model.Vendor) {
		patch.Apply(v)
	})
	if err != nil {
		return model.Vendor{}, fmt.Errorf("failed to update vendor: %w", err)
	}
	if !found {
		return model.Vendor{}, fmt.Errorf("vendor %s: %w", id, common.ErrNotFound)
	}
	return updated, nil
}

// VendorDetail is a vendor with the products bought from it.
type VendorDetail struct {
	Vendor   model.Vendor    `json:"vendor"`
	Products []model.Product `json:"products"`
	Spend    float64         `json:"totalSpend"`
}

// GetVendor returns the vendor with id, its products and committed spend.
func (e *Engine) GetVendor(ctx context.Context, id string) (VendorDetail, error) {
	v, ok := e.store.Vendors.GetByID(ctx, id)
	if !ok {
		return VendorDetail{}, fmt.Errorf("vendor %s: %w", id, common.ErrNotFound)
	}
	products := e.store.Products.ByVendor(ctx, id)
	return VendorDetail{
		Vendor:   v,
		Products: products,
		Spend:    budget.VendorSpend(products),
	}, nil
}

// ListVendors returns every vendor, newest first.
func (e *Engine) ListVendors(ctx context.Context) []model.Vendor {
	return e.store.Vendors.GetAll(ctx)
}

// DeleteVendor removes a vendor. Its products are kept along with their
// vendor name snapshot.
func (e *Engine) DeleteVendor(ctx context.Context, id string) error {
	found, err := e.store.Vendors.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	if !found {
		return fmt.Errorf("vendor %s: %w", id, common.ErrNotFound)
	}
	return nil
}
