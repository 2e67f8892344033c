package labelscan

import (
	"strconv"
	"strings"

	"github.com/Veraticus/digitalhaute/internal/model"
)

// Draft holds the product form as typed text, before validation.
type Draft struct {
	Name           string `json:"name"`
	StyleNumber    string `json:"styleNumber"`
	VendorID       string `json:"vendorId"`
	VendorName     string `json:"vendorName,omitempty"`
	Category       string `json:"category"`
	WholesalePrice string `json:"wholesalePrice"`
	RetailPrice    string `json:"retailPrice"`
	Colors         string `json:"colors"`
	Sizes          string `json:"sizes"`
	Season         string `json:"season"`
	Notes          string `json:"notes"`
}

// Catalog is the set of known values extracted fields are matched against.
type Catalog struct {
	Categories []string
	Seasons    []string
	Vendors    []model.Vendor
}

// Apply copies the usable parts of result onto draft. Free-text fields are
// copied when present. Category, season and vendor are set only when they
// match a known value; anything else is dropped.
func Apply(result Result, draft Draft, catalog Catalog) Draft {
	if v := text(result.StyleName); v != "" {
		draft.Name = v
	}
	if v := text(result.StyleNumber); v != "" {
		draft.StyleNumber = v
	}
	if result.WholesalePrice != nil && *result.WholesalePrice != 0 {
		draft.WholesalePrice = formatAmount(*result.WholesalePrice)
	}
	if result.RetailPrice != nil && *result.RetailPrice != 0 {
		draft.RetailPrice = formatAmount(*result.RetailPrice)
	}
	if len(result.Colors) > 0 {
		draft.Colors = strings.Join(result.Colors, ", ")
	}
	if len(result.Sizes) > 0 {
		draft.Sizes = strings.Join(result.Sizes, ", ")
	}
	if v := text(result.Notes); v != "" {
		draft.Notes = v
	}

	if category, ok := MatchCategory(text(result.Category), catalog.Categories); ok {
		draft.Category = category
	}
	if season, ok := MatchSeason(text(result.Season), catalog.Seasons); ok {
		draft.Season = season
	}
	if vendor, ok := MatchVendor(text(result.BrandName), catalog.Vendors); ok {
		draft.VendorID = vendor.ID
		draft.VendorName = vendor.Name
	}
	return draft
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatAmount(a Amount) string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}
