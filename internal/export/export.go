// Package export expands products into Shopify product-import rows.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/pricing"
)

// ErrNoProducts is returned when an export is requested for an empty
// selection. Callers treat it as nothing to do.
var ErrNoProducts = errors.New("no products selected for export")

// Header is the Shopify product CSV header, in column order.
var Header = []string{
	"Title",
	"Handle",
	"Body (HTML)",
	"Vendor",
	"Product Category",
	"Type",
	"Tags",
	"Published",
	"Option1 Name",
	"Option1 Value",
	"Option2 Name",
	"Option2 Value",
	"Variant SKU",
	"Variant Grams",
	"Variant Inventory Tracker",
	"Variant Inventory Qty",
	"Variant Inventory Policy",
	"Variant Fulfillment Service",
	"Variant Price",
	"Variant Compare At Price",
	"Variant Requires Shipping",
	"Variant Taxable",
	"Image Src",
	"Image Position",
	"Cost per item",
}

// Row is one variant line. Parent columns are blank on every row but the
// first of each product.
type Row struct {
	Title           string
	Handle          string
	Body            string
	Vendor          string
	ProductCategory string
	Type            string
	Tags            string
	Published       string
	Color           string
	Size            string
	SKU             string
	Price           string
	ImageSrc        string
	ImagePosition   string
	CostPerItem     string
	Quantity        int
}

// Values returns the row in Header order.
func (r Row) Values() []string {
	return []string{
		r.Title,
		r.Handle,
		r.Body,
		r.Vendor,
		r.ProductCategory,
		r.Type,
		r.Tags,
		r.Published,
		"Color",
		r.Color,
		"Size",
		r.Size,
		r.SKU,
		"0",
		"shopify",
		strconv.Itoa(r.Quantity),
		"deny",
		"manual",
		r.Price,
		"",
		"TRUE",
		"TRUE",
		r.ImageSrc,
		r.ImagePosition,
		r.CostPerItem,
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Handle turns a style number into a URL-safe handle: lowercased, with each
// run of other characters collapsed to one hyphen.
func Handle(styleNumber string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(styleNumber), "-")
}

// SKU builds a variant SKU from the style number and the first letters of
// the colour and size.
func SKU(styleNumber, color, size string) string {
	return fmt.Sprintf("%s-%s-%s", styleNumber, prefix(color, 3), prefix(size, 2))
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return strings.ToUpper(string(runes))
}

// Select returns the products whose id is in ids, keeping collection order.
func Select(products []model.Product, ids []string) []model.Product {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]model.Product, 0, len(ids))
	for _, p := range products {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// BuildRows expands each product into one row per colour and size.
//
// Per-size quantities come from the pack ratio when the product has packs.
// Otherwise the product quantity is split evenly with floor division, so
// any remainder is dropped from the export.
func BuildRows(products []model.Product, settings model.AppSettings) []Row {
	var rows []Row
	for i := range products {
		rows = append(rows, productRows(&products[i], settings)...)
	}
	return rows
}

func productRows(p *model.Product, settings model.AppSettings) []Row {
	colors := p.WorkingColors()
	sizes := p.Sizes
	if len(colors) == 0 || len(sizes) == 0 {
		return nil
	}

	retail, ok := p.ExplicitRetail()
	if !ok {
		retail = pricing.Retail(p.WholesalePrice, settings)
	}
	handle := Handle(p.StyleNumber)
	price := money(retail)
	usePacks := p.Packs != nil && p.PackRatio != nil

	rows := make([]Row, 0, len(colors)*len(sizes))
	for _, color := range colors {
		for sizeIdx, size := range sizes {
			qty := p.Quantity / (len(colors) * len(sizes))
			if usePacks {
				qty = p.PackRatio.QuantityAt(sizeIdx) * *p.Packs
			}

			row := Row{
				Handle:   handle,
				Color:    color,
				Size:     size,
				SKU:      SKU(p.StyleNumber, color, size),
				Quantity: qty,
				Price:    price,
			}
			if len(rows) == 0 {
				row.Title = p.Name
				row.Body = p.Notes
				row.Vendor = p.VendorName
				row.ProductCategory = p.Category
				row.Type = p.Category
				row.Tags = p.Season + ", " + p.Category
				row.Published = "TRUE"
				row.ImageSrc = p.ImageURI
				row.ImagePosition = "1"
				row.CostPerItem = money(p.WholesalePrice)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// WriteCSV writes the header and rows. Fields containing a comma, quote or
// line break are quoted with inner quotes doubled.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", row.SKU, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Write builds and writes the CSV for products, returning the number of
// variant rows written.
func Write(w io.Writer, products []model.Product, settings model.AppSettings) (int, error) {
	if len(products) == 0 {
		return 0, ErrNoProducts
	}
	rows := BuildRows(products, settings)
	if err := WriteCSV(w, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Filename returns the export file name for a run started at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("shopify-products-%d.csv", now.UnixMilli())
}
