package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/digitalhaute/internal/model"
)

var defaults = model.DefaultSettings()

func TestHandle(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"ZM-4521", "zm-4521"},
		{"HF26 C/297", "hf26-c-297"},
		{"abc", "abc"},
		{"--X--", "-x-"},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.want, Handle(tt.style))
		})
	}
}

func TestSKU(t *testing.T) {
	assert.Equal(t, "ZM-4521-BLA-XS", SKU("ZM-4521", "Black", "XS"))
	assert.Equal(t, "ZM-4521-RE-S", SKU("ZM-4521", "Red", "S"))
	assert.Equal(t, "ZM-4521-CRÈ-0", SKU("ZM-4521", "crème", "0"))
}

func TestBuildRows_FlatQuantity(t *testing.T) {
	p := model.Product{
		Name:           "Pleated Midi",
		StyleNumber:    "ZM-4521",
		VendorName:     "Maison Lune",
		Category:       "Dresses",
		Season:         "Fall 2026",
		Notes:          "Lined",
		ImageURI:       "https://img.example/zm.jpg",
		WholesalePrice: 40,
		Quantity:       20,
		Colors:         []string{"Black", "Navy"},
		Sizes:          []string{"S", "M", "L"},
	}

	rows := BuildRows([]model.Product{p}, defaults)
	require.Len(t, rows, 6)

	first := rows[0]
	assert.Equal(t, "Pleated Midi", first.Title)
	assert.Equal(t, "Maison Lune", first.Vendor)
	assert.Equal(t, "Dresses", first.ProductCategory)
	assert.Equal(t, "Fall 2026, Dresses", first.Tags)
	assert.Equal(t, "TRUE", first.Published)
	assert.Equal(t, "1", first.ImagePosition)
	assert.Equal(t, "40.00", first.CostPerItem)

	for _, row := range rows[1:] {
		assert.Empty(t, row.Title)
		assert.Empty(t, row.Vendor)
		assert.Empty(t, row.ProductCategory)
		assert.Empty(t, row.ImageSrc)
		assert.Empty(t, row.CostPerItem)
		assert.Equal(t, "zm-4521", row.Handle)
	}

	for _, row := range rows {
		assert.Equal(t, 3, row.Quantity, "floor(20/6) drops the remainder")
		assert.Equal(t, "100.00", row.Price)
	}
	assert.Equal(t, "ZM-4521-NAV-L", rows[5].SKU)
}

func TestBuildRows_PackRatio(t *testing.T) {
	packs := 3
	ratio := &model.PackRatio{Sizes: []string{"S", "M", "L"}, Quantities: []int{1, 2, 3}}
	p := model.Product{
		StyleNumber: "P-1",
		Colors:      []string{"Ivory"},
		Sizes:       []string{"S", "M", "L", "XL"},
		Packs:       &packs,
		PackRatio:   ratio,
	}
	p.SyncPackQuantity()
	assert.Equal(t, 18, p.Quantity)

	rows := BuildRows([]model.Product{p}, defaults)
	require.Len(t, rows, 4)
	assert.Equal(t, 3, rows[0].Quantity)
	assert.Equal(t, 6, rows[1].Quantity)
	assert.Equal(t, 9, rows[2].Quantity)
	assert.Equal(t, 0, rows[3].Quantity, "sizes beyond the ratio get nothing")
}

func TestBuildRows_PriceAndColors(t *testing.T) {
	retail := 88.0
	zero := 0.0
	settings := model.AppSettings{MarkupMultiplier: 2.8, RoundingMode: model.RoundEven}

	explicit := model.Product{
		StyleNumber: "A", RetailPrice: &retail, WholesalePrice: 10,
		Colors: []string{"Red", "Blue", "Green"}, SelectedColors: []string{"Green"},
		Sizes: []string{"OS"},
	}
	zeroRetail := model.Product{
		StyleNumber: "B", RetailPrice: &zero, WholesalePrice: 14.97,
		Colors: []string{"Red"}, Sizes: []string{"OS"},
	}

	rows := BuildRows([]model.Product{explicit, zeroRetail}, settings)
	require.Len(t, rows, 2)
	assert.Equal(t, "Green", rows[0].Color)
	assert.Equal(t, "88.00", rows[0].Price)
	assert.Equal(t, "42.00", rows[1].Price)
	assert.Equal(t, "b", rows[1].Handle)
}

func TestBuildRows_NoVariants(t *testing.T) {
	products := []model.Product{
		{StyleNumber: "NC", Sizes: []string{"S"}, Quantity: 4},
		{StyleNumber: "NS", Colors: []string{"Red"}, Quantity: 4},
	}
	assert.Empty(t, BuildRows(products, defaults))
}

func TestWriteCSV_Quoting(t *testing.T) {
	p := model.Product{
		Name:        `The "Ava" Dress, Long`,
		StyleNumber: "AVA-1",
		Notes:       "Line one\nLine two",
		Colors:      []string{"Black"},
		Sizes:       []string{"M"},
		Quantity:    2,
	}

	var buf bytes.Buffer
	n, err := Write(&buf, []model.Product{p}, defaults)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, strings.Join(Header, ",")+"\n"))
	assert.Contains(t, out, `"The ""Ava"" Dress, Long"`)
	assert.Contains(t, out, "\"Line one\nLine two\"")

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[1], len(Header))
	assert.Equal(t, `The "Ava" Dress, Long`, records[1][0])
	assert.Equal(t, "2", records[1][15])
}

func TestWrite_NoProducts(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, nil, defaults)
	assert.ErrorIs(t, err, ErrNoProducts)
	assert.Zero(t, buf.Len())
}

func TestSelect_KeepsCollectionOrder(t *testing.T) {
	products := []model.Product{
		{Record: model.Record{ID: "a"}},
		{Record: model.Record{ID: "b"}},
		{Record: model.Record{ID: "c"}},
	}
	got := Select(products, []string{"c", "a", "missing"})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestFilename(t *testing.T) {
	now := time.UnixMilli(1760000000123)
	assert.Equal(t, "shopify-products-1760000000123.csv", Filename(now))
}
