package engine

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/export"
	"github.com/Veraticus/digitalhaute/internal/images"
	"github.com/Veraticus/digitalhaute/internal/labelscan"
	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/sheets"
	"github.com/Veraticus/digitalhaute/internal/shopify"
	"github.com/Veraticus/digitalhaute/internal/testutil"
)

var fixedNow = time.Date(2026, time.March, 5, 15, 30, 0, 0, time.UTC)

type fakeScanner struct {
	result labelscan.Result
	calls  int
}

func (f *fakeScanner) Scan(_ context.Context, _ string) labelscan.Result {
	f.calls++
	return f.result
}

type fakeShopify struct {
	statusErr error
	requests  []shopify.ExportRequest
	status    shopify.Status
}

func (f *fakeShopify) Status(_ context.Context) (shopify.Status, error) {
	return f.status, f.statusErr
}

func (f *fakeShopify) Export(_ context.Context, req shopify.ExportRequest) (shopify.ExportResult, error) {
	f.requests = append(f.requests, req)
	return shopify.ExportResult{Success: true, Count: len(req.ProductIDs)}, nil
}

type fakeHost struct {
	destroyed []string
	uploads   int
}

func (f *fakeHost) Upload(_ context.Context, _ any, publicID string) (images.Image, error) {
	f.uploads++
	id := "digitalhaute/products/" + publicID + "-" + strconv.Itoa(f.uploads)
	return images.Image{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/" + id + ".jpg",
		PublicID: id,
	}, nil
}

func (f *fakeHost) Destroy(_ context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *testutil.TestStore) {
	t.Helper()
	ts := testutil.SetupTestStore(t)
	all := append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return New(ts.Store, all...), ts
}

func ptr[T any](v T) *T {
	return &v
}

func validInput(vendorID string) ProductInput {
	return ProductInput{
		Name:           "  Silk Slip Dress ",
		VendorID:       vendorID,
		Category:       "Dresses",
		WholesalePrice: ptr(40.0),
		Quantity:       ptr(10),
		Season:         testutil.SeasonSpring,
		DeliveryDate:   "2026-04-01",
		Colors:         []string{"Black", "Ivory"},
		Sizes:          []string{"S", "M"},
	}
}

func TestAddProduct_Validation(t *testing.T) {
	tests := []struct {
		modify  func(*ProductInput)
		name    string
		field   string
		message string
	}{
		{name: "name", modify: func(in *ProductInput) { in.Name = " " }, field: "name", message: "Product name is required"},
		{name: "vendor", modify: func(in *ProductInput) { in.VendorID = "" }, field: "vendorId", message: "Please select a vendor"},
		{name: "category", modify: func(in *ProductInput) { in.Category = "" }, field: "category", message: "Please select a category"},
		{name: "price missing", modify: func(in *ProductInput) { in.WholesalePrice = nil }, field: "wholesalePrice", message: "Valid wholesale price is required"},
		{name: "price negative", modify: func(in *ProductInput) { in.WholesalePrice = ptr(-1.0) }, field: "wholesalePrice", message: "Valid wholesale price is required"},
		{name: "quantity", modify: func(in *ProductInput) { in.Quantity = nil }, field: "quantity", message: "Valid quantity is required"},
		{name: "season", modify: func(in *ProductInput) { in.Season = "" }, field: "season", message: "Please select a season"},
		{name: "delivery", modify: func(in *ProductInput) { in.DeliveryDate = "" }, field: "deliveryDate", message: "Delivery date is required"},
		{name: "delivery format", modify: func(in *ProductInput) { in.DeliveryDate = "next week" }, field: "deliveryDate", message: "Delivery date must be YYYY-MM-DD"},
		{name: "status", modify: func(in *ProductInput) { in.Status = "lost" }, field: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ts := newTestEngine(t)
			in := validInput("vendor-1")
			tt.modify(&in)

			_, err := e.AddProduct(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidInput)

			var verr *common.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, verr.Message)
			}

			_, found, err := ts.KV.Get(context.Background(), "@digitalhaute/products")
			require.NoError(t, err)
			assert.False(t, found, "nothing is written when validation fails")
		})
	}
}

func TestAddProduct_Defaults(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)
	v := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))

	p, err := e.AddProduct(ctx, validInput(v.ID))
	require.NoError(t, err)

	assert.Equal(t, "Silk Slip Dress", p.Name)
	assert.Equal(t, "Maison Lune", p.VendorName)
	assert.Equal(t, model.StatusOrdered, p.Status)
	assert.Equal(t, 10, p.Quantity)
	assert.Equal(t, "STY-"+strings.ToUpper(strconv.FormatInt(fixedNow.UnixMilli(), 36)), p.StyleNumber)
	assert.NotEmpty(t, p.ID)
}

func TestAddProduct_UnknownVendor(t *testing.T) {
	e, _ := newTestEngine(t)

	p, err := e.AddProduct(context.Background(), validInput("gone"))
	require.NoError(t, err)
	assert.Equal(t, UnknownVendor, p.VendorName)
}

func TestAddProduct_PacksUseVendorRatio(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)
	v, err := e.AddVendor(ctx, VendorInput{Name: "Prepack Co", PackRatio: "2-2-2", PackSizes: "S, M, L"})
	require.NoError(t, err)

	in := validInput(v.ID)
	in.Quantity = nil
	in.Sizes = nil
	in.Packs = ptr(3)

	p, err := e.AddProduct(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 18, p.Quantity)
	assert.Equal(t, []string{"S", "M", "L"}, p.Sizes)
	require.NotNil(t, p.PackRatio)
	assert.Equal(t, "2-2-2", p.PackRatio.String())
}

func TestAddProduct_PacksWithoutRatio(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)
	v := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))
	b := ts.MustCreateBudget(testutil.Budget(testutil.SeasonSpring, 1000))

	in := validInput(v.ID)
	in.Quantity = nil
	in.Packs = ptr(3)
	_, err := e.AddProduct(ctx, in)
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Equal(t, "Vendor has no pack ratio; enter a quantity", err.Error())
	assert.Empty(t, ts.Products.GetAll(ctx))

	in.Quantity = ptr(5)
	p, err := e.AddProduct(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
	assert.Nil(t, p.Packs)
	assert.Nil(t, p.PackRatio)

	got, ok := ts.Budgets.GetByID(ctx, b.ID)
	require.True(t, ok)
	assert.InDelta(t, 200.0, got.Spent, 0.001)
}

func TestAddProduct_RecomputesSpend(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)
	v := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))
	b := ts.MustCreateBudget(testutil.Budget(testutil.SeasonSpring, 1000))
	other := ts.MustCreateBudget(testutil.Budget(testutil.SeasonFall, 1000))

	_, err := e.AddProduct(ctx, validInput(v.ID))
	require.NoError(t, err)

	got, ok := ts.Budgets.GetByID(ctx, b.ID)
	require.True(t, ok)
	assert.InDelta(t, 400.0, got.Spent, 0.001)

	got, ok = ts.Budgets.GetByID(ctx, other.ID)
	require.True(t, ok)
	assert.InDelta(t, 0.0, got.Spent, 0.001)
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)
	v := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))
	b := ts.MustCreateBudget(testutil.Budget(testutil.SeasonSpring, 1000))
	p, err := e.AddProduct(ctx, validInput(v.ID))
	require.NoError(t, err)

	received, err := e.ChangeStatus(ctx, p.ID, model.StatusReceived)
	require.NoError(t, err)
	assert.Equal(t, model.FormatTimestamp(fixedNow), received.ReceivedDate)

	cancelled, err := e.ChangeStatus(ctx, p.ID, model.StatusCancelled)
	require.NoError(t, err)
	assert.Empty(t, cancelled.ReceivedDate)

	got, _ := ts.Budgets.GetByID(ctx, b.ID)
	assert.InDelta(t, 0.0, got.Spent, 0.001)

	_, err = e.ChangeStatus(ctx, "missing", model.StatusShipped)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = e.ChangeStatus(ctx, p.ID, "lost")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUpdateProduct_RefreshesVendorName(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)
	a := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))
	b := ts.MustCreateVendor(testutil.Vendor("Atelier Nord"))
	p, err := e.AddProduct(ctx, validInput(a.ID))
	require.NoError(t, err)

	updated, err := e.UpdateProduct(ctx, p.ID, model.ProductPatch{VendorID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, "Atelier Nord", updated.VendorName)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
}

func TestUpdateProduct_VendorChangeRefreshesPackRatio(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)
	threes, err := e.AddVendor(ctx, VendorInput{Name: "Prepack Co", PackRatio: "1-1-1", PackSizes: "S, M, L"})
	require.NoError(t, err)
	sixes, err := e.AddVendor(ctx, VendorInput{Name: "Bulk Knits", PackRatio: "2-2-2", PackSizes: "S, M, L"})
	require.NoError(t, err)
	plain := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))

	in := validInput(threes.ID)
	in.Quantity = nil
	in.Packs = ptr(2)
	p, err := e.AddProduct(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 6, p.Quantity)

	moved, err := e.UpdateProduct(ctx, p.ID, model.ProductPatch{VendorID: &sixes.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.PackRatio)
	assert.Equal(t, "2-2-2", moved.PackRatio.String())
	assert.Equal(t, 12, moved.Quantity)

	cleared, err := e.UpdateProduct(ctx, p.ID, model.ProductPatch{VendorID: &plain.ID})
	require.NoError(t, err)
	assert.Nil(t, cleared.Packs)
	assert.Nil(t, cleared.PackRatio)
	assert.Equal(t, 12, cleared.Quantity)

	_, err = e.UpdateProduct(ctx, p.ID, model.ProductPatch{Packs: ptr(4)})
	require.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = e.UpdateProduct(ctx, "missing", model.ProductPatch{VendorID: &sixes.ID})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)
	v := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))
	b := ts.MustCreateBudget(testutil.Budget(testutil.SeasonSpring, 1000))
	p, err := e.AddProduct(ctx, validInput(v.ID))
	require.NoError(t, err)

	require.NoError(t, e.DeleteProduct(ctx, p.ID))
	got, _ := ts.Budgets.GetByID(ctx, b.ID)
	assert.InDelta(t, 0.0, got.Spent, 0.001)

	assert.ErrorIs(t, e.DeleteProduct(ctx, p.ID), common.ErrNotFound)
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)
	lune := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))
	nord := ts.MustCreateVendor(testutil.Vendor("Atelier Nord"))
	ts.MustCreateProduct(testutil.NewProduct("Slip Dress").WithVendor(lune).WithStyleNumber("ML-100").Build())
	ts.MustCreateProduct(testutil.NewProduct("Wool Coat").WithVendor(nord).WithCategory("Outerwear").WithStyleNumber("AN-7").Build())

	assert.Len(t, e.SearchProducts(ctx, ProductFilter{}), 2)

	byVendor := e.SearchProducts(ctx, ProductFilter{Query: "LUNE"})
	require.Len(t, byVendor, 1)
	assert.Equal(t, "Slip Dress", byVendor[0].Name)

	byStyle := e.SearchProducts(ctx, ProductFilter{Query: "an-7"})
	require.Len(t, byStyle, 1)
	assert.Equal(t, "Wool Coat", byStyle[0].Name)

	assert.Empty(t, e.SearchProducts(ctx, ProductFilter{Query: "coat", Category: "Dresses"}))
}

func TestVendors(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)

	_, err := e.AddVendor(ctx, VendorInput{Name: "  "})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	v, err := e.AddVendor(ctx, VendorInput{Name: "Maison Lune", PackRatio: "2-2", PackSizes: "S, M, L"})
	require.NoError(t, err)
	assert.Nil(t, v.PackRatio, "mismatched ratio is dropped")

	ts.MustCreateProduct(testutil.NewProduct("Slip Dress").WithVendor(v).WithPrice(40).WithQuantity(10).Build())
	ts.MustCreateProduct(testutil.NewProduct("Maybe Top").WithVendor(v).WithPrice(20).WithQuantity(5).WithStatus(model.StatusMaybe).Build())

	detail, err := e.GetVendor(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Products, 2)
	assert.InDelta(t, 400.0, detail.Spend, 0.001)

	require.NoError(t, e.DeleteVendor(ctx, v.ID))
	assert.Len(t, ts.Products.GetAll(ctx), 2, "products outlive their vendor")
	assert.Empty(t, e.ListVendors(ctx))

	_, err = e.GetVendor(ctx, v.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBudgets(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)

	_, err := e.AddBudget(ctx, BudgetInput{Amount: ptr(100.0)})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = e.AddBudget(ctx, BudgetInput{Season: testutil.SeasonSpring, Amount: ptr(-1.0)})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	ts.MustCreateProduct(testutil.NewProduct("Slip Dress").WithPrice(40).WithQuantity(20).Build())

	b, err := e.AddBudget(ctx, BudgetInput{Season: testutil.SeasonSpring, Amount: ptr(1000.0)})
	require.NoError(t, err)
	assert.InDelta(t, 800.0, b.Spent, 0.001)

	summaries := e.ListBudgets(ctx)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 200.0, summaries[0].Remaining, 0.001)
	assert.InDelta(t, 80.0, summaries[0].Utilization, 0.001)

	require.NoError(t, e.DeleteBudget(ctx, b.ID))
	assert.ErrorIs(t, e.DeleteBudget(ctx, b.ID), common.ErrNotFound)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	assert.Equal(t, model.DefaultSettings(), e.Settings(ctx))

	_, err := e.UpdateSettings(ctx, SettingsPatch{MarkupMultiplier: ptr(0.0)})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = e.UpdateSettings(ctx, SettingsPatch{RoundingMode: ptr(model.RoundingMode("sideways"))})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	saved, err := e.UpdateSettings(ctx, SettingsPatch{MarkupMultiplier: ptr(3.0)})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, saved.MarkupMultiplier, 0.0001)
	assert.InDelta(t, 120.0, e.PreviewRetail(ctx, 40), 0.001)

	_, err = e.UpdateSettings(ctx, SettingsPatch{RoundingMode: ptr(model.RoundEven)})
	require.NoError(t, err)
	assert.InDelta(t, 38.0, e.PreviewRetail(ctx, 12.1), 0.001)
}

func TestDashboard(t *testing.T) {
	e, ts := newTestEngine(t)
	v := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))
	ts.MustCreateProduct(testutil.NewProduct("Past").WithVendor(v).WithDelivery("2026-02-01").Build())
	ts.MustCreateProduct(testutil.NewProduct("Soon").WithVendor(v).WithDelivery("2026-03-20").Build())
	ts.MustCreateProduct(testutil.NewProduct("Later").WithVendor(v).WithDelivery("2026-05-01").Build())
	ts.MustCreateProduct(testutil.NewProduct("Gone").WithVendor(v).WithDelivery("2026-03-06").WithStatus(model.StatusCancelled).Build())
	ts.MustCreateBudget(testutil.Budget(testutil.SeasonSpring, 500))

	stats := e.Dashboard(context.Background())
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalVendors)
	assert.Equal(t, "2026-03-20", stats.NextDeliveryDate)
	assert.InDelta(t, 500.0, stats.TotalBudget, 0.001)
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)

	var buf bytes.Buffer
	_, err := e.ExportCSV(ctx, &buf, nil)
	assert.True(t, IsNothingToExport(err))

	a := ts.MustCreateProduct(testutil.NewProduct("Slip Dress").WithStyleNumber("SD-1").WithColors("Black", "Ivory").WithSizes("S", "M").Build())
	ts.MustCreateProduct(testutil.NewProduct("Coat").WithStyleNumber("C-1").Build())

	n, err := e.ExportCSV(ctx, &buf, []string{})
	assert.True(t, IsNothingToExport(err))
	assert.Zero(t, n)
	assert.Zero(t, buf.Len())

	n, err = e.ExportCSV(ctx, &buf, []string{a.ID})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, export.Header, records[0])
	assert.Equal(t, "sd-1", records[1][1])

	buf.Reset()
	n, err = e.ExportCSV(ctx, &buf, e.ProductIDs(ctx))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestExportToShopify(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		e, _ := newTestEngine(t)
		_, err := e.ExportToShopify(ctx, nil)
		assert.ErrorIs(t, err, common.ErrNotConnected)
		assert.Equal(t, "Connect your Shopify store in Settings first.", common.UserMessage(err))
	})

	t.Run("not connected", func(t *testing.T) {
		client := &fakeShopify{status: shopify.Status{Connected: true}}
		e, ts := newTestEngine(t, WithShopify(client))
		ts.MustCreateProduct(testutil.NewProduct("Slip Dress").Build())

		_, err := e.ExportToShopify(ctx, nil)
		assert.ErrorIs(t, err, common.ErrNotConnected)
		assert.Empty(t, client.requests)
	})

	t.Run("connected", func(t *testing.T) {
		client := &fakeShopify{status: shopify.Status{Connected: true, ShopDomain: "lune.myshopify.com"}}
		e, ts := newTestEngine(t, WithShopify(client))
		p := ts.MustCreateProduct(testutil.NewProduct("Slip Dress").Build())

		result, err := e.ExportToShopify(ctx, e.ProductIDs(ctx))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Count)
		require.Len(t, client.requests, 1)
		assert.Equal(t, "lune.myshopify.com", client.requests[0].ShopDomain)
		assert.Equal(t, []string{p.ID}, client.requests[0].ProductIDs)
	})

	t.Run("empty selection", func(t *testing.T) {
		client := &fakeShopify{status: shopify.Status{Connected: true, ShopDomain: "lune.myshopify.com"}}
		e, ts := newTestEngine(t, WithShopify(client))
		ts.MustCreateProduct(testutil.NewProduct("Slip Dress").Build())

		_, err := e.ExportToShopify(ctx, nil)
		assert.True(t, IsNothingToExport(err))
		assert.Empty(t, client.requests)
	})
}

func TestExportToSheets(t *testing.T) {
	ctx := context.Background()

	e, _ := newTestEngine(t)
	_, _, err := e.ExportToSheets(ctx, nil)
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	writer := sheets.NewMockWriter()
	e, ts := newTestEngine(t, WithSheets(writer))
	ts.MustCreateProduct(testutil.NewProduct("Slip Dress").WithSizes("S", "M", "L").Build())

	_, _, err = e.ExportToSheets(ctx, nil)
	assert.True(t, IsNothingToExport(err))
	assert.Empty(t, writer.GetWriteCalls())

	id, n, err := e.ExportToSheets(ctx, e.ProductIDs(ctx))
	require.NoError(t, err)
	assert.Equal(t, "mock-spreadsheet", id)
	assert.Equal(t, 3, n)
	assert.Len(t, writer.GetWriteCalls()[0], 3)
}

func TestPrefillDraft(t *testing.T) {
	ctx := context.Background()

	e, _ := newTestEngine(t)
	draft, result := e.PrefillDraft(ctx, "aW1n", labelscan.Draft{Notes: "keep"})
	assert.True(t, result.IsEmpty())
	assert.Equal(t, "keep", draft.Notes)

	scanner := &fakeScanner{result: labelscan.Result{
		StyleName: ptr("Bias Skirt"),
		BrandName: ptr("lune"),
		Category:  ptr("bottoms"),
		Season:    ptr("spring 2026"),
	}}
	e, ts := newTestEngine(t, WithScanner(scanner))
	v := ts.MustCreateVendor(testutil.Vendor("Maison Lune"))

	draft, _ = e.PrefillDraft(ctx, "aW1n", labelscan.Draft{})
	assert.Equal(t, 1, scanner.calls)
	assert.Equal(t, "Bias Skirt", draft.Name)
	assert.Equal(t, v.ID, draft.VendorID)
	assert.Equal(t, "Bottoms", draft.Category)
	assert.Equal(t, "Spring 2026", draft.Season)
}

func TestAttachImage(t *testing.T) {
	ctx := context.Background()

	e, ts := newTestEngine(t)
	p := ts.MustCreateProduct(testutil.NewProduct("Slip Dress").Build())
	_, err := e.AttachImage(ctx, p.ID, "photo.jpg")
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	host := &fakeHost{}
	e, ts = newTestEngine(t, WithImages(host))
	p = ts.MustCreateProduct(testutil.NewProduct("Slip Dress").Build())

	first, err := e.AttachImage(ctx, p.ID, "photo.jpg")
	require.NoError(t, err)
	assert.Contains(t, first.ImageURI, "/upload/")
	assert.Empty(t, host.destroyed)

	_, err = e.AttachImage(ctx, p.ID, "photo2.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"digitalhaute/products/" + p.ID + "-1"}, host.destroyed)

	_, err = e.AttachImage(ctx, "missing", "photo.jpg")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	e, ts := newTestEngine(t)
	ts.MustCreateVendor(testutil.Vendor("Maison Lune"))
	ts.MustCreateProduct(testutil.NewProduct("Slip Dress").Build())

	require.NoError(t, e.Clear(ctx))
	assert.Empty(t, ts.Products.GetAll(ctx))
	assert.Empty(t, ts.Vendors.GetAll(ctx))
}
