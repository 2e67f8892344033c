package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/digitalhaute/internal/cli"
	"github.com/Veraticus/digitalhaute/internal/engine"
	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/pricing"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Manage the products you have bought or are considering",
	}

	cmd.AddCommand(productsListCmd())
	cmd.AddCommand(productsAddCmd())
	cmd.AddCommand(productsShowCmd())
	cmd.AddCommand(productsUpdateCmd())
	cmd.AddCommand(productsStatusCmd())
	cmd.AddCommand(productsDeleteCmd())
	cmd.AddCommand(productsImageCmd())
	return cmd
}

func productsListCmd() *cobra.Command {
	var filter engine.ProductFilter

	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls", "search"},
		Short:   "List products, optionally filtered",
		Args:    cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if len(args) == 1 {
				filter.Query = args[0]
			}
			if filter.Status != "" {
				status, err := model.ParseStatus(filter.Status)
				if err != nil {
					return err
				}
				filter.Status = string(status)
			}

			products := a.engine.SearchProducts(cmd.Context(), filter)
			settings := a.engine.Settings(cmd.Context())

			rows := make([][]string, 0, len(products))
			for _, p := range products {
				rows = append(rows, []string{
					p.ID,
					p.Name,
					p.StyleNumber,
					p.VendorName,
					p.Category,
					p.Season,
					p.Status.Label(),
					strconv.Itoa(p.Quantity),
					money(p.WholesalePrice),
					money(retailOf(&p, settings)),
				})
			}

			cmd.Println(cli.FormatTitle(fmt.Sprintf("%s Products (%d)", cli.BoxIcon, len(products))))
			cmd.Println(cli.Table(
				[]string{"ID", "Name", "Style", "Vendor", "Category", "Season", "Status", "Qty", "Cost", "Retail"},
				rows,
			))
			return nil
		}),
	}

	cmd.Flags().StringVar(&filter.Category, "category", "", "only this category")
	cmd.Flags().StringVar(&filter.Season, "season", "", "only this season")
	cmd.Flags().StringVar(&filter.VendorID, "vendor", "", "only this vendor id")
	cmd.Flags().StringVar(&filter.Status, "status", "", "only this status")
	return cmd
}

func retailOf(p *model.Product, settings model.AppSettings) float64 {
	if v, ok := p.ExplicitRetail(); ok {
		return v
	}
	return pricing.Retail(p.WholesalePrice, settings)
}

// productFlags binds the product fields shared by add and update.
type productFlags struct {
	name, style, vendor, category, subcategory string
	season, collection, delivery, notes        string
	status, image                              string
	colors, selectedColors, sizes              string
	wholesale, retail                          float64
	quantity, packs                            int
}

func (f *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.style, "style", "", "style number")
	cmd.Flags().StringVar(&f.vendor, "vendor", "", "vendor id")
	cmd.Flags().StringVar(&f.category, "category", "", "category")
	cmd.Flags().StringVar(&f.subcategory, "subcategory", "", "subcategory")
	cmd.Flags().StringVar(&f.season, "season", "", "season, e.g. \"Fall 2026\"")
	cmd.Flags().StringVar(&f.collection, "collection", "", "collection")
	cmd.Flags().StringVar(&f.delivery, "delivery", "", "delivery date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "notes")
	cmd.Flags().StringVar(&f.status, "status", "", "status (maybe, ordered, shipped, delivered, received, cancelled)")
	cmd.Flags().StringVar(&f.image, "image-uri", "", "image URI")
	cmd.Flags().StringVar(&f.colors, "colors", "", "comma-separated colours offered")
	cmd.Flags().StringVar(&f.selectedColors, "selected-colors", "", "comma-separated colours ordered")
	cmd.Flags().StringVar(&f.sizes, "sizes", "", "comma-separated sizes")
	cmd.Flags().Float64Var(&f.wholesale, "wholesale", 0, "wholesale price per unit")
	cmd.Flags().Float64Var(&f.retail, "retail", 0, "retail price (defaults to the markup)")
	cmd.Flags().IntVar(&f.quantity, "qty", 0, "units ordered")
	cmd.Flags().IntVar(&f.packs, "packs", 0, "packs ordered, using the vendor's pack ratio")
}

func productsAddCmd() *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			in := engine.ProductInput{
				Name:           f.name,
				StyleNumber:    f.style,
				VendorID:       f.vendor,
				Category:       f.category,
				Subcategory:    f.subcategory,
				Season:         f.season,
				Collection:     f.collection,
				DeliveryDate:   f.delivery,
				Notes:          f.notes,
				ImageURI:       f.image,
				Colors:         model.SplitList(f.colors),
				SelectedColors: model.SplitList(f.selectedColors),
				Sizes:          model.SplitList(f.sizes),
			}
			if f.status != "" {
				status, err := model.ParseStatus(f.status)
				if err != nil {
					return err
				}
				in.Status = status
			}

			flags := cmd.Flags()
			if flags.Changed("wholesale") {
				in.WholesalePrice = &f.wholesale
			}
			if flags.Changed("retail") {
				in.RetailPrice = &f.retail
			}
			if flags.Changed("qty") {
				in.Quantity = &f.quantity
			}
			if flags.Changed("packs") {
				in.Packs = &f.packs
			}

			p, err := a.engine.AddProduct(cmd.Context(), in)
			if err != nil {
				return err
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Added %s (%s), %d units", p.Name, p.ID, p.Quantity)))
			return nil
		}),
	}

	f.bind(cmd)
	return cmd
}

func productsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			p, err := a.engine.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			settings := a.engine.Settings(cmd.Context())

			pairs := [][2]string{
				{"ID", p.ID},
				{"Style", p.StyleNumber},
				{"Vendor", p.VendorName},
				{"Category", strings.TrimSuffix(p.Category+" / "+p.Subcategory, " / ")},
				{"Season", p.Season},
				{"Status", p.Status.Label()},
				{"Delivery", p.DeliveryDate},
				{"Wholesale", money(p.WholesalePrice)},
				{"Retail", money(retailOf(&p, settings))},
				{"Quantity", strconv.Itoa(p.Quantity)},
				{"Colors", strings.Join(p.WorkingColors(), ", ")},
				{"Sizes", strings.Join(p.Sizes, ", ")},
			}
			if p.Packs != nil {
				pairs = append(pairs, [2]string{"Packs", fmt.Sprintf("%d × %s", *p.Packs, p.PackRatio.String())})
			}
			if p.ReceivedDate != "" {
				pairs = append(pairs, [2]string{"Received", p.ReceivedDate})
			}
			if p.ImageURI != "" {
				pairs = append(pairs, [2]string{"Image", p.ImageURI})
			}
			if p.Notes != "" {
				pairs = append(pairs, [2]string{"Notes", p.Notes})
			}

			cmd.Println(cli.RenderBox(p.Name, cli.KeyValues(pairs)))
			return nil
		}),
	}
}

func productsUpdateCmd() *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields on a product",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			patch, err := f.patch(cmd)
			if err != nil {
				return err
			}

			p, err := a.engine.UpdateProduct(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess("Updated " + p.Name))
			return nil
		}),
	}

	f.bind(cmd)
	return cmd
}

// patch builds a patch from the flags the user actually passed.
func (f *productFlags) patch(cmd *cobra.Command) (model.ProductPatch, error) {
	var patch model.ProductPatch
	flags := cmd.Flags()

	str := func(flag string, dst **string, v *string) {
		if flags.Changed(flag) {
			*dst = v
		}
	}
	str("name", &patch.Name, &f.name)
	str("style", &patch.StyleNumber, &f.style)
	str("vendor", &patch.VendorID, &f.vendor)
	str("category", &patch.Category, &f.category)
	str("subcategory", &patch.Subcategory, &f.subcategory)
	str("season", &patch.Season, &f.season)
	str("collection", &patch.Collection, &f.collection)
	str("delivery", &patch.DeliveryDate, &f.delivery)
	str("notes", &patch.Notes, &f.notes)
	str("image-uri", &patch.ImageURI, &f.image)

	list := func(flag string, dst **[]string, raw string) {
		if flags.Changed(flag) {
			v := model.SplitList(raw)
			*dst = &v
		}
	}
	list("colors", &patch.Colors, f.colors)
	list("selected-colors", &patch.SelectedColors, f.selectedColors)
	list("sizes", &patch.Sizes, f.sizes)

	if flags.Changed("wholesale") {
		patch.WholesalePrice = &f.wholesale
	}
	if flags.Changed("retail") {
		patch.RetailPrice = &f.retail
	}
	if flags.Changed("qty") {
		patch.Quantity = &f.quantity
	}
	if flags.Changed("packs") {
		patch.Packs = &f.packs
	}
	if flags.Changed("status") {
		status, err := model.ParseStatus(f.status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	return patch, nil
}

func productsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a product through the buying cycle",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}

			p, err := a.engine.ChangeStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("%s is now %s", p.Name, p.Status.Label())))
			return nil
		}),
	}
}

func productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a product",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.engine.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess("Deleted " + args[0]))
			return nil
		}),
	}
}

func productsImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "image <id> <file>",
		Short: "Upload a product photo to the image host",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer f.Close()

			p, err := a.engine.AttachImage(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess("Image attached: " + p.ImageURI))
			return nil
		}),
	}
}

// readImage loads an image file as the base64 payload label scanning takes.
func readImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
