package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/digitalhaute/internal/cli"
	"github.com/Veraticus/digitalhaute/internal/engine"
	"github.com/Veraticus/digitalhaute/internal/model"
)

func vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vendors",
		Aliases: []string{"vendor", "v"},
		Short:   "Manage the brands and showrooms you buy from",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vendors",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			vendors := a.engine.ListVendors(cmd.Context())
			rows := make([][]string, 0, len(vendors))
			for _, v := range vendors {
				rows = append(rows, []string{v.ID, v.Name, v.ContactName, v.Email, v.PaymentTerms, v.PackRatio.String()})
			}
			cmd.Println(cli.FormatTitle(fmt.Sprintf("Vendors (%d)", len(vendors))))
			cmd.Println(cli.Table([]string{"ID", "Name", "Contact", "Email", "Terms", "Pack"}, rows))
			return nil
		}),
	})
	cmd.AddCommand(vendorsAddCmd())
	cmd.AddCommand(vendorsUpdateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a vendor with its products and spend",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			detail, err := a.engine.GetVendor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v := detail.Vendor

			cmd.Println(cli.RenderBox(v.Name, cli.KeyValues([][2]string{
				{"ID", v.ID},
				{"Contact", v.ContactName},
				{"Email", v.Email},
				{"Phone", v.Phone},
				{"Website", v.Website},
				{"Terms", v.PaymentTerms},
				{"Pack ratio", v.PackRatio.String()},
				{"Committed spend", money(detail.Spend)},
			})))

			rows := make([][]string, 0, len(detail.Products))
			for _, p := range detail.Products {
				rows = append(rows, []string{p.ID, p.Name, p.Season, p.Status.Label(), strconv.Itoa(p.Quantity), money(p.WholesalePrice)})
			}
			cmd.Println(cli.Table([]string{"ID", "Product", "Season", "Status", "Qty", "Cost"}, rows))
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a vendor; its products are kept",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.engine.DeleteVendor(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess("Deleted vendor " + args[0]))
			return nil
		}),
	})
	return cmd
}

func vendorsAddCmd() *cobra.Command {
	var in engine.VendorInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			in.Name = args[0]
			v, err := a.engine.AddVendor(cmd.Context(), in)
			if err != nil {
				return err
			}
			if in.PackRatio != "" && v.PackRatio == nil {
				cmd.Println(cli.FormatWarning("Pack ratio did not match the sizes and was not saved"))
			}
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Added vendor %s (%s)", v.Name, v.ID)))
			return nil
		}),
	}

	cmd.Flags().StringVar(&in.ContactName, "contact", "", "contact name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone")
	cmd.Flags().StringVar(&in.Website, "website", "", "website")
	cmd.Flags().StringVar(&in.PaymentTerms, "terms", "", "payment terms, e.g. Net 30")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "notes")
	cmd.Flags().StringVar(&in.PackRatio, "pack-ratio", "", "units per size in one pack, e.g. 2-2-2")
	cmd.Flags().StringVar(&in.PackSizes, "pack-sizes", "", "sizes the ratio applies to, e.g. S,M,L")
	return cmd
}

func vendorsUpdateCmd() *cobra.Command {
	var in engine.VendorInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields on a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			var patch model.VendorPatch
			flags := cmd.Flags()
			for flag, field := range map[string]struct {
				dst **string
				v   *string
			}{
				"name":    {&patch.Name, &in.Name},
				"contact": {&patch.ContactName, &in.ContactName},
				"email":   {&patch.Email, &in.Email},
				"phone":   {&patch.Phone, &in.Phone},
				"website": {&patch.Website, &in.Website},
				"terms":   {&patch.PaymentTerms, &in.PaymentTerms},
				"notes":   {&patch.Notes, &in.Notes},
			} {
				if flags.Changed(flag) {
					*field.dst = field.v
				}
			}
			if flags.Changed("pack-ratio") {
				ratio := model.ParsePackRatio(in.PackRatio, in.PackSizes)
				if ratio == nil {
					return fmt.Errorf("pack ratio %q does not match sizes %q", in.PackRatio, in.PackSizes)
				}
				patch.PackRatio = ratio
			}

			v, err := a.engine.UpdateVendor(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess("Updated vendor " + v.Name))
			return nil
		}),
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "vendor name")
	cmd.Flags().StringVar(&in.ContactName, "contact", "", "contact name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone")
	cmd.Flags().StringVar(&in.Website, "website", "", "website")
	cmd.Flags().StringVar(&in.PaymentTerms, "terms", "", "payment terms")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "notes")
	cmd.Flags().StringVar(&in.PackRatio, "pack-ratio", "", "units per size in one pack, e.g. 2-2-2")
	cmd.Flags().StringVar(&in.PackSizes, "pack-sizes", "", "sizes the ratio applies to")
	return cmd
}
