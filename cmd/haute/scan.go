package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/digitalhaute/internal/cli"
	"github.com/Veraticus/digitalhaute/internal/labelscan"
)

func scanCmd() *cobra.Command {
	var draft labelscan.Draft

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Read a hang tag photo and prefill a product draft",
		Long: `Send a photo of a hang tag or line sheet to the configured vision
provider and show the product fields it could read. Values passed as flags
are kept unless the label provides something better.`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			image, err := readImage(args[0])
			if err != nil {
				return err
			}

			filled, result := a.engine.PrefillDraft(cmd.Context(), image, draft)
			if result.IsEmpty() {
				cmd.Println(cli.FormatWarning("Nothing could be read from the label"))
			}

			vendor := filled.VendorName
			if filled.VendorID != "" {
				vendor += " (" + filled.VendorID + ")"
			}
			cmd.Println(cli.RenderBox("Draft", cli.KeyValues([][2]string{
				{"Name", filled.Name},
				{"Style", filled.StyleNumber},
				{"Vendor", strings.TrimSpace(vendor)},
				{"Category", filled.Category},
				{"Season", filled.Season},
				{"Wholesale", filled.WholesalePrice},
				{"Retail", filled.RetailPrice},
				{"Colors", filled.Colors},
				{"Sizes", filled.Sizes},
				{"Notes", filled.Notes},
			})))
			return nil
		}),
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "product name")
	cmd.Flags().StringVar(&draft.StyleNumber, "style", "", "style number")
	cmd.Flags().StringVar(&draft.VendorID, "vendor", "", "vendor id")
	cmd.Flags().StringVar(&draft.Category, "category", "", "category")
	cmd.Flags().StringVar(&draft.Season, "season", "", "season")
	return cmd
}
