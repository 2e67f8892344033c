package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/digitalhaute/internal/cli"
	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/engine"
	"github.com/Veraticus/digitalhaute/internal/export"
	"github.com/Veraticus/digitalhaute/internal/model"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export products for Shopify",
		Long: `Export products as Shopify variant rows. Pass the product ids to
export, or --all to export the whole catalog.`,
	}

	cmd.PersistentFlags().Bool("all", false, "export every product")

	cmd.AddCommand(exportCSVCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "sheets [product-id...]",
		Short: "Write the line sheet to Google Sheets",
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			ids, err := selection(cmd, a, args)
			if err != nil {
				return err
			}
			id, rows, err := a.engine.ExportToSheets(cmd.Context(), ids)
			if err != nil {
				if errors.Is(err, common.ErrMissingConfig) {
					return common.NewUserError("Google Sheets is not configured. Run 'haute sheets auth' first.", err)
				}
				return nothingToExport(err)
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %d rows", rows)))
			cmd.Println(cli.FormatInfo("https://docs.google.com/spreadsheets/d/" + id))
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "shopify [product-id...]",
		Short: "Push products to the connected Shopify store",
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			ids, err := selection(cmd, a, args)
			if err != nil {
				return err
			}
			result, err := a.engine.ExportToShopify(cmd.Context(), ids)
			if err != nil {
				return nothingToExport(err)
			}
			if !result.Success {
				return common.NewUserError("Shopify export failed: "+result.Message, common.ErrUpstream)
			}
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d products to Shopify", result.Count)))
			return nil
		}),
	})
	return cmd
}

// selection returns the ids named on the command line, or every product id
// with --all.
func selection(cmd *cobra.Command, a *app, args []string) ([]string, error) {
	all, _ := cmd.Flags().GetBool("all")
	switch {
	case all && len(args) > 0:
		return nil, fmt.Errorf("pass product ids or --all, not both")
	case all:
		return a.engine.ProductIDs(cmd.Context()), nil
	case len(args) == 0:
		return nil, common.NewUserError("No products selected. Pass product ids or --all.", export.ErrNoProducts)
	default:
		return args, nil
	}
}

func nothingToExport(err error) error {
	if engine.IsNothingToExport(err) {
		return common.NewUserError("No products to export.", err)
	}
	return err
}

func exportCSVCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "csv [product-id...]",
		Short: "Write a Shopify product import CSV",
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			ctx := cmd.Context()
			ids, err := selection(cmd, a, args)
			if err != nil {
				return err
			}
			products := a.engine.SelectProducts(ctx, ids)
			if len(products) == 0 {
				return nothingToExport(export.ErrNoProducts)
			}
			settings := a.engine.Settings(ctx)

			bar := progressbar.NewOptions(len(products),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Building variants...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(cmd.ErrOrStderr())
				}),
			)

			var rows []export.Row
			for _, p := range products {
				rows = append(rows, export.BuildRows([]model.Product{p}, settings)...)
				_ = bar.Add(1)
			}

			path := filepath.Join(dir, export.Filename(time.Now()))
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			if err := export.WriteCSV(f, rows); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d products (%d variants) to %s", len(products), len(rows), path)))
			return nil
		}),
	}

	cmd.Flags().StringVar(&dir, "dir", os.TempDir(), "directory to write the CSV into")
	return cmd
}
