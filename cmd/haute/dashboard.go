package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/digitalhaute/internal/budget"
	"github.com/Veraticus/digitalhaute/internal/cli"
	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/storage"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize products, vendors and budgets",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			stats := a.engine.Dashboard(cmd.Context())

			health := budget.HealthOf(model.Budget{Amount: stats.TotalBudget, Spent: stats.TotalSpent})

			next := stats.NextDeliveryDate
			if next == "" {
				next = "none scheduled"
			}

			cmd.Println(cli.RenderBox(cli.BrandIcon+" digitalhaute", cli.KeyValues([][2]string{
				{"Products", strconv.Itoa(stats.TotalProducts)},
				{"Vendors", strconv.Itoa(stats.TotalVendors)},
				{"Budget", money(stats.TotalBudget)},
				{"Spent", money(stats.TotalSpent)},
				{"Remaining", money(stats.TotalRemaining)},
				{"Used", cli.HealthStyle(string(health)).Render(percent(stats.Utilization))},
				{"Next delivery", next},
			})))

			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				rows, err := storageRows(cmd, a.kv)
				if err != nil {
					return err
				}
				cmd.Println(cli.KeyValues(rows))
			}
			return nil
		}),
	}
	cmd.Flags().BoolP("verbose", "v", false, "also show where the catalog is stored")
	return cmd
}

// storageRows describes the catalog backing a.kv.
func storageRows(cmd *cobra.Command, kv storage.KV) ([][2]string, error) {
	db, ok := kv.(*storage.SQLiteKV)
	if !ok {
		return [][2]string{{"Database", "in memory"}}, nil
	}
	keys, err := db.Keys(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to read database: %w", err)
	}
	stored := "none"
	if len(keys) > 0 {
		stored = strings.Join(keys, ", ")
	}
	return [][2]string{{"Database", db.Path()}, {"Stored", stored}}, nil
}
