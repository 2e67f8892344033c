package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/digitalhaute/internal/cli"
	"github.com/Veraticus/digitalhaute/internal/engine"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget", "b"},
		Short:   "Manage season budgets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List budgets with their spend",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			summaries := a.engine.ListBudgets(cmd.Context())
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				scope := "All"
				switch {
				case s.Category != "":
					scope = s.Category
				case s.VendorID != "":
					scope = "Vendor " + s.VendorID
				}
				rows = append(rows, []string{
					s.ID,
					s.Season,
					scope,
					money(s.Amount),
					money(s.Spent),
					money(s.Remaining),
					cli.HealthStyle(string(s.Health)).Render(percent(s.Utilization)),
				})
			}
			cmd.Println(cli.FormatTitle(fmt.Sprintf("%s Budgets (%d)", cli.ChartIcon, len(summaries))))
			cmd.Println(cli.Table([]string{"ID", "Season", "Scope", "Budget", "Spent", "Remaining", "Used"}, rows))
			return nil
		}),
	})
	cmd.AddCommand(budgetsAddCmd())
	cmd.AddCommand(&cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a budget",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.engine.DeleteBudget(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess("Deleted budget " + args[0]))
			return nil
		}),
	})
	return cmd
}

func budgetsAddCmd() *cobra.Command {
	var (
		in     engine.BudgetInput
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "add <season>",
		Short: "Add a budget for a season, optionally scoped to a category or vendor",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			in.Season = args[0]
			if cmd.Flags().Changed("amount") {
				in.Amount = &amount
			}

			b, err := a.engine.AddBudget(cmd.Context(), in)
			if err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Added %s budget of %s (%s spent)", b.Season, money(b.Amount), money(b.Spent))))
			return nil
		}),
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "budget amount")
	cmd.Flags().StringVar(&in.Category, "category", "", "limit to one category")
	cmd.Flags().StringVar(&in.VendorID, "vendor", "", "limit to one vendor id")
	return cmd
}
