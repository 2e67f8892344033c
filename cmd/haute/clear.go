package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/digitalhaute/internal/cli"
)

func clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every product, vendor, budget and setting",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if !yes {
				ok, err := cli.Confirm(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), "Delete all data?")
				if err != nil {
					return err
				}
				if !ok {
					cmd.Println(cli.FormatInfo("Nothing deleted"))
					return nil
				}
			}

			if err := a.engine.Clear(cmd.Context()); err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess("All data cleared"))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}
