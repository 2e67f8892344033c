package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/digitalhaute/internal/cli"
	"github.com/Veraticus/digitalhaute/internal/engine"
	"github.com/Veraticus/digitalhaute/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change pricing settings",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			s := a.engine.Settings(cmd.Context())
			cmd.Println(cli.KeyValues([][2]string{
				{"Markup multiplier", strconv.FormatFloat(s.MarkupMultiplier, 'f', -1, 64)},
				{"Rounding", string(s.RoundingMode)},
			}))
			return nil
		}),
	}

	var (
		markup   float64
		rounding string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the markup multiplier or rounding mode",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			var patch engine.SettingsPatch
			if cmd.Flags().Changed("markup") {
				patch.MarkupMultiplier = &markup
			}
			if cmd.Flags().Changed("rounding") {
				mode := model.RoundingMode(rounding)
				patch.RoundingMode = &mode
			}

			s, err := a.engine.UpdateSettings(cmd.Context(), patch)
			if err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Markup %gx, rounding %s", s.MarkupMultiplier, s.RoundingMode)))
			return nil
		}),
	}
	set.Flags().Float64Var(&markup, "markup", 0, "retail = wholesale × markup")
	set.Flags().StringVar(&rounding, "rounding", "", "none, up or even")
	cmd.AddCommand(set)

	cmd.AddCommand(&cobra.Command{
		Use:   "preview <wholesale>",
		Short: "Show the retail price the current settings produce",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			wholesale, err := strconv.ParseFloat(args[0], 64)
			if err != nil || wholesale < 0 {
				return fmt.Errorf("invalid wholesale price %q", args[0])
			}
			cmd.Printf("%s → %s\n", money(wholesale), money(a.engine.PreviewRetail(cmd.Context(), wholesale)))
			return nil
		}),
	})
	return cmd
}
