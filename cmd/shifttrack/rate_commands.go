package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"shifttrack/internal/api"
)

func newRateCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Manage wage rates by position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newRateSetCommand(ctx))
	cmd.AddCommand(newRateListCommand(ctx))
	cmd.AddCommand(newRateRemoveCommand(ctx))
	return cmd
}

func newRateSetCommand(ctx *commandContext) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "set <position> <amount>",
		Short: "Create or replace the rate for a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return err
			}
			return ctx.withServices(func(svcs *services) error {
				resp, err := svcs.rates.Save(cmd.Context(), api.RateInput{
					Position: args[0],
					Amount:   amount,
					Kind:     kind,
				})
				if err != nil {
					return err
				}
				money := newMoneyFormatter(svcs.cfg)
				cmd.Printf("Rate %s: %s %s (%s)\n", resp.Rate.ID, resp.Rate.Position, money.format(resp.Rate.Amount), resp.Rate.Kind)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "hourly", "Rate kind: hourly, per_shift, or per_day")
	return cmd
}

func newRateListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wage rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				resp, err := svcs.rates.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				if len(resp.Rates) == 0 {
					cmd.Printf("No rates configured; shifts use the default rate (%.2f).\n", svcs.cfg.Wages.DefaultRate)
					return nil
				}
				money := newMoneyFormatter(svcs.cfg)
				rows := make([][]string, 0, len(resp.Rates))
				for _, rate := range resp.Rates {
					rows = append(rows, []string{
						shortID(rate.ID),
						rate.Position,
						money.format(rate.Amount),
						rate.Kind,
					})
				}
				cmd.Println(renderTable(
					[]string{"ID", "POSITION", "AMOUNT", "KIND"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRateRemoveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a wage rate",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				if err := svcs.rates.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Printf("Deleted rate %s\n", args[0])
				return nil
			})
		},
	}
	return cmd
}
