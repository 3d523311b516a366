package main

import (
	"strings"

	"github.com/spf13/cobra"

	"shifttrack/internal/timeline"
)

func presetHelp() string {
	names := make([]string, 0, len(timeline.AllPresets()))
	for _, preset := range timeline.AllPresets() {
		names = append(names, string(preset))
	}
	return "Window preset: " + strings.Join(names, ", ")
}

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	var preset string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Show daily earnings and hours for a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				resp, err := svcs.timeline.Series(cmd.Context(), preset)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				money := newMoneyFormatter(svcs.cfg)
				rows := make([][]string, 0, len(resp.Points))
				for _, point := range resp.Points {
					rows = append(rows, []string{
						point.DayKey,
						formatHours(point.Hours),
						money.format(point.Earnings),
					})
				}
				cmd.Println(renderTable(
					[]string{"DATE", "HOURS", "EARNINGS"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
				cmd.Printf("Total: %s hours, %s (%s vs prior window: hours %+.1f%%, earnings %+.1f%%)\n",
					formatHours(resp.Current.Hours),
					money.format(resp.Current.Earnings),
					resp.Preset,
					resp.HoursDeltaPct,
					resp.EarningsDeltaPct,
				)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "last30days", presetHelp())
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newBreakdownCommand(ctx *commandContext) *cobra.Command {
	var preset string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show earnings and hours per position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				shares, err := svcs.timeline.Breakdown(cmd.Context(), preset)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), shares)
				}
				if len(shares) == 0 {
					cmd.Println("No shifts in this window.")
					return nil
				}
				money := newMoneyFormatter(svcs.cfg)
				rows := make([][]string, 0, len(shares))
				for _, share := range shares {
					rows = append(rows, []string{
						orDash(share.Position),
						formatHours(share.Hours),
						money.format(share.Earnings),
					})
				}
				cmd.Println(renderTable(
					[]string{"POSITION", "HOURS", "EARNINGS"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "last30days", presetHelp())
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newHeatmapCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show per-day activity intensity for the calendar year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				resp, err := svcs.timeline.Heatmap(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				if len(resp.Values) == 0 {
					cmd.Println("No activity recorded yet.")
					return nil
				}
				cmd.Printf("Activity %s .. %s\n", resp.Start, resp.End)
				for _, cell := range resp.Values {
					cmd.Printf("%s  %s %s\n", cell.Date, strings.Repeat("#", cell.Bucket), formatHours(cell.Count))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}
