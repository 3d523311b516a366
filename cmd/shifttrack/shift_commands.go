package main

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"shifttrack/internal/api"
)

func newShiftCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Record and manage work shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newShiftAddCommand(ctx))
	cmd.AddCommand(newShiftListCommand(ctx))
	cmd.AddCommand(newShiftShowCommand(ctx))
	cmd.AddCommand(newShiftEditCommand(ctx))
	cmd.AddCommand(newShiftRemoveCommand(ctx))
	return cmd
}

type shiftFlags struct {
	clockIn  string
	clockOut string
	lunchIn  string
	lunchOut string
	position string
	notes    string
}

func (f *shiftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.clockIn, "in", "", "Clock-in timestamp (e.g. 2024-03-01T09:00)")
	cmd.Flags().StringVar(&f.clockOut, "out", "", "Clock-out timestamp")
	cmd.Flags().StringVar(&f.lunchIn, "lunch-in", "", "Lunch start timestamp")
	cmd.Flags().StringVar(&f.lunchOut, "lunch-out", "", "Lunch end timestamp")
	cmd.Flags().StringVar(&f.position, "position", "", "Position label used for rate lookup")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *shiftFlags) input() api.ShiftInput {
	return api.ShiftInput{
		ClockIn:  f.clockIn,
		ClockOut: f.clockOut,
		LunchIn:  f.lunchIn,
		LunchOut: f.lunchOut,
		Position: f.position,
		Notes:    f.notes,
	}
}

func newShiftAddCommand(ctx *commandContext) *cobra.Command {
	var flags shiftFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				resp, err := svcs.shifts.Create(cmd.Context(), flags.input())
				if err != nil {
					return err
				}
				printShiftDetail(cmd, svcs, resp.Shift)
				return nil
			})
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newShiftListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var asCSV bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				resp, err := svcs.shifts.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				if asCSV {
					return writeShiftCSV(cmd.OutOrStdout(), resp.Shifts)
				}
				if len(resp.Shifts) == 0 {
					cmd.Println("No shifts recorded.")
					return nil
				}
				money := newMoneyFormatter(svcs.cfg)
				rows := make([][]string, 0, len(resp.Shifts))
				for _, item := range resp.Shifts {
					rows = append(rows, []string{
						shortID(item.ID),
						item.DayKey,
						formatClock(item.ClockIn),
						formatClock(item.ClockOut),
						formatHours(item.Hours),
						item.Position,
						money.format(item.Earned),
					})
				}
				cmd.Println(renderTable(
					[]string{"ID", "DATE", "IN", "OUT", "HOURS", "POSITION", "EARNED"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Emit CSV instead of a table")
	return cmd
}

func writeShiftCSV(out io.Writer, shifts []api.Shift) error {
	writer := csv.NewWriter(out)
	header := []string{"id", "date", "clock_in", "clock_out", "lunch_in", "lunch_out", "position", "hours", "earned", "notes"}
	if err := writer.Write(header); err != nil {
		return err
	}
	stamp := func(ts *time.Time) string {
		if ts == nil {
			return ""
		}
		return ts.Format(time.RFC3339)
	}
	for _, item := range shifts {
		row := []string{
			item.ID,
			item.DayKey,
			stamp(item.ClockIn),
			stamp(item.ClockOut),
			stamp(item.LunchIn),
			stamp(item.LunchOut),
			item.Position,
			formatHours(item.Hours),
			strconv.FormatFloat(item.Earned, 'f', 2, 64),
			item.Notes,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func newShiftShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one shift in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				resp, err := svcs.shifts.Describe(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printShiftDetail(cmd, svcs, resp.Shift)
				return nil
			})
		},
	}
	return cmd
}

func newShiftEditCommand(ctx *commandContext) *cobra.Command {
	var flags shiftFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a recorded shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				existing, err := svcs.shifts.Describe(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				input := inputFromShift(existing.Shift)
				if cmd.Flags().Changed("in") {
					input.ClockIn = flags.clockIn
				}
				if cmd.Flags().Changed("out") {
					input.ClockOut = flags.clockOut
				}
				if cmd.Flags().Changed("lunch-in") {
					input.LunchIn = flags.lunchIn
				}
				if cmd.Flags().Changed("lunch-out") {
					input.LunchOut = flags.lunchOut
				}
				if cmd.Flags().Changed("position") {
					input.Position = flags.position
				}
				if cmd.Flags().Changed("notes") {
					input.Notes = flags.notes
				}
				resp, err := svcs.shifts.Update(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				printShiftDetail(cmd, svcs, resp.Shift)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newShiftRemoveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a recorded shift",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				if err := svcs.shifts.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Printf("Deleted shift %s\n", args[0])
				return nil
			})
		},
	}
	return cmd
}

func printShiftDetail(cmd *cobra.Command, svcs *services, item api.Shift) {
	money := newMoneyFormatter(svcs.cfg)
	cmd.Printf("Shift %s\n", item.ID)
	cmd.Printf("  Date:      %s\n", item.DayKey)
	cmd.Printf("  Clock in:  %s\n", formatStamp(item.ClockIn))
	cmd.Printf("  Clock out: %s\n", formatStamp(item.ClockOut))
	if item.LunchIn != nil || item.LunchOut != nil {
		cmd.Printf("  Lunch:     %s - %s\n", formatStamp(item.LunchIn), formatStamp(item.LunchOut))
	}
	cmd.Printf("  Position:  %s\n", orDash(item.Position))
	cmd.Printf("  Hours:     %s\n", formatHours(item.Hours))
	cmd.Printf("  Earned:    %s\n", money.format(item.Earned))
	if item.Notes != "" {
		cmd.Printf("  Notes:     %s\n", item.Notes)
	}
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

// inputFromShift rebuilds an input from stored values so edits can overlay
// only the flags that were set.
func inputFromShift(item api.Shift) api.ShiftInput {
	stamp := func(ts *time.Time) string {
		if ts == nil {
			return ""
		}
		return ts.Format(time.RFC3339Nano)
	}
	return api.ShiftInput{
		ClockIn:  stamp(item.ClockIn),
		ClockOut: stamp(item.ClockOut),
		LunchIn:  stamp(item.LunchIn),
		LunchOut: stamp(item.LunchOut),
		Position: item.Position,
		Notes:    item.Notes,
	}
}
