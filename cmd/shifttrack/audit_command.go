package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shifttrack/internal/api"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var begin, end string
	var hours float64
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "audit <paystub.pdf>",
		Short: "Check a paystub against recorded hours",
		Long: "Extracts the pay period and claimed hours from a paystub document, " +
			"then grades the claim against the hours recorded in that window. " +
			"Flags override fields the extractor missed or got wrong.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				extracted, err := svcs.audit.ExtractDocument(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				input := api.ReconcileInput{
					BeginDate: extracted.BeginDate,
					EndDate:   extracted.EndDate,
				}
				if cmd.Flags().Changed("begin") {
					input.BeginDate = begin
				}
				if cmd.Flags().Changed("end") {
					input.EndDate = end
				}
				if cmd.Flags().Changed("hours") {
					claimed := hours
					input.ClaimedHours = &claimed
				} else if parsed := parseHours(extracted.TotalHours); parsed != nil {
					input.ClaimedHours = parsed
				}
				verdict, err := svcs.audit.Reconcile(cmd.Context(), input)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), api.AuditResponse{Extracted: extracted, Verdict: verdict})
				}
				printAudit(cmd, extracted, input, verdict)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&begin, "begin", "", "Override the pay period begin date")
	cmd.Flags().StringVar(&end, "end", "", "Override the pay period end date")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Override the claimed hours total")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}

func parseHours(value string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func printAudit(cmd *cobra.Command, extracted api.ExtractResponse, input api.ReconcileInput, verdict api.ReconcileResponse) {
	color := writerSupportsColor(cmd.OutOrStdout())
	cmd.Printf("Pay period: %s .. %s\n", orDash(input.BeginDate), orDash(input.EndDate))
	if extracted.TotalHours == "" && input.ClaimedHours == nil {
		cmd.Println("Claimed hours: not found in document (pass --hours to supply them)")
	} else {
		cmd.Printf("Claimed hours:  %s\n", formatHours(verdict.ClaimedHours))
	}
	cmd.Printf("Recorded hours: %s\n", formatHours(verdict.ComputedHours))
	cmd.Printf("Variance:       %.1f%%\n", verdict.PercentDiff)
	cmd.Printf("Verdict:        %s\n", colorize(verdict.Tier, tierColor(verdict.Tier), color))
}
