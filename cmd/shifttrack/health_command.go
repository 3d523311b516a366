package main

import (
	"github.com/spf13/cobra"

	"shifttrack/internal/deps"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the shift database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				health, err := svcs.store.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}
				cmd.Printf("Database:        %s\n", health.DBPath)
				cmd.Printf("Exists:          %s\n", yesNo(health.DatabaseExists))
				cmd.Printf("Readable:        %s\n", yesNo(health.DatabaseReadable))
				cmd.Printf("Tables present:  %s\n", yesNo(health.TablesExist))
				cmd.Printf("Integrity check: %s\n", yesNo(health.IntegrityCheck))
				cmd.Printf("Total shifts:    %d\n", health.TotalShifts)
				if health.Error != "" {
					cmd.Printf("Last error:      %s\n", health.Error)
				}
				for _, status := range deps.CheckBinaries(deps.Requirements(svcs.cfg)) {
					state := "ok"
					if !status.Available {
						state = status.Detail
						if status.Optional {
							state += " (optional)"
						}
					}
					cmd.Printf("%-16s %s\n", status.Name+":", state)
				}
				return nil
			})
		},
	}
	return cmd
}
