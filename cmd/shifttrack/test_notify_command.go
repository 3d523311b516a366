package main

import (
	"github.com/spf13/cobra"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification to the configured ntfy topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svcs *services) error {
				if err := svcs.notifier.TestNotification(cmd.Context()); err != nil {
					return err
				}
				cmd.Println("Test notification sent.")
				return nil
			})
		},
	}
	return cmd
}
