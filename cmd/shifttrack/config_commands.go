package main

import (
	"strings"

	"github.com/spf13/cobra"

	"shifttrack/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and bootstrap configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var pathFlag string
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample config file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(pathFlag)
			if path == "" {
				resolved, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = resolved
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			cmd.Printf("Wrote sample config to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&pathFlag, "path", "", "Where to write the sample config")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cmd.Printf("Data dir:        %s\n", cfg.Paths.DataDir)
			cmd.Printf("Log dir:         %s\n", cfg.Paths.LogDir)
			cmd.Printf("Database:        %s\n", cfg.Paths.DatabasePath)
			cmd.Printf("API bind:        %s\n", cfg.Paths.APIBind)
			cmd.Printf("API token set:   %s\n", yesNo(strings.TrimSpace(cfg.Paths.APIToken) != ""))
			cmd.Printf("Default rate:    %.2f %s\n", cfg.Wages.DefaultRate, cfg.Wages.Currency)
			cmd.Printf("Locale:          %s\n", cfg.Wages.Locale)
			cmd.Printf("pdftotext:       %s\n", cfg.PdftotextBinary())
			cmd.Printf("Ntfy topic:      %s\n", orDash(cfg.Notifications.NtfyTopic))
			cmd.Printf("Log format:      %s (%s)\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
