package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sputnik57/letter-mgt/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a sample config file to the default location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			if err := config.WriteSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "data_dir:    %s\n", cfg.Paths.DataDir)
			fmt.Fprintf(out, "storage_dir: %s\n", cfg.Paths.StorageDir)
			fmt.Fprintf(out, "log_dir:     %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "database:    %s\n", cfg.DatabasePath())
			fmt.Fprintf(out, "roster_csv:  %s\n", cfg.Roster.CSVPath)
			fmt.Fprintf(out, "log_level:   %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "log_format:  %s\n", cfg.Logging.Format)
			return nil
		},
	}
}
