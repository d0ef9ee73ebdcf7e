package main

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/sputnik57/letter-mgt/internal/roster"
)

func newResyncCommand(ctx *commandContext) *cobra.Command {
	var rosterPath string

	cmd := &cobra.Command{
		Use:   "resync",
		Short: "Re-derive every letter's pseudonym from the current roster",
		Long: "Re-derive every letter's prisoner_code from the authoritative\n" +
			"roster snapshot. Letters referencing rows outside the roster are left\n" +
			"untouched. Only one resync runs at a time across sessions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := rosterPath
			if path == "" {
				path = cfg.Roster.CSVPath
			}
			if path == "" {
				return errors.New("no roster: pass --roster or set roster.csv_path in config")
			}

			snapshot, err := roster.LoadCSV(path)
			if err != nil {
				return err
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			lock := flock.New(cfg.ResyncLockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire resync lock: %w", err)
			}
			if !locked {
				return errors.New("another resync is already running")
			}
			defer func() { _ = lock.Unlock() }()

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := store.Resync(cmd.Context(), snapshot)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Examined %d letters: %d updated, %d skipped\n",
				report.Examined, report.Updated, report.Skipped)
			for _, f := range report.Failures {
				fmt.Fprintf(out, "  letter %d failed: %v\n", f.LetterID, f.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "Roster CSV path (defaults to roster.csv_path in config)")
	return cmd
}
