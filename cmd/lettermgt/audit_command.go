package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sputnik57/letter-mgt/internal/letters"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var (
		letterID int64
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the change history",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []*letters.AuditEntry
			if cmd.Flags().Changed("letter") {
				entries, err = store.AuditTrail(cmd.Context(), letterID)
			} else {
				entries, err = store.RecentAudit(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(e.LogID, 10),
					e.Timestamp,
					e.Action,
					strconv.FormatInt(e.LetterID, 10),
					e.FieldChanged,
					e.OldValue,
					e.NewValue,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Log", "Timestamp", "Action", "Letter", "Field", "Old", "New"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().Int64Var(&letterID, "letter", 0, "Full trail for one letter, oldest first")
	cmd.Flags().IntVar(&limit, "limit", 50, "Number of recent entries to show")
	return cmd
}
