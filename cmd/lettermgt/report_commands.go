package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Processing reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newStatusReportCommand(ctx))
	cmd.AddCommand(newRangeReportCommand(ctx))
	return cmd
}

func newStatusReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Letter counts per processing status",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := store.StatusSummary(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(summary))
			for _, g := range summary {
				rows = append(rows, []string{
					string(g.Status.Display()),
					strconv.Itoa(g.Count),
					g.EarliestScan,
					g.LatestScan,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Status", "Count", "Earliest Scan", "Latest Scan"},
				rows,
			))
			return nil
		},
	}
}

func newRangeReportCommand(ctx *commandContext) *cobra.Command {
	var (
		from  string
		to    string
		field string
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Letters whose date field falls between two dates, inclusive",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.LettersByDateRange(cmd.Context(), from, to, field)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(items))
			for _, l := range items {
				rows = append(rows, []string{
					strconv.FormatInt(l.ID, 10),
					l.PrisonerCode,
					string(l.ProcessingStatus.Display()),
					l.DateEnvLetterScanned,
					l.DateFinishedResponse,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Code", "Status", "Scanned", "Finished"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD or DDMmmYYYY)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD or DDMmmYYYY)")
	cmd.Flags().StringVar(&field, "field", "date_env_letter_scanned", "Business-date field to filter on")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
