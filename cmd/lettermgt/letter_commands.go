package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sputnik57/letter-mgt/internal/letters"
	"github.com/sputnik57/letter-mgt/internal/ocr"
	"github.com/sputnik57/letter-mgt/internal/roster"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		prisonerIdx int
		firstName   string
		lastName    string
		idNumber    string
		code        string
		envelope    string
		text        string
		textFile    string
		returnAddr  string
		confidence  float64
		rawJSONFile string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a freshly scanned envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if textFile != "" {
				data, err := os.ReadFile(textFile)
				if err != nil {
					return fmt.Errorf("read OCR text file: %w", err)
				}
				text = string(data)
			}

			rawPath := ""
			if rawJSONFile != "" {
				blob, err := os.ReadFile(rawJSONFile)
				if err != nil {
					return fmt.Errorf("read raw annotation file: %w", err)
				}
				rawPath, err = ocr.NewSpool(cfg.OCRSpoolDir()).Save(blob)
				if err != nil {
					return err
				}
			}

			letter, err := store.AddLetter(cmd.Context(), letters.NewLetter{
				PrisonerIdx: prisonerIdx,
				Person: roster.Person{
					FirstName: firstName,
					LastName:  lastName,
					IDNumber:  idNumber,
				},
				OCR: ocr.Result{
					FullText:      text,
					ReturnAddress: returnAddr,
					Confidence:    confidence,
				},
				EnvelopeImagePath: envelope,
				RawOCRJSONPath:    rawPath,
				PrisonerCode:      code,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Letter %d recorded for prisoner_idx %d (code %s, scanned %s)\n",
				letter.ID, letter.PrisonerIdx, letter.PrisonerCode, letter.DateEnvLetterScanned)
			return nil
		},
	}

	cmd.Flags().IntVar(&prisonerIdx, "prisoner-idx", 0, "Roster row index of the matched person")
	cmd.Flags().StringVar(&firstName, "first", "", "First name (pseudonym fallback derivation)")
	cmd.Flags().StringVar(&lastName, "last", "", "Last name (pseudonym fallback derivation)")
	cmd.Flags().StringVar(&idNumber, "id-number", "", "Jurisdiction ID number (pseudonym fallback derivation)")
	cmd.Flags().StringVar(&code, "code", "", "Authoritative CPID from the roster; derived when omitted")
	cmd.Flags().StringVar(&envelope, "envelope", "", "Path to the scanned envelope image")
	cmd.Flags().StringVar(&text, "text", "", "Extracted OCR text")
	cmd.Flags().StringVar(&textFile, "text-file", "", "File holding the extracted OCR text")
	cmd.Flags().StringVar(&returnAddr, "return-address", "", "Return address read from the envelope")
	cmd.Flags().Float64Var(&confidence, "confidence", 0, "OCR confidence")
	cmd.Flags().StringVar(&rawJSONFile, "raw-annotation", "", "File holding the raw OCR annotation blob to spool")
	_ = cmd.MarkFlagRequired("prisoner-idx")

	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <letter-id>",
		Short: "Show one letter record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLetterID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			letter, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if letter == nil {
				return fmt.Errorf("no letter with id %d", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Letter %d\n", letter.ID)
			fmt.Fprintf(out, "  prisoner_idx:    %d\n", letter.PrisonerIdx)
			fmt.Fprintf(out, "  prisoner_code:   %s\n", letter.PrisonerCode)
			fmt.Fprintf(out, "  status:          %s\n", letter.ProcessingStatus.Display())
			fmt.Fprintf(out, "  scanned:         %s\n", letter.DateEnvLetterScanned)
			fmt.Fprintf(out, "  picked up:       %s\n", letter.DatePickedUpPO)
			fmt.Fprintf(out, "  postmarked:      %s\n", letter.DateLetterPostmarked)
			fmt.Fprintf(out, "  began response:  %s\n", letter.DateBeganResponse)
			fmt.Fprintf(out, "  finished:        %s\n", letter.DateFinishedResponse)
			fmt.Fprintf(out, "  envelope image:  %s\n", letter.EnvelopeImagePath)
			fmt.Fprintf(out, "  letter pages:    %s\n", letter.LetterPagesImagePath)
			fmt.Fprintf(out, "  return address:  %s\n", letter.ReturnAddress)
			fmt.Fprintf(out, "  step work:       %s\n", letter.StepWork)
			fmt.Fprintf(out, "  notes:           %s\n", letter.ProcessorNotes)
			fmt.Fprintf(out, "  updated:         %s\n", letter.UpdatedAt)
			return nil
		},
	}
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var prisonerIdx int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List letters, newest scan first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var items []*letters.Letter
			if cmd.Flags().Changed("prisoner-idx") {
				items, err = store.LettersForPrisoner(cmd.Context(), prisonerIdx)
			} else {
				items, err = store.ListAll(cmd.Context())
			}
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(items))
			for _, l := range items {
				rows = append(rows, []string{
					strconv.FormatInt(l.ID, 10),
					strconv.Itoa(l.PrisonerIdx),
					l.PrisonerCode,
					string(l.ProcessingStatus.Display()),
					l.DateEnvLetterScanned,
					l.DateFinishedResponse,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Idx", "Code", "Status", "Scanned", "Finished"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&prisonerIdx, "prisoner-idx", 0, "Only letters for this roster row index")
	return cmd
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var oldValue string

	cmd := &cobra.Command{
		Use:   "update <letter-id> <field> <value>",
		Short: "Update one field of a letter record",
		Long: "Update one field of a letter record. Business-date fields accept\n" +
			"YYYY-MM-DD or DDMmmYYYY input and are stored in the canonical layout;\n" +
			"anything unparseable is stored verbatim.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLetterID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			field, value := args[1], args[2]
			if field == "processing_status" {
				status, ok := letters.ParseStatus(value)
				if !ok {
					return fmt.Errorf("unknown status %q", value)
				}
				value = string(status)
			}
			if err := store.UpdateField(cmd.Context(), id, field, value, oldValue); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Letter %d: %s updated\n", id, field)
			return nil
		},
	}

	cmd.Flags().StringVar(&oldValue, "old", "", "Previous value to record in the audit trail")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var deleteFiles bool

	cmd := &cobra.Command{
		Use:   "delete <letter-id>",
		Short: "Delete a letter record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLetterID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.Delete(cmd.Context(), id, deleteFiles)
			if err != nil {
				return err
			}
			if !result.Deleted {
				return fmt.Errorf("no letter with id %d", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Letter %d deleted\n", id)
			for _, f := range result.Files {
				if f.Removed() {
					fmt.Fprintf(out, "  removed %s\n", f.Path)
				} else {
					fmt.Fprintf(out, "  could not remove %s: %v\n", f.Path, f.Err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&deleteFiles, "files", false, "Also remove the envelope and letter-pages files")
	return cmd
}

func parseLetterID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid letter id %q", arg)
	}
	return id, nil
}
