package letters

import (
	"database/sql"
	"sort"
	"time"
)

const letterColumns = "letter_id, prisoner_idx, prisoner_code, step_work, envelope_image_path, letter_pages_image_path, date_picked_up_po, date_env_letter_scanned, date_letter_postmarked, date_began_response, date_finished_response, ocr_text, ocr_confidence, return_address, processing_status, processor_notes, raw_ocr_json_path, created_at, updated_at"

func scanLetter(scanner interface{ Scan(dest ...any) error }) (*Letter, error) {
	var (
		id            int64
		prisonerIdx   int
		prisonerCode  string
		stepWork      sql.NullString
		envelopePath  sql.NullString
		pagesPath     sql.NullString
		datePickedUp  sql.NullString
		dateScanned   sql.NullString
		datePostmark  sql.NullString
		dateBegan     sql.NullString
		dateFinished  sql.NullString
		ocrText       sql.NullString
		ocrConfidence sql.NullFloat64
		returnAddr    sql.NullString
		status        sql.NullString
		notes         sql.NullString
		rawOCRPath    sql.NullString
		createdAt     sql.NullString
		updatedAt     sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&prisonerIdx,
		&prisonerCode,
		&stepWork,
		&envelopePath,
		&pagesPath,
		&datePickedUp,
		&dateScanned,
		&datePostmark,
		&dateBegan,
		&dateFinished,
		&ocrText,
		&ocrConfidence,
		&returnAddr,
		&status,
		&notes,
		&rawOCRPath,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	return &Letter{
		ID:                   id,
		PrisonerIdx:          prisonerIdx,
		PrisonerCode:         prisonerCode,
		StepWork:             stepWork.String,
		EnvelopeImagePath:    envelopePath.String,
		LetterPagesImagePath: pagesPath.String,
		DatePickedUpPO:       datePickedUp.String,
		DateEnvLetterScanned: dateScanned.String,
		DateLetterPostmarked: datePostmark.String,
		DateBeganResponse:    dateBegan.String,
		DateFinishedResponse: dateFinished.String,
		OCRText:              ocrText.String,
		OCRConfidence:        ocrConfidence.Float64,
		ReturnAddress:        returnAddr.String,
		ProcessingStatus:     Status(status.String),
		ProcessorNotes:       notes.String,
		RawOCRJSONPath:       rawOCRPath.String,
		CreatedAt:            createdAt.String,
		UpdatedAt:            updatedAt.String,
	}, nil
}

func collectLetters(rows *sql.Rows) ([]*Letter, error) {
	defer rows.Close()
	var items []*Letter
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, letter)
	}
	return items, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// sortByScanDateDesc orders newest scan date first. Rows whose scan date
// is blank or stored verbatim sort last; ties keep insertion order.
func sortByScanDateDesc(items []*Letter) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].scanDate().After(items[j].scanDate())
	})
}

func auditTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
