package letters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sputnik57/letter-mgt/internal/cpid"
	"github.com/sputnik57/letter-mgt/internal/ocr"
	"github.com/sputnik57/letter-mgt/internal/roster"
)

// NewLetter carries the inputs for one envelope scan.
type NewLetter struct {
	PrisonerIdx int
	// Person is the roster row snapshot at scan time, used only for the
	// pseudonym fallback derivation.
	Person roster.Person
	OCR    ocr.Result
	// EnvelopeImagePath and RawOCRJSONPath point into external storage;
	// the store records them verbatim.
	EnvelopeImagePath string
	RawOCRJSONPath    string
	// PrisonerCode, when set, is stored as-is (authoritative CPID from
	// the live roster). When empty the code is derived from Person.
	PrisonerCode string
}

// AddLetter inserts a letter record for a freshly scanned envelope,
// stamping the scan date from the clock and writing the letter_added
// audit entry in the same transaction.
func (s *Store) AddLetter(ctx context.Context, nl NewLetter) (*Letter, error) {
	code := nl.PrisonerCode
	if code == "" {
		code = cpid.Derive(nl.Person.FirstName, nl.Person.LastName, nl.Person.IDNumber)
	}

	now := time.Now()
	scanDate := now.Format(DateLayout)
	timestamp := auditTimestamp(now)

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO letters (
                prisoner_idx, prisoner_code, envelope_image_path,
                date_env_letter_scanned, ocr_text, ocr_confidence,
                return_address, raw_ocr_json_path, processing_status,
                created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			nl.PrisonerIdx,
			code,
			nullableString(nl.EnvelopeImagePath),
			scanDate,
			nl.OCR.FullText,
			nl.OCR.Confidence,
			nl.OCR.ReturnAddress,
			nullableString(nl.RawOCRJSONPath),
			StatusScanned,
			timestamp,
			timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert letter: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return s.insertAudit(ctx, tx, timestamp, ActionLetterAdded, id,
			"envelope_scanned", "", "Letter envelope scanned on "+scanDate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("letter added", "letter_id", id, "prisoner_idx", nl.PrisonerIdx, "prisoner_code", code)
	return s.GetByID(ctx, id)
}

// GetByID fetches a letter by identifier, returning (nil, nil) when no
// row matches.
func (s *Store) GetByID(ctx context.Context, id int64) (*Letter, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+letterColumns+` FROM letters WHERE letter_id = ?`, id)
	letter, err := scanLetter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get letter: %w", err)
	}
	return letter, nil
}

// UpdateField writes one column of a letter record, refreshing
// updated_at and appending the field_updated audit entry in the same
// transaction. Business-date fields are normalized into the canonical
// layout; unparseable date strings are stored verbatim rather than
// rejected. The value's type is otherwise trusted to match the column.
func (s *Store) UpdateField(ctx context.Context, id int64, field string, newValue any, oldValue string) error {
	if _, ok := updatableFields[field]; !ok {
		return fmt.Errorf("unknown letter field %q", field)
	}

	if IsDateField(field) && newValue != nil {
		newValue = CanonicalDate(newValue)
	}

	timestamp := auditTimestamp(time.Now())
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// field is validated against the column whitelist above; values
		// always bind through placeholders.
		if _, err := tx.ExecContext(
			ctx,
			`UPDATE letters SET `+field+` = ?, updated_at = ? WHERE letter_id = ?`,
			newValue,
			timestamp,
			id,
		); err != nil {
			return fmt.Errorf("update %s: %w", field, err)
		}
		return s.insertAudit(ctx, tx, timestamp, ActionFieldUpdated, id,
			field, oldValue, fmt.Sprint(newValue))
	})
	if err != nil {
		return err
	}

	s.logger.Debug("letter field updated", "letter_id", id, "field", field)
	return nil
}

// LettersForPrisoner returns all letters referencing a roster row index,
// newest scan date first.
func (s *Store) LettersForPrisoner(ctx context.Context, prisonerIdx int) ([]*Letter, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+letterColumns+` FROM letters WHERE prisoner_idx = ? ORDER BY letter_id`,
		prisonerIdx,
	)
	if err != nil {
		return nil, fmt.Errorf("query letters for prisoner: %w", err)
	}
	items, err := collectLetters(rows)
	if err != nil {
		return nil, err
	}
	sortByScanDateDesc(items)
	return items, nil
}

// ListAll returns every letter record, newest scan date first.
func (s *Store) ListAll(ctx context.Context) ([]*Letter, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+letterColumns+` FROM letters ORDER BY letter_id`)
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	items, err := collectLetters(rows)
	if err != nil {
		return nil, err
	}
	sortByScanDateDesc(items)
	return items, nil
}

// Delete removes a letter row, always writing the letter_deleted audit
// entry with it. With deleteFiles set, the referenced envelope and pages
// files are removed best-effort after the row is gone: per-file outcomes
// land in the result, failures are logged, and nothing blocks the
// deletion itself.
func (s *Store) Delete(ctx context.Context, id int64, deleteFiles bool) (*DeleteResult, error) {
	var envelopePath, pagesPath sql.NullString
	err := s.db.QueryRowContext(
		ctx,
		`SELECT envelope_image_path, letter_pages_image_path FROM letters WHERE letter_id = ?`,
		id,
	).Scan(&envelopePath, &pagesPath)
	if errors.Is(err, sql.ErrNoRows) {
		return &DeleteResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch letter paths: %w", err)
	}

	timestamp := auditTimestamp(time.Now())
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM letters WHERE letter_id = ?`, id); err != nil {
			return fmt.Errorf("delete letter: %w", err)
		}
		return s.insertAudit(ctx, tx, timestamp, ActionLetterDeleted, id, "", "", "deleted")
	})
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{Deleted: true}
	if deleteFiles {
		for _, path := range []string{envelopePath.String, pagesPath.String} {
			if path == "" {
				continue
			}
			removeErr := os.Remove(path)
			if errors.Is(removeErr, fs.ErrNotExist) {
				removeErr = nil
			}
			if removeErr != nil {
				s.logger.Warn("letter file removal failed", "letter_id", id, "path", path, "error", removeErr)
			}
			result.Files = append(result.Files, FileRemoval{Path: path, Err: removeErr})
		}
	}

	s.logger.Info("letter deleted", "letter_id", id, "delete_files", deleteFiles)
	return result, nil
}
