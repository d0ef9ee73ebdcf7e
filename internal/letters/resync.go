package letters

import (
	"context"
	"fmt"
	"time"

	"github.com/sputnik57/letter-mgt/internal/roster"
)

// Resync overwrites each letter's denormalized prisoner_code with the
// authoritative pseudonym from the supplied roster snapshot.
//
// For every letter whose prisoner_idx exists in the roster, the CPID
// field is preferred; an empty or placeholder CPID falls back to the
// legacy code field; if neither resolves the row is skipped. Letters
// referencing rows outside the roster are left untouched — stale state
// is accepted, not an error. A failing row is recorded in the report and
// the batch continues.
//
// Updates are direct bulk writes that refresh updated_at but do not add
// per-row audit entries, unlike UpdateField. The report is the visible
// record of the batch.
func (s *Store) Resync(ctx context.Context, r roster.Roster) (*ResyncReport, error) {
	ctx = ensureContext(ctx)

	rows, err := s.db.QueryContext(ctx, `SELECT letter_id, prisoner_idx, prisoner_code FROM letters ORDER BY letter_id`)
	if err != nil {
		return nil, fmt.Errorf("query letters for resync: %w", err)
	}
	type row struct {
		id      int64
		idx     int
		oldCode string
	}
	var current []row
	for rows.Next() {
		var rec row
		if err := rows.Scan(&rec.id, &rec.idx, &rec.oldCode); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan letter row: %w", err)
		}
		current = append(current, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	report := &ResyncReport{Examined: len(current)}
	timestamp := auditTimestamp(time.Now())

	for _, rec := range current {
		if !r.Has(rec.idx) {
			report.Skipped++
			continue
		}
		code, ok := resolvePseudonym(r, rec.idx)
		if !ok || code == rec.oldCode {
			report.Skipped++
			continue
		}
		_, err := s.execWithRetry(
			ctx,
			`UPDATE letters SET prisoner_code = ?, updated_at = ? WHERE letter_id = ?`,
			code,
			timestamp,
			rec.id,
		)
		if err != nil {
			report.Failures = append(report.Failures, RowFailure{LetterID: rec.id, Err: err})
			continue
		}
		report.Updated++
	}

	s.logger.Info("pseudonym resync complete",
		"examined", report.Examined,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failures", len(report.Failures))
	return report, nil
}

// resolvePseudonym picks the authoritative pseudonym for a roster row:
// CPID first, legacy code second.
func resolvePseudonym(r roster.Roster, idx int) (string, bool) {
	if v := r.Field(idx, roster.FieldCPID); v.Present() {
		return v.String(), true
	}
	if v := r.Field(idx, roster.FieldCode); v.Present() {
		return v.String(), true
	}
	return "", false
}
