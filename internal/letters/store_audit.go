package letters

import (
	"context"
	"database/sql"
	"fmt"
)

const auditColumns = "log_id, timestamp, action, letter_id, field_changed, old_value, new_value, details, created_at"

// insertAudit appends one change-history row inside the caller's
// transaction. Audit rows are never updated or deleted.
func (s *Store) insertAudit(ctx context.Context, tx *sql.Tx, timestamp, action string, letterID int64, field, oldValue, newValue string) error {
	details := action
	if field != "" {
		details = "Updated " + field
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO audit_log (timestamp, action, letter_id, field_changed, old_value, new_value, details)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		timestamp,
		action,
		letterID,
		field,
		oldValue,
		newValue,
		details,
	); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func scanAudit(scanner interface{ Scan(dest ...any) error }) (*AuditEntry, error) {
	var (
		entry    AuditEntry
		letterID sql.NullInt64
		field    sql.NullString
		oldValue sql.NullString
		newValue sql.NullString
		details  sql.NullString
		created  sql.NullString
	)
	if err := scanner.Scan(
		&entry.LogID,
		&entry.Timestamp,
		&entry.Action,
		&letterID,
		&field,
		&oldValue,
		&newValue,
		&details,
		&created,
	); err != nil {
		return nil, err
	}
	entry.LetterID = letterID.Int64
	entry.FieldChanged = field.String
	entry.OldValue = oldValue.String
	entry.NewValue = newValue.String
	entry.Details = details.String
	entry.CreatedAt = created.String
	return &entry, nil
}

func (s *Store) queryAudit(ctx context.Context, query string, args ...any) ([]*AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []*AuditEntry
	for rows.Next() {
		entry, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AuditTrail returns the change history of one letter in chronological
// order. The trail of a deleted letter ends with its letter_deleted entry.
func (s *Store) AuditTrail(ctx context.Context, letterID int64) ([]*AuditEntry, error) {
	return s.queryAudit(
		ctx,
		`SELECT `+auditColumns+` FROM audit_log WHERE letter_id = ? ORDER BY log_id`,
		letterID,
	)
}

// RecentAudit returns the newest audit entries across all letters,
// most recent first.
func (s *Store) RecentAudit(ctx context.Context, limit int) ([]*AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.queryAudit(
		ctx,
		`SELECT `+auditColumns+` FROM audit_log ORDER BY log_id DESC LIMIT ?`,
		limit,
	)
}
