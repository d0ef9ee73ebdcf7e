package letters

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// LettersByDateRange returns letters whose named business-date field
// falls between start and end inclusive, ordered by that field. The
// bounds accept anything CanonicalDate does. Rows whose field is blank
// or holds a verbatim unparseable value are excluded.
func (s *Store) LettersByDateRange(ctx context.Context, start, end any, field string) ([]*Letter, error) {
	if !IsDateField(field) {
		return nil, fmt.Errorf("not a date field: %q", field)
	}

	startDate, err := ParseCanonicalDate(CanonicalDate(start))
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	endDate, err := ParseCanonicalDate(CanonicalDate(end))
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+letterColumns+` FROM letters WHERE `+field+` IS NOT NULL ORDER BY letter_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query date range: %w", err)
	}
	all, err := collectLetters(rows)
	if err != nil {
		return nil, err
	}

	// Canonical dates are compared parsed, not as text: DDMmmYYYY text
	// does not sort chronologically across months.
	type dated struct {
		letter *Letter
		when   time.Time
	}
	var matched []dated
	for _, letter := range all {
		when, err := ParseCanonicalDate(letter.dateField(field))
		if err != nil {
			continue
		}
		if when.Before(startDate) || when.After(endDate) {
			continue
		}
		matched = append(matched, dated{letter: letter, when: when})
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].when.Before(matched[j].when)
	})

	result := make([]*Letter, len(matched))
	for i, d := range matched {
		result[i] = d.letter
	}
	return result, nil
}

// StatusSummary reports per-status letter counts with earliest and
// latest scan dates, restricted to rows that have a scan date. Groups
// come back ordered by status name.
func (s *Store) StatusSummary(ctx context.Context) ([]*StatusGroup, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT processing_status, date_env_letter_scanned FROM letters
         WHERE date_env_letter_scanned IS NOT NULL AND date_env_letter_scanned != ''`,
	)
	if err != nil {
		return nil, fmt.Errorf("query status summary: %w", err)
	}
	defer rows.Close()

	type span struct {
		count    int
		earliest time.Time
		latest   time.Time
	}
	groups := make(map[Status]*span)
	for rows.Next() {
		var status Status
		var scanRaw string
		if err := rows.Scan(&status, &scanRaw); err != nil {
			return nil, err
		}
		scanned, err := ParseCanonicalDate(scanRaw)
		if err != nil {
			// Verbatim-stored malformed date; counts, but cannot bound the span.
			scanned = time.Time{}
		}
		g, ok := groups[status]
		if !ok {
			g = &span{earliest: scanned, latest: scanned}
			groups[status] = g
		}
		g.count++
		if !scanned.IsZero() {
			if g.earliest.IsZero() || scanned.Before(g.earliest) {
				g.earliest = scanned
			}
			if scanned.After(g.latest) {
				g.latest = scanned
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]*StatusGroup, 0, len(groups))
	for status, g := range groups {
		sg := &StatusGroup{Status: status, Count: g.count}
		if !g.earliest.IsZero() {
			sg.EarliestScan = g.earliest.Format(DateLayout)
		}
		if !g.latest.IsZero() {
			sg.LatestScan = g.latest.Format(DateLayout)
		}
		result = append(result, sg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Status < result[j].Status
	})
	return result, nil
}

// dateField returns the named business-date column of the record.
func (l *Letter) dateField(name string) string {
	switch name {
	case "date_picked_up_po":
		return l.DatePickedUpPO
	case "date_env_letter_scanned":
		return l.DateEnvLetterScanned
	case "date_letter_postmarked":
		return l.DateLetterPostmarked
	case "date_began_response":
		return l.DateBeganResponse
	case "date_finished_response":
		return l.DateFinishedResponse
	default:
		return ""
	}
}
