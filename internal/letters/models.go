package letters

import (
	"strings"
	"time"
)

// Status represents the processing stage of a letter. Transitions are
// plain field writes; the store does not reject out-of-order stages.
type Status string

const (
	StatusScanned           Status = "scanned"
	StatusReviewed          Status = "reviewed"
	StatusResponseStarted   Status = "response_started"
	StatusResponseCompleted Status = "response_completed"
	StatusPrinted           Status = "printed"
	StatusMailed            Status = "mailed"
)

// legacyStatusSent survives in rows written by earlier versions. It is
// normalized to mailed at display time only, never rewritten in storage.
const legacyStatusSent Status = "sent"

var allStatuses = []Status{
	StatusScanned,
	StatusReviewed,
	StatusResponseStarted,
	StatusResponseCompleted,
	StatusPrinted,
	StatusMailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of workflow statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status. The legacy "sent"
// value parses to mailed.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == legacyStatusSent {
		return StatusMailed, true
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Display returns the status as shown to operators, folding the legacy
// "sent" value into mailed.
func (s Status) Display() Status {
	if s == legacyStatusSent {
		return StatusMailed
	}
	return s
}

// Letter is one tracked scanned envelope/letter and its processing
// metadata. Date fields hold the canonical DDMmmYYYY text layout;
// CreatedAt/UpdatedAt hold the audit timestamp layout.
type Letter struct {
	ID                   int64
	PrisonerIdx          int
	PrisonerCode         string
	StepWork             string
	EnvelopeImagePath    string
	LetterPagesImagePath string
	DatePickedUpPO       string
	DateEnvLetterScanned string
	DateLetterPostmarked string
	DateBeganResponse    string
	DateFinishedResponse string
	OCRText              string
	OCRConfidence        float64
	ReturnAddress        string
	ProcessingStatus     Status
	ProcessorNotes       string
	RawOCRJSONPath       string
	CreatedAt            string
	UpdatedAt            string
}

// AuditEntry is one immutable row of the append-only change history.
type AuditEntry struct {
	LogID        int64
	Timestamp    string
	Action       string
	LetterID     int64
	FieldChanged string
	OldValue     string
	NewValue     string
	Details      string
	CreatedAt    string
}

// Audit action tags.
const (
	ActionLetterAdded   = "letter_added"
	ActionFieldUpdated  = "field_updated"
	ActionLetterDeleted = "letter_deleted"
)

// StatusGroup aggregates letters sharing a processing status.
type StatusGroup struct {
	Status       Status
	Count        int
	EarliestScan string
	LatestScan   string
}

// FileRemoval records the outcome of one best-effort file deletion
// performed while removing a letter row.
type FileRemoval struct {
	Path string
	Err  error
}

// Removed reports whether the file was actually deleted.
func (f FileRemoval) Removed() bool { return f.Err == nil }

// DeleteResult reports the outcome of a Delete call. File failures never
// block row deletion; they are surfaced here and logged, nothing more.
type DeleteResult struct {
	Deleted bool
	Files   []FileRemoval
}

// RowFailure records a single letter that could not be processed during
// a bulk resync. The batch continues past it.
type RowFailure struct {
	LetterID int64
	Err      error
}

// ResyncReport is the explicit outcome of one reconciliation pass.
type ResyncReport struct {
	// Examined counts all letter rows considered.
	Examined int
	// Updated counts rows whose prisoner_code actually changed.
	Updated int
	// Skipped counts rows left untouched: roster row missing, pseudonym
	// unresolvable, or value already current.
	Skipped int
	// Failures records rows whose update failed; the batch continued.
	Failures []RowFailure
}

// dateFields enumerates the five business-date columns whose values are
// normalized into the canonical layout on update.
var dateFields = map[string]struct{}{
	"date_picked_up_po":       {},
	"date_env_letter_scanned": {},
	"date_letter_postmarked":  {},
	"date_began_response":     {},
	"date_finished_response":  {},
}

// IsDateField reports whether a column holds a canonical business date.
func IsDateField(name string) bool {
	_, ok := dateFields[name]
	return ok
}

// updatableFields whitelists the columns UpdateField may touch. Column
// names reach SQL as identifiers, so they are never taken from raw input.
var updatableFields = map[string]struct{}{
	"prisoner_idx":            {},
	"prisoner_code":           {},
	"step_work":               {},
	"envelope_image_path":     {},
	"letter_pages_image_path": {},
	"date_picked_up_po":       {},
	"date_env_letter_scanned": {},
	"date_letter_postmarked":  {},
	"date_began_response":     {},
	"date_finished_response":  {},
	"ocr_text":                {},
	"ocr_confidence":          {},
	"return_address":          {},
	"processing_status":       {},
	"processor_notes":         {},
	"raw_ocr_json_path":       {},
}

// scanDate exposes the record's scan date parsed for ordering, with a
// zero time for blank or verbatim-stored unparseable values.
func (l *Letter) scanDate() time.Time {
	t, err := ParseCanonicalDate(l.DateEnvLetterScanned)
	if err != nil {
		return time.Time{}
	}
	return t
}
