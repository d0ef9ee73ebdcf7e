package letters

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical business-date text layout, e.g. 21Sep2025.
	DateLayout = "02Jan2006"
	// TimestampLayout is the audit timestamp layout.
	TimestampLayout = "2006-01-02 15:04:05"
	// isoDateLayout is accepted on input for date fields.
	isoDateLayout = "2006-01-02"
)

// CanonicalDate renders a date-field input in the canonical layout.
// time.Time values format directly; strings are parsed as ISO dates or
// already-canonical dates and re-rendered; anything unparseable is
// returned verbatim so a write never fails on a malformed date. Other
// value types stringify via fmt.
func CanonicalDate(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return v
		}
		if t, err := time.Parse(isoDateLayout, trimmed); err == nil {
			return t.Format(DateLayout)
		}
		if t, err := time.Parse(DateLayout, trimmed); err == nil {
			return t.Format(DateLayout)
		}
		return v
	default:
		return CanonicalDate(fmt.Sprint(v))
	}
}

// ParseCanonicalDate parses a canonical-layout business date.
func ParseCanonicalDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}
