// Package roster models the external person table consumed by the
// reconciliation engine.
//
// The roster is maintained outside this system (rows added, removed,
// re-sorted) and is the ground truth for a person's pseudonym. Letters
// reference people by row position at scan time, so the core only ever
// reads the roster through the capability interface here, always from an
// explicitly passed snapshot. Field access is tri-state — present, empty,
// or absent — so spreadsheet NaN markers never leak into callers.
package roster

import "strings"

// Well-known roster field names.
const (
	FieldFirstName = "fName"
	FieldLastName  = "lName"
	FieldIDNumber  = "CDCRno"
	FieldCPID      = "CPID"
	FieldCode      = "code"
)

// Roster is a read-only view of the person table keyed by row position.
type Roster interface {
	// Has reports whether the row index exists in the current snapshot.
	Has(idx int) bool
	// Field returns the value of a named column for a row. Rows or
	// columns outside the snapshot yield an absent Value.
	Field(idx int, name string) Value
}

// Value is the tri-state result of a roster field lookup.
type Value struct {
	text string
	ok   bool
}

// Absent marks a missing row or column.
func Absent() Value { return Value{} }

// Of normalizes a raw cell into a Value. Blank cells and the spreadsheet
// "nan" placeholder count as empty.
func Of(text string) Value {
	if strings.TrimSpace(text) == "" || strings.EqualFold(strings.TrimSpace(text), "nan") {
		return Value{ok: true}
	}
	return Value{text: text, ok: true}
}

// Present reports whether the field exists and holds a usable value.
func (v Value) Present() bool { return v.ok && v.text != "" }

// Empty reports whether the field exists but holds no usable value.
func (v Value) Empty() bool { return v.ok && v.text == "" }

// IsAbsent reports whether the row or column does not exist.
func (v Value) IsAbsent() bool { return !v.ok }

// String returns the raw value, or "" for empty and absent fields.
func (v Value) String() string { return v.text }

// Person is a point-in-time snapshot of one roster row, captured when a
// letter is scanned. It feeds the pseudonym fallback derivation.
type Person struct {
	FirstName string
	LastName  string
	IDNumber  string
}

// PersonAt snapshots the name and ID fields of a roster row. Missing
// fields come back as empty strings; the pseudonym codec pads for them.
func PersonAt(r Roster, idx int) Person {
	return Person{
		FirstName: r.Field(idx, FieldFirstName).String(),
		LastName:  r.Field(idx, FieldLastName).String(),
		IDNumber:  r.Field(idx, FieldIDNumber).String(),
	}
}
