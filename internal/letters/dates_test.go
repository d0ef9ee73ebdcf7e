package letters_test

import (
	"testing"
	"time"

	"github.com/sputnik57/letter-mgt/internal/letters"
)

func TestCanonicalDate(t *testing.T) {
	when := time.Date(2025, time.September, 21, 14, 5, 0, 0, time.UTC)
	cases := []struct {
		name  string
		input any
		want  string
	}{
		{"time value", when, "21Sep2025"},
		{"time pointer", &when, "21Sep2025"},
		{"zero time", time.Time{}, ""},
		{"iso string", "2025-09-21", "21Sep2025"},
		{"already canonical", "21Sep2025", "21Sep2025"},
		{"unparseable verbatim", "next tuesday", "next tuesday"},
		{"blank string", "", ""},
		{"nil", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := letters.CanonicalDate(tc.input); got != tc.want {
				t.Fatalf("CanonicalDate(%v) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseCanonicalDate(t *testing.T) {
	when, err := letters.ParseCanonicalDate("02Oct2025")
	if err != nil {
		t.Fatalf("ParseCanonicalDate: %v", err)
	}
	if when.Day() != 2 || when.Month() != time.October || when.Year() != 2025 {
		t.Fatalf("parsed wrong date: %v", when)
	}
	if _, err := letters.ParseCanonicalDate("2025-10-02"); err == nil {
		t.Fatal("expected error for non-canonical layout")
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		want  letters.Status
		ok    bool
	}{
		{"scanned", letters.StatusScanned, true},
		{" Mailed ", letters.StatusMailed, true},
		{"sent", letters.StatusMailed, true},
		{"response_started", letters.StatusResponseStarted, true},
		{"unknown", "", false},
	}
	for _, tc := range cases {
		got, ok := letters.ParseStatus(tc.input)
		if ok != tc.ok {
			t.Errorf("ParseStatus(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestStatusDisplayFoldsLegacySent(t *testing.T) {
	if got := letters.Status("sent").Display(); got != letters.StatusMailed {
		t.Fatalf("Display(sent) = %q, want mailed", got)
	}
	if got := letters.StatusScanned.Display(); got != letters.StatusScanned {
		t.Fatalf("Display(scanned) = %q", got)
	}
}
