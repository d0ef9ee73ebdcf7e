package letters_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/sputnik57/letter-mgt/internal/cpid"
	"github.com/sputnik57/letter-mgt/internal/letters"
	"github.com/sputnik57/letter-mgt/internal/ocr"
	"github.com/sputnik57/letter-mgt/internal/roster"
	"github.com/sputnik57/letter-mgt/internal/testsupport"
)

var canonicalDate = regexp.MustCompile(`^\d{2}[A-Za-z]{3}\d{4}$`)

func annLee() roster.Person {
	return roster.Person{FirstName: "Ann", LastName: "Lee", IDNumber: "C345678"}
}

func TestAddLetterRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	letter, err := store.AddLetter(ctx, letters.NewLetter{
		PrisonerIdx: 2,
		Person:      annLee(),
		OCR: ocr.Result{
			FullText:      "Dear volunteer,",
			ReturnAddress: "PO Box 100",
			Confidence:    0.88,
		},
		EnvelopeImagePath: "/storage/envelopes/e1.png",
		PrisonerCode:      "ZZZ999",
	})
	if err != nil {
		t.Fatalf("AddLetter: %v", err)
	}
	if letter.ID == 0 {
		t.Fatal("expected letter ID to be assigned")
	}

	fetched, err := store.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched == nil {
		t.Fatal("letter not found after insert")
	}
	if fetched.ProcessingStatus != letters.StatusScanned {
		t.Fatalf("status = %q, want scanned", fetched.ProcessingStatus)
	}
	if fetched.PrisonerCode != "ZZZ999" {
		t.Fatalf("supplied pseudonym not stored as-is: %q", fetched.PrisonerCode)
	}
	if !canonicalDate.MatchString(fetched.DateEnvLetterScanned) {
		t.Fatalf("scan date %q not in canonical layout", fetched.DateEnvLetterScanned)
	}
	if fetched.OCRText != "Dear volunteer," || fetched.ReturnAddress != "PO Box 100" {
		t.Fatalf("OCR payload not copied: %#v", fetched)
	}
	if fetched.OCRConfidence != 0.88 {
		t.Fatalf("confidence = %v", fetched.OCRConfidence)
	}
}

func TestAddLetterDerivesPseudonym(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	letter := testsupport.AddLetter(t, store, 2, annLee(), "")
	want := cpid.Derive("Ann", "Lee", "C345678")
	if letter.PrisonerCode != want {
		t.Fatalf("derived code = %q, want %q", letter.PrisonerCode, want)
	}
	if letter.PrisonerCode != "BMX789" {
		t.Fatalf("codec drifted from documented derivation: %q", letter.PrisonerCode)
	}
}

func TestGetByIDAbsent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	letter, err := store.GetByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if letter != nil {
		t.Fatalf("expected nil for absent id, got %#v", letter)
	}
}

func TestUpdateFieldNormalizesDates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	letter := testsupport.AddLetter(t, store, 1, annLee(), "")

	// A time.Time input lands in canonical layout.
	began := time.Date(2025, time.September, 21, 10, 30, 0, 0, time.UTC)
	if err := store.UpdateField(ctx, letter.ID, "date_began_response", began, ""); err != nil {
		t.Fatalf("UpdateField(time.Time): %v", err)
	}
	got, err := store.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.DateBeganResponse != "21Sep2025" {
		t.Fatalf("date from time.Time = %q, want 21Sep2025", got.DateBeganResponse)
	}

	// An ISO string input is re-rendered.
	if err := store.UpdateField(ctx, letter.ID, "date_finished_response", "2025-10-02", ""); err != nil {
		t.Fatalf("UpdateField(string): %v", err)
	}
	got, err = store.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.DateFinishedResponse != "02Oct2025" {
		t.Fatalf("date from string = %q, want 02Oct2025", got.DateFinishedResponse)
	}

	// Unparseable input is stored verbatim, not rejected.
	if err := store.UpdateField(ctx, letter.ID, "date_letter_postmarked", "sometime last week", ""); err != nil {
		t.Fatalf("UpdateField(verbatim): %v", err)
	}
	got, err = store.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.DateLetterPostmarked != "sometime last week" {
		t.Fatalf("malformed date not stored verbatim: %q", got.DateLetterPostmarked)
	}
}

func TestUpdateFieldRefreshesUpdatedAt(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	letter := testsupport.AddLetter(t, store, 1, annLee(), "")

	if err := store.UpdateField(ctx, letter.ID, "processor_notes", "asked about visitation", ""); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	got, err := store.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProcessorNotes != "asked about visitation" {
		t.Fatalf("notes = %q", got.ProcessorNotes)
	}
	if _, err := time.Parse(letters.TimestampLayout, got.UpdatedAt); err != nil {
		t.Fatalf("updated_at %q not in timestamp layout: %v", got.UpdatedAt, err)
	}
}

func TestUpdateFieldRejectsUnknownColumn(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	letter := testsupport.AddLetter(t, store, 1, annLee(), "")

	err := store.UpdateField(context.Background(), letter.ID, "letters; DROP TABLE letters", "x", "")
	if err == nil {
		t.Fatal("expected rejection of unknown column name")
	}
}

func TestStatusTransitionsAreDirectWrites(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	letter := testsupport.AddLetter(t, store, 1, annLee(), "")

	// Out-of-order transitions are not rejected.
	if err := store.UpdateField(ctx, letter.ID, "processing_status", string(letters.StatusMailed), string(letters.StatusScanned)); err != nil {
		t.Fatalf("UpdateField(status): %v", err)
	}
	got, err := store.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProcessingStatus != letters.StatusMailed {
		t.Fatalf("status = %q", got.ProcessingStatus)
	}
}

func TestListOrdering(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	older := testsupport.AddLetter(t, store, 4, annLee(), "")
	newer := testsupport.AddLetter(t, store, 4, annLee(), "")
	other := testsupport.AddLetter(t, store, 9, annLee(), "")

	if err := store.UpdateField(ctx, older.ID, "date_env_letter_scanned", "2025-01-15", ""); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	if err := store.UpdateField(ctx, newer.ID, "date_env_letter_scanned", "2025-03-02", ""); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	if err := store.UpdateField(ctx, other.ID, "date_env_letter_scanned", "2025-02-01", ""); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}

	forPrisoner, err := store.LettersForPrisoner(ctx, 4)
	if err != nil {
		t.Fatalf("LettersForPrisoner: %v", err)
	}
	if len(forPrisoner) != 2 {
		t.Fatalf("expected 2 letters for prisoner 4, got %d", len(forPrisoner))
	}
	if forPrisoner[0].ID != newer.ID || forPrisoner[1].ID != older.ID {
		t.Fatalf("wrong order: %d then %d", forPrisoner[0].ID, forPrisoner[1].ID)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 letters, got %d", len(all))
	}
	if all[0].ID != newer.ID || all[1].ID != other.ID || all[2].ID != older.ID {
		t.Fatalf("wrong order: %d, %d, %d", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestDeleteWithMissingFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	letter := testsupport.AddLetter(t, store, 1, annLee(), "")

	// Paths point nowhere; deletion must still succeed and audit.
	result, err := store.Delete(ctx, letter.ID, true)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !result.Deleted {
		t.Fatal("expected row deletion to succeed")
	}
	for _, f := range result.Files {
		if !f.Removed() {
			t.Fatalf("missing file should not surface as failure: %v", f.Err)
		}
	}

	gone, err := store.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gone != nil {
		t.Fatal("letter still present after delete")
	}

	trail, err := store.AuditTrail(ctx, letter.ID)
	if err != nil {
		t.Fatalf("AuditTrail: %v", err)
	}
	if len(trail) == 0 || trail[len(trail)-1].Action != letters.ActionLetterDeleted {
		t.Fatalf("expected trailing letter_deleted entry, got %#v", trail)
	}
}

func TestDeleteRemovesRealFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	dir := t.TempDir()
	envelope := filepath.Join(dir, "envelope.png")
	pages := filepath.Join(dir, "pages.pdf")
	for _, p := range []string{envelope, pages} {
		if err := os.WriteFile(p, []byte("blob"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	letter, err := store.AddLetter(ctx, letters.NewLetter{
		PrisonerIdx:       3,
		Person:            annLee(),
		EnvelopeImagePath: envelope,
	})
	if err != nil {
		t.Fatalf("AddLetter: %v", err)
	}
	if err := store.UpdateField(ctx, letter.ID, "letter_pages_image_path", pages, ""); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}

	result, err := store.Delete(ctx, letter.ID, true)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !result.Deleted || len(result.Files) != 2 {
		t.Fatalf("unexpected result: %#v", result)
	}
	for _, p := range []string{envelope, pages} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("file %s not removed", p)
		}
	}
}

func TestDeleteAbsentRow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	result, err := store.Delete(context.Background(), 9999, false)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if result.Deleted {
		t.Fatal("expected Deleted=false for absent row")
	}
}

func TestAuditTrailLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	letter := testsupport.AddLetter(t, store, 1, annLee(), "")

	if err := store.UpdateField(ctx, letter.ID, "processor_notes", "first reply drafted", ""); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	if _, err := store.Delete(ctx, letter.ID, false); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	trail, err := store.AuditTrail(ctx, letter.ID)
	if err != nil {
		t.Fatalf("AuditTrail: %v", err)
	}
	if len(trail) != 3 {
		t.Fatalf("expected 3 audit entries, got %d", len(trail))
	}
	wantActions := []string{
		letters.ActionLetterAdded,
		letters.ActionFieldUpdated,
		letters.ActionLetterDeleted,
	}
	for i, want := range wantActions {
		if trail[i].Action != want {
			t.Fatalf("entry %d action = %q, want %q", i, trail[i].Action, want)
		}
	}
	if trail[1].FieldChanged != "processor_notes" || trail[1].NewValue != "first reply drafted" {
		t.Fatalf("field_updated entry wrong: %#v", trail[1])
	}
}

func TestRecentAudit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	a := testsupport.AddLetter(t, store, 1, annLee(), "")
	b := testsupport.AddLetter(t, store, 2, annLee(), "")

	entries, err := store.RecentAudit(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentAudit: %v", err)
	}
	if len(entries) != 1 || entries[0].LetterID != b.ID {
		t.Fatalf("expected newest entry for letter %d, got %#v", b.ID, entries)
	}
	_ = a
}

func TestStatusSummary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	mailed := testsupport.AddLetter(t, store, 1, annLee(), "")
	scanned := testsupport.AddLetter(t, store, 2, annLee(), "")
	if err := store.UpdateField(ctx, mailed.ID, "processing_status", string(letters.StatusMailed), ""); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	if err := store.UpdateField(ctx, mailed.ID, "date_env_letter_scanned", "2025-01-10", ""); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	if err := store.UpdateField(ctx, scanned.ID, "date_env_letter_scanned", "2025-02-20", ""); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}

	summary, err := store.StatusSummary(ctx)
	if err != nil {
		t.Fatalf("StatusSummary: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(summary))
	}
	byStatus := map[letters.Status]*letters.StatusGroup{}
	for _, g := range summary {
		byStatus[g.Status] = g
	}
	m := byStatus[letters.StatusMailed]
	if m == nil || m.Count != 1 || m.EarliestScan != "10Jan2025" || m.LatestScan != "10Jan2025" {
		t.Fatalf("mailed group wrong: %#v", m)
	}
	sc := byStatus[letters.StatusScanned]
	if sc == nil || sc.Count != 1 || sc.EarliestScan != "20Feb2025" || sc.LatestScan != "20Feb2025" {
		t.Fatalf("scanned group wrong: %#v", sc)
	}
}

func TestLettersByDateRange(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	jan := testsupport.AddLetter(t, store, 1, annLee(), "")
	feb := testsupport.AddLetter(t, store, 2, annLee(), "")
	dec := testsupport.AddLetter(t, store, 3, annLee(), "")
	for id, date := range map[int64]string{
		jan.ID: "2025-01-15",
		feb.ID: "2025-02-10",
		dec.ID: "2024-12-25",
	} {
		if err := store.UpdateField(ctx, id, "date_env_letter_scanned", date, ""); err != nil {
			t.Fatalf("UpdateField: %v", err)
		}
	}

	// Inclusive bounds; the December row falls outside.
	got, err := store.LettersByDateRange(ctx, "2025-01-15", "2025-02-10", "date_env_letter_scanned")
	if err != nil {
		t.Fatalf("LettersByDateRange: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 letters in range, got %d", len(got))
	}
	if got[0].ID != jan.ID || got[1].ID != feb.ID {
		t.Fatalf("wrong order: %d, %d", got[0].ID, got[1].ID)
	}

	if _, err := store.LettersByDateRange(ctx, "2025-01-01", "2025-02-01", "processor_notes"); err == nil {
		t.Fatal("expected rejection of non-date field")
	}
}

func TestSchemaVersionGuard(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.AddLetter(t, store, 1, annLee(), "")
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening an initialized database succeeds and keeps data.
	reopened := testsupport.MustOpenStore(t, cfg)
	all, err := reopened.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll after reopen: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 letter after reopen, got %d", len(all))
	}
}
