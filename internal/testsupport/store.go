package testsupport

import (
	"context"
	"testing"

	"github.com/sputnik57/letter-mgt/internal/config"
	"github.com/sputnik57/letter-mgt/internal/letters"
	"github.com/sputnik57/letter-mgt/internal/logging"
	"github.com/sputnik57/letter-mgt/internal/ocr"
	"github.com/sputnik57/letter-mgt/internal/roster"
)

// MustOpenStore opens a letters.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *letters.Store {
	t.Helper()

	store, err := letters.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("letters.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddLetter inserts a letter for tests using the provided store.
func AddLetter(t testing.TB, store *letters.Store, prisonerIdx int, person roster.Person, code string) *letters.Letter {
	t.Helper()

	letter, err := store.AddLetter(context.Background(), letters.NewLetter{
		PrisonerIdx: prisonerIdx,
		Person:      person,
		OCR: ocr.Result{
			FullText:      "Dear volunteer, thank you for writing.",
			ReturnAddress: "PO Box 100, Sacramento CA",
			Confidence:    0.92,
		},
		EnvelopeImagePath: "/storage/envelopes/env.png",
		PrisonerCode:      code,
	})
	if err != nil {
		t.Fatalf("store.AddLetter: %v", err)
	}
	return letter
}
