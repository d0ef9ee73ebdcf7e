// Package ocr defines the contract with the external image-to-text
// collaborator.
//
// Text extraction itself happens outside this system. The collaborator
// returns extracted text plus its raw annotation payload; failures arrive
// as an error-text payload inside the result rather than as an error, and
// the record store persists whatever it is given verbatim. This package
// also owns the spool that writes raw annotation blobs to disk so the
// store can record their paths.
package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// errorPrefix marks a result whose text payload carries a collaborator
// failure message instead of extracted text.
const errorPrefix = "OCR Error:"

// Result is what the collaborator hands back for one envelope image.
type Result struct {
	FullText      string
	ReturnAddress string
	Confidence    float64
	RawAnnotation []byte
}

// Failed reports whether the text payload is a collaborator error message.
// The core never retries or rewrites such payloads; callers decide.
func (r Result) Failed() bool {
	return strings.HasPrefix(strings.TrimSpace(r.FullText), errorPrefix)
}

// ErrorResult wraps a collaborator failure in the error-text payload form.
func ErrorResult(err error) Result {
	return Result{FullText: fmt.Sprintf("%s %v", errorPrefix, err)}
}

// Spool persists raw annotation blobs under a storage directory and
// returns their paths for the record store to keep.
type Spool struct {
	dir string
}

// NewSpool creates a spool rooted at dir.
func NewSpool(dir string) *Spool {
	return &Spool{dir: dir}
}

// Save writes a raw annotation blob to a fresh UUID-named file and
// returns its path. An empty blob yields an empty path and no file.
func (s *Spool) Save(blob []byte) (string, error) {
	if len(blob) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure spool dir: %w", err)
	}
	path := filepath.Join(s.dir, uuid.NewString()+".json")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return "", fmt.Errorf("write annotation: %w", err)
	}
	return path, nil
}
