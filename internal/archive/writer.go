package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "notegram/internal/errors"
)

// Writer appends formatted note fragments to the day file matching the
// processing-time local calendar date. The archive is append-only; there
// is no update or delete path.
type Writer struct {
	notesDir string
	now      func() time.Time
}

// NewWriter creates the notes directory if needed and returns a writer
// bound to it. The directory check happens once here, not per append.
func NewWriter(notesDir string) (*Writer, error) {
	if err := os.MkdirAll(notesDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create notes directory: %w", err)
	}

	return &Writer{
		notesDir: notesDir,
		now:      time.Now,
	}, nil
}

// DayFilePath returns the note file path for the local calendar day of t,
// e.g. notes/2-sep.md. The derivation is pure and idempotent.
func (w *Writer) DayFilePath(t time.Time) string {
	name := strings.ToLower(t.Local().Format("2-Jan")) + ".md"
	return filepath.Join(w.notesDir, name)
}

// Append writes the fragment plus a trailing newline to today's note file,
// creating the file on first use.
func (w *Writer) Append(fragment string) error {
	path := w.DayFilePath(w.now())

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640) // #nosec G304 - path derived from configured notes dir
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeArchiveWrite, "failed to open note file").WithContext("path", path)
	}

	return appendFragment(f, fragment, path)
}

// appendFragment writes the fragment and surfaces close failures; an
// append counts as persisted only once the file closed cleanly.
func appendFragment(f io.WriteCloser, fragment, path string) error {
	if _, err := io.WriteString(f, fragment+"\n"); err != nil {
		f.Close()
		return apperrors.Wrap(err, apperrors.ErrCodeArchiveWrite, "failed to append note record").WithContext("path", path)
	}

	if err := f.Close(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeArchiveWrite, "failed to finalize note append").WithContext("path", path)
	}

	return nil
}
