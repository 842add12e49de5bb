// Package jsonl stores the phone book as a JSON Lines file, one record per
// line, rewritten atomically on every save.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/internal/storage"
)

// FileName is the name of the phone book file inside the data directory.
const FileName = "phonebook.jsonl"

// Repository implements storage.Repository on a JSONL file.
type Repository struct {
	path   string
	logger *slog.Logger
	closed bool
}

var _ storage.Repository = (*Repository)(nil)

// Open returns a Repository for dataDir, creating the directory if needed.
// The file itself is created by the first Save.
func Open(dataDir string, logger *slog.Logger) (*Repository, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{path: filepath.Join(dataDir, FileName), logger: logger}, nil
}

// Path returns the location of the JSONL file.
func (r *Repository) Path() string { return r.path }

// Load reads every line of the file into book. A missing file is an empty
// phone book. Lines that are not valid JSON or that hold an invalid record
// are skipped and logged.
func (r *Repository) Load(ctx context.Context, book *phonebook.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.closed {
		return storage.ErrRepositoryClosed
	}

	lines, err := readJSONL(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	for i, line := range lines {
		var e storage.Entry
		if err := json.Unmarshal(line, &e); err != nil {
			r.logger.Warn("skipping unreadable record", "path", r.path, "line", i+1, "err", err)
			continue
		}
		rec, err := e.Record()
		if err != nil {
			r.logger.Warn("skipping invalid record", "path", r.path, "line", i+1, "err", err)
			continue
		}
		book.AddRecord(rec)
	}
	return nil
}

// Save writes every record of book to the file, replacing its contents.
func (r *Repository) Save(ctx context.Context, book *phonebook.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.closed {
		return storage.ErrRepositoryClosed
	}

	entries := storage.Entries(book)
	lines := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", e.Name, err)
		}
		lines = append(lines, b)
	}
	return writeJSONL(r.path, lines)
}

// Close marks the repository closed. Idempotent.
func (r *Repository) Close() error {
	r.closed = true
	return nil
}

// readJSONL reads a JSONL file and returns each non-empty line. Lines are
// returned as read; callers decide what to do with malformed ones.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
