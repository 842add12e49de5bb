// Package sqlite stores the phone book in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/internal/storage"
)

// FileName is the name of the database file inside the data directory.
const FileName = "phonebook.db"

// Repository implements storage.Repository on SQLite.
type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ storage.Repository = (*Repository)(nil)

// Open creates dataDir if needed, opens the database inside it and applies
// the schema.
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

	db, err := sql.Open("sqlite", filepath.Join(dataDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps PRAGMA settings in effect for every statement.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &Repository{db: db, logger: logger}, nil
}

// Load reads every contact, in listing order, into book.
func (r *Repository) Load(ctx context.Context, book *phonebook.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.db == nil {
		return storage.ErrRepositoryClosed
	}

	phones, err := r.loadPhones(ctx)
	if err != nil {
		return err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT record_id, name, birthday FROM contacts ORDER BY position`)
	if err != nil {
		return fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e storage.Entry
		var birthday sql.NullString
		if err := rows.Scan(&e.RecordID, &e.Name, &birthday); err != nil {
			return fmt.Errorf("scan contact: %w", err)
		}
		if birthday.Valid {
			e.Birthday = &birthday.String
		}
		e.Phones = phones[e.RecordID]

		rec, err := e.Record()
		if err != nil {
			r.logger.Warn("skipping invalid record", "record_id", e.RecordID, "err", err)
			continue
		}
		book.AddRecord(rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate contacts: %w", err)
	}
	return nil
}

// loadPhones returns every phone number grouped by record, in order.
func (r *Repository) loadPhones(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT record_id, number FROM phones ORDER BY record_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query phones: %w", err)
	}
	defer rows.Close()

	phones := make(map[string][]string)
	for rows.Next() {
		var id, number string
		if err := rows.Scan(&id, &number); err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		phones[id] = append(phones[id], number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phones: %w", err)
	}
	return phones, nil
}

// Save replaces every stored contact with the contents of book in a single
// transaction.
func (r *Repository) Save(ctx context.Context, book *phonebook.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.db == nil {
		return storage.ErrRepositoryClosed
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM phones`); err != nil {
		return fmt.Errorf("clear phones: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("clear contacts: %w", err)
	}

	contactStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contacts (record_id, name, birthday, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare contact insert: %w", err)
	}
	defer contactStmt.Close()

	phoneStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO phones (record_id, position, number) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare phone insert: %w", err)
	}
	defer phoneStmt.Close()

	for i, e := range storage.Entries(book) {
		var birthday sql.NullString
		if e.Birthday != nil {
			birthday = sql.NullString{String: *e.Birthday, Valid: true}
		}
		if _, err := contactStmt.ExecContext(ctx, e.RecordID, e.Name, birthday, i); err != nil {
			return fmt.Errorf("insert contact %s: %w", e.Name, err)
		}
		for j, number := range e.Phones {
			if _, err := phoneStmt.ExecContext(ctx, e.RecordID, j, number); err != nil {
				return fmt.Errorf("insert phone for %s: %w", e.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Close closes the database. Idempotent.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}
