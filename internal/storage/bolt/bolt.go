// Package bolt stores the phone book in a BoltDB file. Records live in one
// bucket keyed by their listing position, so a cursor walk returns them in
// order.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	bolterrors "go.etcd.io/bbolt/errors"

	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/internal/storage"
)

// FileName is the name of the BoltDB file inside the data directory.
const FileName = "phonebook.bolt"

const contactsBucket = "contacts"

// Repository implements storage.Repository on BoltDB.
type Repository struct {
	db     *bbolt.DB
	logger *slog.Logger
}

var _ storage.Repository = (*Repository)(nil)

// Open creates dataDir if needed and opens the BoltDB file inside it.
// Returns an error if another process holds the file for more than a second.
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

	path := filepath.Clean(filepath.Join(dataDir, FileName))
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(contactsBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create contacts bucket: %w", err)
	}
	return &Repository{db: db, logger: logger}, nil
}

// Load reads every record, in listing order, into book.
func (r *Repository) Load(ctx context.Context, book *phonebook.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.db == nil {
		return storage.ErrRepositoryClosed
	}

	return r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(contactsBucket))
		if bucket == nil {
			return fmt.Errorf("contacts bucket is missing")
		}
		return bucket.ForEach(func(k, v []byte) error {
			var e storage.Entry
			if err := json.Unmarshal(v, &e); err != nil {
				r.logger.Warn("skipping unreadable record", "key", k, "err", err)
				return nil
			}
			rec, err := e.Record()
			if err != nil {
				r.logger.Warn("skipping invalid record", "record_id", e.RecordID, "err", err)
				return nil
			}
			book.AddRecord(rec)
			return nil
		})
	})
}

// Save replaces the bucket contents with book in a single transaction.
func (r *Repository) Save(ctx context.Context, book *phonebook.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.db == nil {
		return storage.ErrRepositoryClosed
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(contactsBucket)); err != nil && !errors.Is(err, bolterrors.ErrBucketNotFound) {
			return fmt.Errorf("clear contacts bucket: %w", err)
		}
		bucket, err := tx.CreateBucket([]byte(contactsBucket))
		if err != nil {
			return fmt.Errorf("create contacts bucket: %w", err)
		}
		for i, e := range storage.Entries(book) {
			payload, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("marshal record %s: %w", e.Name, err)
			}
			if err := bucket.Put(positionKey(i), payload); err != nil {
				return fmt.Errorf("put record %s: %w", e.Name, err)
			}
		}
		return nil
	})
}

// Close closes the BoltDB file. Idempotent.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// positionKey encodes i big-endian so byte order matches listing order.
func positionKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}
