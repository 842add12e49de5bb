package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mesh-intelligence/phonebook/internal/dispatch"
	"github.com/mesh-intelligence/phonebook/internal/logger"
	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/internal/storage"
	"github.com/mesh-intelligence/phonebook/internal/storage/bolt"
	"github.com/mesh-intelligence/phonebook/internal/storage/jsonl"
	"github.com/mesh-intelligence/phonebook/internal/storage/sqlite"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// session is one run of the phone book: the book is loaded when the session
// opens and saved when it closes. Nothing is written in between.
type session struct {
	cfg        types.Config
	logger     *slog.Logger
	repo       storage.Repository
	book       *phonebook.Store
	dispatcher *dispatch.Dispatcher
}

// openSession resolves configuration, opens the configured backend and
// loads the stored phone book. Log output goes to logw.
func openSession(ctx context.Context, logw io.Writer) (*session, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Logfile: cfg.LogFile,
	}, logw)

	repo, err := openRepository(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}

	book := phonebook.New()
	book.PageSize = cfg.PageSize
	if err := repo.Load(ctx, book); err != nil {
		repo.Close()
		return nil, fmt.Errorf("load phone book: %w", err)
	}
	log.Info("phone book loaded", "backend", cfg.Backend, "data_dir", cfg.DataDir, "records", book.Len())

	return &session{
		cfg:    cfg,
		logger: log,
		repo:   repo,
		book:   book,
		dispatcher: dispatch.New(book, dispatch.Options{
			StrictBirthday: cfg.StrictBirthday,
			Logger:         log,
		}),
	}, nil
}

// openRepository creates the backend named by cfg.Backend.
func openRepository(cfg types.Config, log *slog.Logger) (storage.Repository, error) {
	switch cfg.Backend {
	case types.BackendJSONL:
		return jsonl.Open(cfg.DataDir, log)
	case types.BackendSQLite:
		return sqlite.Open(cfg.DataDir, log)
	case types.BackendBolt:
		return bolt.Open(cfg.DataDir, log)
	default:
		return nil, fmt.Errorf("%w %q", types.ErrBackendUnknown, cfg.Backend)
	}
}

// close saves the phone book and releases the backend.
func (s *session) close(ctx context.Context) error {
	saveErr := s.repo.Save(ctx, s.book)
	if saveErr != nil {
		s.logger.Error("phone book not saved", "backend", s.cfg.Backend, "err", saveErr)
		saveErr = fmt.Errorf("save phone book: %w", saveErr)
	} else {
		s.logger.Info("phone book saved", "backend", s.cfg.Backend, "records", s.book.Len())
	}
	return errors.Join(saveErr, s.repo.Close())
}
