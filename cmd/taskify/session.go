package main

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/Joseda-hg/taskify/internal/config"
	"github.com/Joseda-hg/taskify/internal/db"
	"github.com/Joseda-hg/taskify/internal/local"
	"github.com/Joseda-hg/taskify/internal/logger"
	"github.com/Joseda-hg/taskify/internal/search"
	"github.com/Joseda-hg/taskify/internal/workspace"
)

// session is the workspace selected for this invocation plus the handles
// that back it.
type session struct {
	cfg     config.Config
	log     *logger.Logger
	ws      *workspace.Workspace
	store   *db.Store
	sqlDB   *sql.DB
	storage *local.FileStorage
}

// openSession picks guest or user mode. Without --user or --guest the mode
// remembered in the guest profile is used.
func openSession(cfg config.Config, log *logger.Logger) (*session, error) {
	s := &session{cfg: cfg, log: log}

	guest := cfg.Guest
	if !guest && cfg.UserID == "" {
		remembered, err := rememberedGuest(cfg.GuestDir)
		if err != nil {
			return nil, err
		}
		if !remembered {
			return nil, errNoUser
		}
		guest = true
	}

	if guest {
		storage, err := local.NewFileStorage(cfg.GuestDir)
		if err != nil {
			return nil, err
		}
		if err := local.SetGuestMode(storage, true); err != nil {
			return nil, err
		}
		s.storage = storage
		s.ws = workspace.Local(storage)
		log.WithField("path", storage.Path()).Debug("guest profile opened")
		return s, nil
	}

	if err := forgetGuest(cfg.GuestDir); err != nil {
		return nil, err
	}

	if cfg.DBDialect == config.DialectSQLite {
		if err := config.EnsureDir(cfg.DBPath); err != nil {
			return nil, err
		}
	}
	sqlDB, err := db.Open(cfg.DBDialect, cfg.DSN())
	if err != nil {
		return nil, err
	}
	store := db.NewStore(sqlDB)
	ws, err := workspace.Remote(store, cfg.UserID)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	s.sqlDB = sqlDB
	s.store = store
	s.ws = ws
	log.WithUserID(cfg.UserID).WithField("dialect", cfg.DBDialect).Debug("database opened")
	return s, nil
}

func (s *session) Close() error {
	if s.sqlDB == nil {
		return nil
	}
	err := s.sqlDB.Close()
	s.sqlDB = nil
	return err
}

// engine builds a search engine that logs through the session logger. A
// limit of 0 uses the configured one.
func (s *session) engine(limit int) *search.Engine {
	if limit <= 0 {
		limit = s.cfg.SearchLimit
	}
	return search.NewEngine(s.ws,
		search.WithLimit(limit),
		search.WithLogger(s.log),
	)
}

func rememberedGuest(dir string) (bool, error) {
	if !profileExists(dir) {
		return false, nil
	}
	storage, err := local.NewFileStorage(dir)
	if err != nil {
		return false, err
	}
	return local.IsGuestMode(storage)
}

func forgetGuest(dir string) error {
	if !profileExists(dir) {
		return nil
	}
	storage, err := local.NewFileStorage(dir)
	if err != nil {
		return err
	}
	return local.SetGuestMode(storage, false)
}

func profileExists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, local.StorageFile))
	return !errors.Is(err, os.ErrNotExist)
}
