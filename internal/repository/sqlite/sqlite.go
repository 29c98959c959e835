package sqlite

import (
	"io"
	"time"

	"log/slog"

	"github.com/garnizeh/placement/internal/db"
	"github.com/garnizeh/placement/pkg/repository"
)

// SQLiteRepo implements the repository interfaces over the internal DB
// wrapper. The portal opens the DB on the in-memory DSN, so this is an
// in-process store that lives and dies with the server.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.JobRepo = (*SQLiteRepo)(nil)
var _ repository.ApplicationRepo = (*SQLiteRepo)(nil)
var _ repository.ResumeRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
