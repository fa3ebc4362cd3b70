package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/internal/auth/store"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db *sql.DB
	q  *queries
}

var _ store.Store = (*Store)(nil)

// NewStore opens the database at dsn, e.g.
// "file:fintrack.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)".
func NewStore(dsn string) (*Store, error) {
	// Enforce FKs on every pooled connection
	if !strings.Contains(dsn, "foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	// In-memory databases are per connection
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	return &Store{
		db: db,
		q:  &queries{db: db},
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// DB exposes the pool for connection stats.
func (s *Store) DB() *sql.DB { return s.db }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users { return &usersRepo{q: s.q} }

func (s *Store) Preferences() store.Preferences { return &preferencesRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns UNIQUE and FOREIGN KEY violations into store errors.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}

	var se *msqlite.Error
	isErr := errors.As(err, &se)

	// A missing parent row
	if (isErr && se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) || strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return store.ErrNotFound
	}

	unique := isErr && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	if !unique && !strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return store.ErrUsernameExists
	case strings.Contains(msg, "users.email"):
		return store.ErrEmailExists
	default:
		return store.ErrAlreadyExists
	}
}

func mapUser(row userRow) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		FullName:     row.FullName,
		PasswordHash: row.PasswordHash,
		Roles:        domain.DecodeRoles(row.Roles),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}
