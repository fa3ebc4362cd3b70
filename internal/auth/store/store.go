package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// Both wrap ErrAlreadyExists; drivers pick one from the violated constraint.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrAlreadyExists)
	ErrEmailExists    = fmt.Errorf("%w: email", ErrAlreadyExists)
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. Repositories hang off it as methods so a
// transaction-scoped Store exposes the same surface.
type Store interface {
	Users() Users
	Preferences() Preferences

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is an exact, case-sensitive match.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail matches the stored (lowercased) email exactly.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrUsernameExists or ErrEmailExists on a uniqueness violation.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile sets full_name and email and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, fullName, email string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	DeleteUser(ctx context.Context, userID string) error
}

type Preferences interface {
	// GetPreferences returns ErrNotFound until the first save for userID.
	GetPreferences(ctx context.Context, userID string) (domain.Preferences, error)

	// UpsertPreferences inserts or replaces the row for p.UserID and bumps
	// updated_at. Returns ErrNotFound when the user does not exist.
	UpsertPreferences(ctx context.Context, p domain.Preferences) error

	// DeletePreferences is a no-op when no row exists.
	DeletePreferences(ctx context.Context, userID string) error
}
