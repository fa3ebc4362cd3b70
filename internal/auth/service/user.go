package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/fintrack/fintrack/pkg/cryptox"
	"github.com/fintrack/fintrack/pkg/idx"
	"github.com/fintrack/fintrack/pkg/slogx"
)

var (
	ErrInvalidRequest    = errors.New("invalid_request")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrEmailTaken        = errors.New("email already in use")
	ErrIncorrectPassword = errors.New("current password is incorrect")
)

// PasswordHasher hashes new passwords and checks existing ones.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
}

// Registration is a normalized sign-up request.
type Registration struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AccountService owns the account lifecycle around the auth core: sign-up,
// availability checks, profile edits, password change and deletion.
type AccountService struct {
	Store  store.Store
	Hasher PasswordHasher
}

// Register creates a new account with the default role.
func (s *AccountService) Register(ctx context.Context, reg Registration) (domain.User, error) {
	l := slogx.FromContext(ctx)

	reg.Email = strings.ToLower(reg.Email)
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return domain.User{}, ErrInvalidRequest
	}

	// 1. Hash outside the transaction, it is the slow part
	hash, err := s.Hasher.Hash(reg.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     reg.Username,
		Email:        reg.Email,
		FullName:     reg.FullName,
		PasswordHash: hash,
		Roles:        domain.DefaultRoles(),
	}

	// 2. Check availability and insert together
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		taken, err := tx.Users().ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		taken, err = tx.Users().ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		return domain.User{}, mapTaken(err)
	}

	l.Info("registered user", slog.String("user_id", user.ID))
	return user, nil
}

// UsernameExists reports whether username is already registered.
func (s *AccountService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.Store.Users().ExistsByUsername(ctx, username)
}

// EmailExists reports whether email is already registered, ignoring case.
func (s *AccountService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.Store.Users().ExistsByEmail(ctx, strings.ToLower(email))
}

// Profile fetches the account behind userID.
func (s *AccountService) Profile(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrPrincipalNotFound
	}
	return u, err
}

// UpdateProfile changes the full name and email. Empty values keep the
// current ones.
func (s *AccountService) UpdateProfile(ctx context.Context, userID, fullName, email string) (domain.User, error) {
	var updated domain.User

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		if fullName != "" {
			u.FullName = fullName
		}
		if email = strings.ToLower(email); email != "" && email != u.Email {
			taken, err := tx.Users().ExistsByEmail(ctx, email)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
			u.Email = email
		}

		if err := tx.Users().UpdateProfile(ctx, u.ID, u.FullName, u.Email); err != nil {
			return err
		}

		updated = u
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrPrincipalNotFound
		}
		return domain.User{}, mapTaken(err)
	}

	return updated, nil
}

// ChangePassword replaces the password after checking the current one.
// Tokens issued before the change stay valid until they expire.
func (s *AccountService) ChangePassword(ctx context.Context, userID, current, next string) error {
	l := slogx.FromContext(ctx)

	if next == "" {
		return ErrInvalidRequest
	}

	u, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.Hasher.Verify(current, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			l.Warn("stored password hash is unusable", slog.String("user_id", u.ID), slog.Any("error", err))
		}
		return ErrIncorrectPassword
	}

	hash, err := s.Hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPrincipalNotFound
		}
		return err
	}

	l.Info("password changed", slog.String("user_id", u.ID))
	return nil
}

// DeleteAccount removes the account. Outstanding tokens for it stop
// resolving to a principal.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Preferences().DeletePreferences(ctx, userID); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPrincipalNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("deleted account", slog.String("user_id", userID))
	return nil
}

// PreferencesUpdate carries the display settings to change. Empty fields
// keep their current value.
type PreferencesUpdate struct {
	Currency   string
	DateFormat string
	Theme      string
	ColorTheme string
}

// Preferences returns the settings for userID, saving the defaults on the
// first read.
func (s *AccountService) Preferences(ctx context.Context, userID string) (domain.Preferences, error) {
	var prefs domain.Preferences

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, stored, err := loadPreferences(ctx, tx, userID)
		if err != nil {
			return err
		}
		if stored {
			prefs = p
			return nil
		}

		if err := tx.Preferences().UpsertPreferences(ctx, p); err != nil {
			return err
		}
		prefs, err = tx.Preferences().GetPreferences(ctx, userID)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Preferences{}, ErrPrincipalNotFound
	}
	return prefs, err
}

// UpdatePreferences applies the non-empty fields of upd.
func (s *AccountService) UpdatePreferences(ctx context.Context, userID string, upd PreferencesUpdate) (domain.Preferences, error) {
	return s.savePreferences(ctx, userID, func(p *domain.Preferences) {
		if upd.Currency != "" {
			p.Currency = upd.Currency
		}
		if upd.DateFormat != "" {
			p.DateFormat = upd.DateFormat
		}
		if upd.Theme != "" {
			p.Theme = upd.Theme
		}
		if upd.ColorTheme != "" {
			p.ColorTheme = upd.ColorTheme
		}
	})
}

// UpdateNotifications replaces all four notification flags.
func (s *AccountService) UpdateNotifications(ctx context.Context, userID string, n domain.NotificationSettings) (domain.Preferences, error) {
	return s.savePreferences(ctx, userID, func(p *domain.Preferences) {
		p.Notifications = n
	})
}

func (s *AccountService) savePreferences(ctx context.Context, userID string, apply func(*domain.Preferences)) (domain.Preferences, error) {
	var prefs domain.Preferences

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, _, err := loadPreferences(ctx, tx, userID)
		if err != nil {
			return err
		}

		apply(&p)
		if err := tx.Preferences().UpsertPreferences(ctx, p); err != nil {
			return err
		}
		prefs, err = tx.Preferences().GetPreferences(ctx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Preferences{}, ErrPrincipalNotFound
		}
		return domain.Preferences{}, err
	}

	slogx.FromContext(ctx).Info("preferences updated", slog.String("user_id", userID))
	return prefs, nil
}

// loadPreferences returns the stored row, or the defaults with stored set
// to false. It fails with store.ErrNotFound when the user is gone.
func loadPreferences(ctx context.Context, tx store.Tx, userID string) (p domain.Preferences, stored bool, err error) {
	p, err = tx.Preferences().GetPreferences(ctx, userID)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Preferences{}, false, err
	}

	if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
		return domain.Preferences{}, false, err
	}
	return domain.DefaultPreferences(userID), false, nil
}

// mapTaken folds both the pre-check and a lost insert race onto the same
// errors.
func mapTaken(err error) error {
	switch {
	case errors.Is(err, store.ErrUsernameExists):
		return ErrUsernameTaken
	case errors.Is(err, store.ErrEmailExists):
		return ErrEmailTaken
	default:
		return err
	}
}
