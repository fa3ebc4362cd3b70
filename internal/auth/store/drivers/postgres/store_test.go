package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	st := NewStoreFromDB(db)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return st, mock
}

var userCols = []string{"id", "username", "email", "full_name", "password_hash", "roles", "created_at", "updated_at"}

func TestGetUserByUsername_Found(t *testing.T) {
	st, mock := newStoreWithMock(t)

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(userCols).
		AddRow("u-1", "bob", "bob@x.com", "Bob", "hash", "ROLE_USER ROLE_ADMIN", created, created)
	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+username\s*=\s*\$1$`).
		WithArgs("bob").
		WillReturnRows(rows)

	u, err := st.Users().GetUserByUsername(context.Background(), "bob")
	require.NoError(t, err)
	require.Equal(t, "u-1", u.ID)
	require.Equal(t, "bob@x.com", u.Email)
	require.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, u.Roles)
	require.True(t, created.Equal(u.CreatedAt))
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	st, mock := newStoreWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := st.Users().GetUserByEmail(context.Background(), "ghost@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetUserByID_DBError(t *testing.T) {
	st, mock := newStoreWithMock(t)

	boom := errors.New("db down")
	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnError(boom)

	_, err := st.Users().GetUserByID(context.Background(), "u-1")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, store.ErrNotFound)
}

func TestExistsByEmail(t *testing.T) {
	st, mock := newStoreWithMock(t)

	mock.ExpectQuery(`^SELECT\s+EXISTS\(SELECT\s+1\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\)$`).
		WithArgs("bob@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := st.Users().ExistsByEmail(context.Background(), "bob@x.com")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCreateUser(t *testing.T) {
	const q = `(?s)^\s*INSERT\s+INTO\s+users\s*\(id,\s*username,\s*email,.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8\)$`

	u := domain.User{ID: "u-1", Username: "bob", Email: "bob@x.com", PasswordHash: "hash"}

	t.Run("defaults roles and timestamps", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectExec(q).
			WithArgs("u-1", "bob", "bob@x.com", "", "hash", "ROLE_USER", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, st.Users().CreateUser(context.Background(), u))
	})

	cases := []struct {
		constraint string
		want       error
	}{
		{"users_username_key", store.ErrUsernameExists},
		{"users_email_key", store.ErrEmailExists},
		{"users_pkey", store.ErrAlreadyExists},
	}
	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			st, mock := newStoreWithMock(t)
			mock.ExpectExec(q).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})

			err := st.Users().CreateUser(context.Background(), u)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, store.ErrAlreadyExists)
		})
	}

	t.Run("other pg errors pass through", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		pgErr := &pgconn.PgError{Code: "23502"}
		mock.ExpectExec(q).WillReturnError(pgErr)

		err := st.Users().CreateUser(context.Background(), u)
		require.ErrorIs(t, err, pgErr)
		require.NotErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestUpdateProfile(t *testing.T) {
	const q = `^UPDATE\s+users\s+SET\s+full_name\s*=\s*\$1,\s*email\s*=\s*\$2,\s*updated_at\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$4$`

	t.Run("ok", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectExec(q).
			WithArgs("Robert", "robert@x.com", sqlmock.AnyArg(), "u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, st.Users().UpdateProfile(context.Background(), "u-1", "Robert", "robert@x.com"))
	})

	t.Run("missing user", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

		err := st.Users().UpdateProfile(context.Background(), "u-404", "x", "x@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("email taken", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectExec(q).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := st.Users().UpdateProfile(context.Background(), "u-1", "x", "taken@x.com")
		require.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestUpdatePasswordHashAndDelete(t *testing.T) {
	st, mock := newStoreWithMock(t)

	mock.ExpectExec(`^UPDATE\s+users\s+SET\s+password_hash\s*=\s*\$1`).
		WithArgs("new-hash", sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, st.Users().UpdatePasswordHash(context.Background(), "u-1", "new-hash"))
	require.ErrorIs(t, st.Users().DeleteUser(context.Background(), "u-1"), store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	const q = `^DELETE\s+FROM\s+users`

	t.Run("commits", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := st.WithTx(context.Background(), func(tx store.Tx) error {
			return tx.Users().DeleteUser(context.Background(), "u-1")
		})
		require.NoError(t, err)
	})

	t.Run("rolls back", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := st.WithTx(context.Background(), func(tx store.Tx) error {
			return tx.Users().DeleteUser(context.Background(), "u-1")
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

var preferencesCols = []string{"user_id", "currency", "date_format", "theme", "color_theme",
	"email_notifications", "budget_alerts", "goal_progress", "weekly_summary", "updated_at"}

func TestGetPreferences(t *testing.T) {
	const q = `(?s)^SELECT\s+user_id,.*FROM\s+user_preferences\s+WHERE\s+user_id\s*=\s*\$1$`

	t.Run("found", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		updated := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		mock.ExpectQuery(q).
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows(preferencesCols).
				AddRow("u-1", "EUR (€)", "DD/MM/YYYY", "dark", "green", true, false, true, true, updated))

		p, err := st.Preferences().GetPreferences(context.Background(), "u-1")
		require.NoError(t, err)
		require.Equal(t, "EUR (€)", p.Currency)
		require.Equal(t, "DD/MM/YYYY", p.DateFormat)
		require.Equal(t, "green", p.ColorTheme)
		require.Equal(t, domain.NotificationSettings{
			EmailNotifications: true,
			GoalProgress:       true,
			WeeklySummary:      true,
		}, p.Notifications)
		require.True(t, updated.Equal(p.UpdatedAt))
	})

	t.Run("not found", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectQuery(q).WithArgs("u-1").WillReturnError(sql.ErrNoRows)

		_, err := st.Preferences().GetPreferences(context.Background(), "u-1")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpsertPreferences(t *testing.T) {
	const q = `(?s)^\s*INSERT\s+INTO\s+user_preferences.*ON\s+CONFLICT\s+\(user_id\)\s+DO\s+UPDATE`

	t.Run("writes every column", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectExec(q).
			WithArgs("u-1", "USD ($)", "MM/DD/YYYY", "light", "blue", true, true, true, false, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, st.Preferences().UpsertPreferences(context.Background(), domain.DefaultPreferences("u-1")))
	})

	t.Run("missing user", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectExec(q).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "user_preferences_user_id_fkey"})

		err := st.Preferences().UpsertPreferences(context.Background(), domain.DefaultPreferences("ghost"))
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeletePreferences(t *testing.T) {
	st, mock := newStoreWithMock(t)
	mock.ExpectExec(`^DELETE\s+FROM\s+user_preferences\s+WHERE\s+user_id\s*=\s*\$1$`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, st.Preferences().DeletePreferences(context.Background(), "u-1"))
}
