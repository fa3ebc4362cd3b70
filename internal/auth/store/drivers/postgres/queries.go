package postgres

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db DBTX
}

type userRow struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Roles        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const userColumns = `id, username, email, full_name, password_hash, roles, created_at, updated_at`

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

const existsByUsername = `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

const existsByEmail = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

const createUser = `
INSERT INTO users (id, username, email, full_name, password_hash, roles, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const updateUserProfile = `UPDATE users SET full_name = $1, email = $2, updated_at = $3 WHERE id = $4`

const updateUserPasswordHash = `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

const deleteUser = `DELETE FROM users WHERE id = $1`

func (q *queries) getUser(ctx context.Context, query string, arg string) (userRow, error) {
	var r userRow
	err := q.db.QueryRowContext(ctx, query, arg).Scan(
		&r.ID,
		&r.Username,
		&r.Email,
		&r.FullName,
		&r.PasswordHash,
		&r.Roles,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (q *queries) exists(ctx context.Context, query string, arg string) (bool, error) {
	var ok bool
	err := q.db.QueryRowContext(ctx, query, arg).Scan(&ok)
	return ok, err
}

func (q *queries) createUser(ctx context.Context, r userRow) error {
	_, err := q.db.ExecContext(ctx, createUser,
		r.ID,
		r.Username,
		r.Email,
		r.FullName,
		r.PasswordHash,
		r.Roles,
		r.CreatedAt,
		r.UpdatedAt,
	)
	return err
}

type preferencesRow struct {
	UserID             string
	Currency           string
	DateFormat         string
	Theme              string
	ColorTheme         string
	EmailNotifications bool
	BudgetAlerts       bool
	GoalProgress       bool
	WeeklySummary      bool
	UpdatedAt          time.Time
}

const preferencesColumns = `user_id, currency, date_format, theme, color_theme, email_notifications, budget_alerts, goal_progress, weekly_summary, updated_at`

const getPreferences = `SELECT ` + preferencesColumns + ` FROM user_preferences WHERE user_id = $1`

const upsertPreferences = `
INSERT INTO user_preferences (` + preferencesColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id) DO UPDATE SET
    currency = excluded.currency,
    date_format = excluded.date_format,
    theme = excluded.theme,
    color_theme = excluded.color_theme,
    email_notifications = excluded.email_notifications,
    budget_alerts = excluded.budget_alerts,
    goal_progress = excluded.goal_progress,
    weekly_summary = excluded.weekly_summary,
    updated_at = excluded.updated_at`

const deletePreferences = `DELETE FROM user_preferences WHERE user_id = $1`

func (q *queries) getPreferences(ctx context.Context, userID string) (preferencesRow, error) {
	var r preferencesRow
	err := q.db.QueryRowContext(ctx, getPreferences, userID).Scan(
		&r.UserID,
		&r.Currency,
		&r.DateFormat,
		&r.Theme,
		&r.ColorTheme,
		&r.EmailNotifications,
		&r.BudgetAlerts,
		&r.GoalProgress,
		&r.WeeklySummary,
		&r.UpdatedAt,
	)
	return r, err
}

func (q *queries) upsertPreferences(ctx context.Context, r preferencesRow) error {
	_, err := q.db.ExecContext(ctx, upsertPreferences,
		r.UserID,
		r.Currency,
		r.DateFormat,
		r.Theme,
		r.ColorTheme,
		r.EmailNotifications,
		r.BudgetAlerts,
		r.GoalProgress,
		r.WeeklySummary,
		r.UpdatedAt,
	)
	return err
}

func (q *queries) execOne(ctx context.Context, query string, args ...any) error {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
