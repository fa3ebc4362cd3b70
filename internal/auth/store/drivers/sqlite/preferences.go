package sqlite

import (
	"context"
	"time"

	"github.com/fintrack/fintrack/internal/auth/domain"
)

type preferencesRepo struct {
	q *queries
}

func (r *preferencesRepo) GetPreferences(ctx context.Context, userID string) (domain.Preferences, error) {
	row, err := r.q.getPreferences(ctx, userID)
	if err != nil {
		return domain.Preferences{}, mapNotFound(err)
	}
	return mapPreferences(row), nil
}

func (r *preferencesRepo) UpsertPreferences(ctx context.Context, p domain.Preferences) error {
	err := r.q.upsertPreferences(ctx, preferencesRow{
		UserID:             p.UserID,
		Currency:           p.Currency,
		DateFormat:         p.DateFormat,
		Theme:              p.Theme,
		ColorTheme:         p.ColorTheme,
		EmailNotifications: p.Notifications.EmailNotifications,
		BudgetAlerts:       p.Notifications.BudgetAlerts,
		GoalProgress:       p.Notifications.GoalProgress,
		WeeklySummary:      p.Notifications.WeeklySummary,
		UpdatedAt:          time.Now().UTC(),
	})
	return mapConstraint(err)
}

func (r *preferencesRepo) DeletePreferences(ctx context.Context, userID string) error {
	_, err := r.q.db.ExecContext(ctx, deletePreferences, userID)
	return err
}

func mapPreferences(row preferencesRow) domain.Preferences {
	return domain.Preferences{
		UserID:     row.UserID,
		Currency:   row.Currency,
		DateFormat: row.DateFormat,
		Theme:      row.Theme,
		ColorTheme: row.ColorTheme,
		Notifications: domain.NotificationSettings{
			EmailNotifications: row.EmailNotifications,
			BudgetAlerts:       row.BudgetAlerts,
			GoalProgress:       row.GoalProgress,
			WeeklySummary:      row.WeeklySummary,
		},
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
