package domain

import "time"

// Preferences holds the display and notification settings of one account.
type Preferences struct {
	UserID     string
	Currency   string
	DateFormat string
	Theme      string
	ColorTheme string

	Notifications NotificationSettings

	UpdatedAt time.Time
}

type NotificationSettings struct {
	EmailNotifications bool
	BudgetAlerts       bool
	GoalProgress       bool
	WeeklySummary      bool
}

// DefaultPreferences is what an account sees before it saves anything.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:     userID,
		Currency:   "USD ($)",
		DateFormat: "MM/DD/YYYY",
		Theme:      "light",
		ColorTheme: "blue",
		Notifications: NotificationSettings{
			EmailNotifications: true,
			BudgetAlerts:       true,
			GoalProgress:       true,
		},
	}
}
