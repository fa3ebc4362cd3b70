package authsdk

import (
	"net/http"
	"net/mail"
	"strings"
	"time"
)

// LoginRequest is the body of POST /api/auth/login. Username may hold
// either a username or an email; Email is used when Username is blank.
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Identifier returns the single identifier handed to the login core.
func (r LoginRequest) Identifier() string {
	if id := strings.TrimSpace(r.Username); id != "" {
		return id
	}
	return strings.TrimSpace(r.Email)
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn int               `json:"expires_in"`
	Principal PrincipalResponse `json:"principal"`
}

// PrincipalResponse is the identity the token resolves to.
type PrincipalResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

// Normalize trims fields and falls back to the full name when no username
// was given.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Username == "" {
		r.Username = r.FullName
	}
}

// Validate checks a normalized request.
func (r RegisterRequest) Validate() error {
	switch {
	case r.Username == "":
		return NewAPIError(http.StatusBadRequest, ErrorCodeInvalidRequest, "username is required")
	case len(r.Username) > MaxUsernameLength:
		return NewAPIError(http.StatusBadRequest, ErrorCodeInvalidRequest, "username is too long")
	case !ValidEmail(r.Email):
		return NewAPIError(http.StatusBadRequest, ErrorCodeInvalidRequest, "a valid email is required")
	case len(r.Password) < MinPasswordLength:
		return NewAPIError(http.StatusBadRequest, ErrorCodeInvalidRequest, "password is too short")
	case len(r.Password) > MaxPasswordLength:
		return NewAPIError(http.StatusBadRequest, ErrorCodeInvalidRequest, "password is too long")
	}
	return nil
}

const (
	MaxUsernameLength = 64
	MinPasswordLength = 6
	MaxPasswordLength = 256
)

// ValidEmail reports whether s is a bare address like bob@x.com.
func ValidEmail(s string) bool {
	if s == "" || len(s) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// MessageResponse carries a human-readable result.
type MessageResponse struct {
	Message string `json:"message"`
}

// AvailabilityResponse answers the check-email and check-username lookups.
type AvailabilityResponse struct {
	Exists bool `json:"exists"`
}

// UserResponse is the account view returned by user-info and profile.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// UpdateProfileRequest is the body of PUT /api/users/profile. Empty fields
// are left unchanged.
type UpdateProfileRequest struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ChangePasswordRequest is the body of PUT /api/users/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PreferencesResponse is the body of GET /api/users/preferences.
type PreferencesResponse struct {
	UserID               string               `json:"userId"`
	Currency             string               `json:"currency"`
	DateFormat           string               `json:"dateFormat"`
	Theme                string               `json:"theme"`
	ColorTheme           string               `json:"colorTheme"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
}

// UpdatePreferencesRequest is the body of PUT /api/users/preferences.
// Empty fields are left unchanged.
type UpdatePreferencesRequest struct {
	Currency   string `json:"currency,omitempty"`
	DateFormat string `json:"dateFormat,omitempty"`
	Theme      string `json:"theme,omitempty"`
	ColorTheme string `json:"colorTheme,omitempty"`
}

// NotificationSettings is the body of PUT /api/users/notifications. All
// four flags are replaced; an omitted flag is false.
type NotificationSettings struct {
	EmailNotifications bool `json:"emailNotifications"`
	BudgetAlerts       bool `json:"budgetAlerts"`
	GoalProgress       bool `json:"goalProgress"`
	WeeklySummary      bool `json:"weeklySummary"`
}

// MaxPreferenceLength caps each free-form preference value.
const MaxPreferenceLength = 32

// ErrorResponse is the JSON shape of every error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency as "ok" or "error".
type HealthChecks struct {
	Database string `json:"database"`
	Tokens   string `json:"tokens"`
}
