package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/fintrack/fintrack/pkg/httpx"
	"github.com/fintrack/fintrack/pkg/slogx"
)

// UsersHandler serves the authenticated account endpoints under /api/users.
type UsersHandler struct {
	AccountService *service.AccountService
}

// HandleGetProfile godoc
//
//	@Summary	Get profile
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	authsdk.UserResponse	"Profile"
//	@Failure	401	{object}	authsdk.ErrorResponse	"Unauthorized"
//	@Router		/api/users/profile [get].
func (h *UsersHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, _ := service.PrincipalFromContext(r.Context())

	user, err := h.AccountService.Profile(r.Context(), p.ID)
	if err != nil {
		writeAccountError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

// HandleUpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Changes full name and/or email. Omitted fields stay as they are.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.UpdateProfileRequest	true	"Profile changes"
//	@Success		200		{object}	authsdk.UserResponse			"Updated profile"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Invalid input or email in use"
//	@Failure		401		{object}	authsdk.ErrorResponse			"Unauthorized"
//	@Router			/api/users/profile [put].
func (h *UsersHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, _ := service.PrincipalFromContext(r.Context())

	var req authsdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if req.Email != "" && !authsdk.ValidEmail(req.Email) {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "a valid email is required").WriteError(w)
		return
	}

	user, err := h.AccountService.UpdateProfile(r.Context(), p.ID, req.FullName, req.Email)
	if err != nil {
		writeAccountError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	Replaces the password after checking the current one. Tokens already issued stay valid until they expire.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	authsdk.MessageResponse			"message"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Invalid input"
//	@Failure		401		{object}	authsdk.ErrorResponse			"Unauthorized or current password incorrect"
//	@Router			/api/users/password [put].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	p, _ := service.PrincipalFromContext(r.Context())

	var req authsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	switch {
	case len(req.NewPassword) < authsdk.MinPasswordLength:
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "password is too short").WriteError(w)
		return
	case len(req.NewPassword) > authsdk.MaxPasswordLength:
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "password is too long").WriteError(w)
		return
	}

	if err := h.AccountService.ChangePassword(r.Context(), p.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeAccountError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Password updated successfully"})
}

// HandleDeleteAccount godoc
//
//	@Summary		Delete account
//	@Description	Removes the account. Outstanding tokens stop authenticating.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse	"message"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Unauthorized"
//	@Router			/api/users/delete-account [delete].
func (h *UsersHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	p, _ := service.PrincipalFromContext(r.Context())

	if err := h.AccountService.DeleteAccount(r.Context(), p.ID); err != nil {
		writeAccountError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Account deleted successfully"})
}

// HandleGetPreferences godoc
//
//	@Summary		Get preferences
//	@Description	Returns display and notification settings. Defaults are saved on the first call.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.PreferencesResponse	"Preferences"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Unauthorized"
//	@Router			/api/users/preferences [get].
func (h *UsersHandler) HandleGetPreferences(w http.ResponseWriter, r *http.Request) {
	p, _ := service.PrincipalFromContext(r.Context())

	prefs, err := h.AccountService.Preferences(r.Context(), p.ID)
	if err != nil {
		writeAccountError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, preferencesResponse(prefs))
}

// HandleUpdatePreferences godoc
//
//	@Summary		Update preferences
//	@Description	Changes currency, date format and themes. Omitted fields stay as they are.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.UpdatePreferencesRequest	true	"Preference changes"
//	@Success		200		{object}	authsdk.MessageResponse				"message"
//	@Failure		400		{object}	authsdk.ErrorResponse				"Invalid input"
//	@Failure		401		{object}	authsdk.ErrorResponse				"Unauthorized"
//	@Router			/api/users/preferences [put].
func (h *UsersHandler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	p, _ := service.PrincipalFromContext(r.Context())

	var req authsdk.UpdatePreferencesRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	upd := service.PreferencesUpdate{
		Currency:   strings.TrimSpace(req.Currency),
		DateFormat: strings.TrimSpace(req.DateFormat),
		Theme:      strings.TrimSpace(req.Theme),
		ColorTheme: strings.TrimSpace(req.ColorTheme),
	}
	for _, v := range []string{upd.Currency, upd.DateFormat, upd.Theme, upd.ColorTheme} {
		if len(v) > authsdk.MaxPreferenceLength {
			authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "preference value is too long").WriteError(w)
			return
		}
	}

	if _, err := h.AccountService.UpdatePreferences(r.Context(), p.ID, upd); err != nil {
		writeAccountError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Preferences updated successfully"})
}

// HandleUpdateNotifications godoc
//
//	@Summary		Update notification settings
//	@Description	Replaces all four notification flags. Omitted flags are turned off.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.NotificationSettings	true	"Notification flags"
//	@Success		200		{object}	authsdk.MessageResponse			"message"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Invalid input"
//	@Failure		401		{object}	authsdk.ErrorResponse			"Unauthorized"
//	@Router			/api/users/notifications [put].
func (h *UsersHandler) HandleUpdateNotifications(w http.ResponseWriter, r *http.Request) {
	p, _ := service.PrincipalFromContext(r.Context())

	var req authsdk.NotificationSettings
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	_, err := h.AccountService.UpdateNotifications(r.Context(), p.ID, domain.NotificationSettings{
		EmailNotifications: req.EmailNotifications,
		BudgetAlerts:       req.BudgetAlerts,
		GoalProgress:       req.GoalProgress,
		WeeklySummary:      req.WeeklySummary,
	})
	if err != nil {
		writeAccountError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Notification settings updated successfully"})
}

func preferencesResponse(p domain.Preferences) authsdk.PreferencesResponse {
	return authsdk.PreferencesResponse{
		UserID:     p.UserID,
		Currency:   p.Currency,
		DateFormat: p.DateFormat,
		Theme:      p.Theme,
		ColorTheme: p.ColorTheme,
		NotificationSettings: authsdk.NotificationSettings{
			EmailNotifications: p.Notifications.EmailNotifications,
			BudgetAlerts:       p.Notifications.BudgetAlerts,
			GoalProgress:       p.Notifications.GoalProgress,
			WeeklySummary:      p.Notifications.WeeklySummary,
		},
	}
}

// writeAccountError maps AccountService errors onto API errors.
func writeAccountError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrPrincipalNotFound):
		// The account vanished mid-request; answer like any other stale token
		httpx.WriteBearerChallenge(w, Realm)
		authsdk.ErrUnauthorized.WriteError(w)
	case errors.Is(err, service.ErrIncorrectPassword):
		authsdk.ErrCurrentPasswordIncorrect.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		authsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrUsernameTaken):
		authsdk.ErrUsernameTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidRequest):
		authsdk.ErrInvalidRequest.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("account operation failed", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
	}
}
