package authsdk

import (
	"context"
	"net/http"
)

// GetUserInfo calls GET /api/auth/user-info.
func (s *Session) GetUserInfo(ctx context.Context) (*UserResponse, error) {
	return s.getUser(ctx, "/api/auth/user-info")
}

// GetProfile calls GET /api/users/profile.
func (s *Session) GetProfile(ctx context.Context) (*UserResponse, error) {
	return s.getUser(ctx, "/api/users/profile")
}

func (s *Session) getUser(ctx context.Context, path string) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile calls PUT /api/users/profile.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/users/profile", req)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword calls PUT /api/users/password. Tokens issued before the
// change stay valid until they expire.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/users/password", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// DeleteAccount calls DELETE /api/users/delete-account. The session is
// unusable afterwards.
func (s *Session) DeleteAccount(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/users/delete-account", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// GetPreferences calls GET /api/users/preferences. The server saves the
// defaults on the first call.
func (s *Session) GetPreferences(ctx context.Context) (*PreferencesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/users/preferences", nil)
	if err != nil {
		return nil, err
	}

	var prefs PreferencesResponse
	if err := decodeJSON(resp, &prefs, http.StatusOK); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdatePreferences calls PUT /api/users/preferences.
func (s *Session) UpdatePreferences(ctx context.Context, req UpdatePreferencesRequest) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/users/preferences", req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// UpdateNotifications calls PUT /api/users/notifications.
func (s *Session) UpdateNotifications(ctx context.Context, req NotificationSettings) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/users/notifications", req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
