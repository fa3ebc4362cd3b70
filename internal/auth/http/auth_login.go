package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/internal/auth/metrics"
	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/fintrack/fintrack/pkg/httpx"
	"github.com/fintrack/fintrack/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
	Metrics     *metrics.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Exchanges a username or email plus password for a bearer token.
//	@Description	When username is blank the email field is used as the identifier.
//	@Description	An unknown identifier and a wrong password produce the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"token, type, expires_in, principal"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limited"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	res, err := h.AuthService.Login(ctx, req.Identifier(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.Metrics.Login(metrics.LoginInvalidCredentials)
			authsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		h.Metrics.Login(metrics.LoginError)
		log.Error("login failed", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	h.Metrics.Login(metrics.LoginSuccess)
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Token:     res.Token,
		Type:      "Bearer",
		ExpiresIn: int(res.ExpiresIn.Seconds()),
		Principal: principalResponse(res.Principal),
	})
}

func principalResponse(p domain.Principal) authsdk.PrincipalResponse {
	return authsdk.PrincipalResponse{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		Roles:    p.Roles,
	}
}

func userResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}
