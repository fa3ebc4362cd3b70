package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/fintrack/fintrack/pkg/httpx"
	"github.com/fintrack/fintrack/pkg/slogx"
)

type RegisterHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Creates an account. A blank username falls back to fullName.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"New account"
//	@Success		200		{object}	authsdk.MessageResponse	"message"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Invalid input, username taken or email in use"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limited"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		writeAPIError(w, err)
		return
	}

	_, err := h.AccountService.Register(ctx, service.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			authsdk.ErrUsernameTaken.WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			authsdk.ErrEmailTaken.WriteError(w)
		case errors.Is(err, service.ErrInvalidRequest):
			authsdk.ErrInvalidRequest.WriteError(w)
		default:
			log.Error("registration failed", slog.Any("error", err))
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "User registered successfully!"})
}

type AvailabilityHandler struct {
	AccountService *service.AccountService
}

// HandleEmail godoc
//
//	@Summary	Check email
//	@Tags		Auth
//	@Produce	json
//	@Param		email	query		string							true	"Email address"
//	@Success	200		{object}	authsdk.AvailabilityResponse	"exists"
//	@Failure	400		{object}	authsdk.ErrorResponse			"Missing email"
//	@Router		/api/auth/check-email [get].
func (h *AvailabilityHandler) HandleEmail(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, "email", h.AccountService.EmailExists)
}

// HandleUsername godoc
//
//	@Summary	Check username
//	@Tags		Auth
//	@Produce	json
//	@Param		username	query		string							true	"Username"
//	@Success	200			{object}	authsdk.AvailabilityResponse	"exists"
//	@Failure	400			{object}	authsdk.ErrorResponse			"Missing username"
//	@Router		/api/auth/check-username [get].
func (h *AvailabilityHandler) HandleUsername(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, "username", h.AccountService.UsernameExists)
}

func (h *AvailabilityHandler) check(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	exists func(ctx context.Context, v string) (bool, error),
) {
	v := strings.TrimSpace(r.URL.Query().Get(param))
	if v == "" {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, param+" is required").WriteError(w)
		return
	}

	ok, err := exists(r.Context(), v)
	if err != nil {
		slogx.FromContext(r.Context()).Error("availability check failed", slog.String("param", param), slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AvailabilityResponse{Exists: ok})
}

// writeAPIError writes err as-is when it is an *authsdk.APIError, and a
// generic 500 otherwise.
func writeAPIError(w http.ResponseWriter, err error) {
	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) {
		apiErr.WriteError(w)
		return
	}
	authsdk.ErrServerError.WriteError(w)
}
