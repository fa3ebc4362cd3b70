package http

import (
	"net/http"

	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/fintrack/fintrack/pkg/httpx"
)

type UserInfoHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles the user-info endpoint.
//
//	@Summary		Get user information
//	@Description	Returns the account behind the bearer token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"id, username, email, fullName"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/api/auth/user-info [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := service.PrincipalFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	user, err := h.AccountService.Profile(r.Context(), p.ID)
	if err != nil {
		writeAccountError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}
