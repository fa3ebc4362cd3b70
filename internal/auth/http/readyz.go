package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/fintrack/fintrack/pkg/httpx"
	"github.com/fintrack/fintrack/pkg/slogx"
)

// readyzSubject is only ever signed for the self-check below.
const readyzSubject = "readyz-check"

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness check checking the database connection and a sign/verify round trip of the token service.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, tokens Tokens) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := slogx.FromContext(r.Context())
		checks := &authsdk.HealthChecks{
			Database: "ok",
			Tokens:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			log.Warn("readiness: database ping failed", slog.Any("error", err))
			checks.Database = "error"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check the key can still sign and verify
		if err := checkTokens(tokens); err != nil {
			log.Warn("readiness: token self-check failed", slog.Any("error", err))
			checks.Tokens = "error"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

func checkTokens(tokens Tokens) error {
	tok, err := tokens.Issue(readyzSubject)
	if err != nil {
		return err
	}
	_, err = tokens.Validate(tok)
	return err
}
