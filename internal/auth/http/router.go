package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fintrack/fintrack/internal/auth/metrics"
	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/fintrack/fintrack/pkg/httpx"
	"github.com/fintrack/fintrack/pkg/jwtx"
	"github.com/fintrack/fintrack/pkg/slogx"

	_ "github.com/fintrack/fintrack/api/fintrack" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Realm is advertised in WWW-Authenticate challenges.
const Realm = "fintrack"

// Tokens is the token service as seen by the HTTP layer.
type Tokens interface {
	jwtx.Signer
	jwtx.Verifier
}

// RouterConfig carries the shared dependencies handed to NewRouter.
type RouterConfig struct {
	BuildVersion string
	Logger       *slog.Logger
	Store        store.Store
	Tokens       Tokens
	Metrics      *metrics.Metrics
	RateLimits   httpx.RateLimits
	CORSOrigins  []string

	// TrustProxy keys rate limits on X-Forwarded-For / X-Real-IP instead of
	// the socket address.
	TrustProxy bool
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	tokens       Tokens
	metrics      *metrics.Metrics
	limits       httpx.RateLimits
	clientIP     httpx.KeyExtractor

	AuthService    *service.AuthService
	Authenticator  *service.Authenticator
	AccountService *service.AccountService
}

func NewRouter(cfg RouterConfig) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clientIP := httpx.IPKeyExtractor
	if cfg.TrustProxy {
		clientIP = httpx.ProxyIPKeyExtractor
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = httpx.DefaultCORSOrigins
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: cfg.BuildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        cfg.Store,
		tokens:       cfg.Tokens,
		metrics:      cfg.Metrics,
		limits:       cfg.RateLimits,
		clientIP:     clientIP,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(origins),
		r.authenticate,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Fintrack API
//	@version					0.1.0
//	@description				Authentication and account endpoints of the fintrack personal finance backend.
//	@description
//	@description				Tokens are HS256-signed JWTs. Send them as "Authorization: Bearer {token}".
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticate is the per-request interceptor; it never rejects.
func (r *Router) authenticate(next http.Handler) http.Handler {
	return Authenticate(r.Authenticator, r.metrics)(next)
}

// handle registers h under pattern with per-route instrumentation first.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	chain := append([]httpx.Middleware{r.metrics.Instrument(pattern)}, mws...)
	r.Mux.Handle(pattern, httpx.Chain(h, chain...))
}

// limit builds a rate limiter for one route and reports rejections.
func (r *Router) limit(route string, cfg httpx.RateLimitConfig, key httpx.KeyExtractor) httpx.Middleware {
	rl := httpx.NewRateLimiter(cfg, key)
	rl.OnLimited = func(*http.Request) { r.metrics.RateLimited(route) }
	return rl.Middleware()
}

func (r *Router) registerAuth() {
	login := &LoginHandler{AuthService: r.AuthService, Metrics: r.metrics}
	register := &RegisterHandler{AccountService: r.AccountService}
	availability := &AvailabilityHandler{AccountService: r.AccountService}
	userInfo := &UserInfoHandler{AccountService: r.AccountService}

	// POST /login - strict, keyed by IP + identifier to slow password guessing
	r.handle("POST /api/auth/login", login,
		r.limit("POST /api/auth/login", r.limits.Strict,
			httpx.CompositeKeyExtractor(":", r.clientIP, httpx.JSONFieldKeyExtractor("username", "email")),
		),
	)

	// POST /register - strict by IP
	r.handle("POST /api/auth/register", register,
		r.limit("POST /api/auth/register", r.limits.Strict, r.clientIP),
	)

	// Availability lookups - moderate by IP
	r.handle("GET /api/auth/check-email", http.HandlerFunc(availability.HandleEmail),
		r.limit("GET /api/auth/check-email", r.limits.Moderate, r.clientIP),
	)
	r.handle("GET /api/auth/check-username", http.HandlerFunc(availability.HandleUsername),
		r.limit("GET /api/auth/check-username", r.limits.Moderate, r.clientIP),
	)

	r.handle("GET /api/auth/user-info", userInfo,
		RequireAuthenticated,
		r.limit("GET /api/auth/user-info", r.limits.Lenient, PrincipalKeyExtractor),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{AccountService: r.AccountService}

	r.handle("GET /api/users/profile", http.HandlerFunc(h.HandleGetProfile),
		RequireAuthenticated,
		r.limit("GET /api/users/profile", r.limits.Lenient, PrincipalKeyExtractor),
	)
	r.handle("PUT /api/users/profile", http.HandlerFunc(h.HandleUpdateProfile),
		RequireAuthenticated,
		r.limit("PUT /api/users/profile", r.limits.Moderate, PrincipalKeyExtractor),
	)
	r.handle("GET /api/users/preferences", http.HandlerFunc(h.HandleGetPreferences),
		RequireAuthenticated,
		r.limit("GET /api/users/preferences", r.limits.Lenient, PrincipalKeyExtractor),
	)
	r.handle("PUT /api/users/preferences", http.HandlerFunc(h.HandleUpdatePreferences),
		RequireAuthenticated,
		r.limit("PUT /api/users/preferences", r.limits.Moderate, PrincipalKeyExtractor),
	)
	r.handle("PUT /api/users/notifications", http.HandlerFunc(h.HandleUpdateNotifications),
		RequireAuthenticated,
		r.limit("PUT /api/users/notifications", r.limits.Moderate, PrincipalKeyExtractor),
	)

	// Password changes verify the current password, so treat them like logins
	r.handle("PUT /api/users/password", http.HandlerFunc(h.HandleChangePassword),
		RequireAuthenticated,
		r.limit("PUT /api/users/password", r.limits.Strict, PrincipalKeyExtractor),
	)
	r.handle("DELETE /api/users/delete-account", http.HandlerFunc(h.HandleDeleteAccount),
		RequireAuthenticated,
		r.limit("DELETE /api/users/delete-account", r.limits.Strict, PrincipalKeyExtractor),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion),
		r.limit("GET /livez", r.limits.Lenient, r.clientIP),
	)
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.tokens),
		r.limit("GET /readyz", r.limits.Lenient, r.clientIP),
	)

	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
