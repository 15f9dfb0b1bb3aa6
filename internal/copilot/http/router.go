package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/copilot/internal/copilot/metrics"
	"github.com/aussiebroadwan/copilot/internal/copilot/service"
	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/pkg/httpx"
	"github.com/aussiebroadwan/copilot/pkg/jwtx"
	"github.com/aussiebroadwan/copilot/pkg/slogx"

	_ "github.com/aussiebroadwan/copilot/api/copilot" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limit profiles applied per route group.
type Limits struct {
	Auth    httpx.RateLimitConfig
	Records httpx.RateLimitConfig
	Public  httpx.RateLimitConfig
}

// Options tune the router. The zero value disables auth on the record
// routes and every rate limit, which is what most handler tests want.
type Options struct {
	// AuthRequired puts the bearer token check in front of /clients.
	AuthRequired bool

	Limits Limits
	CORS   httpx.CORSConfig
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	opts         Options

	store          store.Store
	AccountService *service.AccountService
	ClientService  *service.ClientService
	TokenService   *service.TokenService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	opts Options,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		opts:         opts,
	}

	// CORS sits inside logging so preflights are still logged, but outside
	// the mux so OPTIONS never reaches a method-restricted pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metrics.InstrumentHandler,
		httpx.CORS(opts.CORS),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerClients()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Copilot Bookkeeping API
//	@version		0.1.0
//	@description	Backend for a small bookkeeping assistant: accounts, clients and the services kept for each client.
//	@description
//	@description				Access tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/copilot
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
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

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AccountService: r.AccountService,
		TokenService:   r.TokenService,
	}

	// Credential endpoints - strict rate limit by IP to slow down guessing
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.opts.Limits.Auth),
		),
	)
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(r.opts.Limits.Auth),
		),
	)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	secured := func(fn http.HandlerFunc) http.Handler {
		var authn httpx.Middleware
		if r.opts.AuthRequired {
			authn = httpx.AuthnMiddleware(r.verifier)
		}
		return httpx.Chain(fn,
			authn,
			httpx.RateLimitByAccount(r.opts.Limits.Records),
		)
	}

	r.Mux.Handle("GET /clients", secured(h.HandleList))
	r.Mux.Handle("POST /clients", secured(h.HandleCreate))
	r.Mux.Handle("GET /clients/{clientId}/services", secured(h.HandleListServices))
	r.Mux.Handle("POST /clients/{clientId}/services", secured(h.HandleAddService))
}

func (r *Router) registerSystem() {
	// Health and discovery endpoints - public limit, monitoring polls often
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.opts.Limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(r.opts.Limits.Public),
		),
	)
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(r.opts.Limits.Public),
		),
	)
	r.Mux.Handle("GET /metrics", metrics.Handler())
}
