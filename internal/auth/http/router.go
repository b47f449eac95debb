package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/stackmill/gatehouse/internal/auth/service"
	"github.com/stackmill/gatehouse/internal/auth/store"
	"github.com/stackmill/gatehouse/pkg/httpx"
	"github.com/stackmill/gatehouse/pkg/jwtx"
	"github.com/stackmill/gatehouse/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	Registration *service.RegistrationService
	Directory    *service.DirectoryService
	Sessions     *service.SessionService
}

func NewRouter(
	signer *jwtx.Signer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClients()
	r.registerSessions()
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerClients() {
	h := &RegisterHandler{Registration: r.Registration}

	// Registration is deliberately guard-free: brand new clients have no
	// credentials yet, and updates carry theirs in the body.
	r.Mux.Handle("POST /api/client/register", http.HandlerFunc(h.HandlePost))
	r.Mux.Handle("OPTIONS /api/client/register", http.HandlerFunc(h.HandleOptions))
}

func (r *Router) registerSessions() {
	h := &SessionHandler{Sessions: r.Sessions}

	// Login rejects callers that already hold a session, then verifies
	// Basic credentials.
	r.Mux.Handle("POST /api/session",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			GetCurrentUser(r.Sessions),
			NoUser(),
			CheckCredentials(r.Directory),
		),
	)

	r.Mux.Handle("DELETE /api/session",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			GetCurrentUser(r.Sessions),
			MustAuth(),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{}

	r.Mux.Handle("GET /api/whoami",
		httpx.Chain(http.HandlerFunc(h.HandleWhoAmI),
			MaybeAuth(r.Sessions),
			MustAuth(),
		),
	)

	// Profiles are public; the optional identity only feeds logging.
	r.Mux.Handle("GET /api/user/{nickname}",
		httpx.Chain(http.HandlerFunc(h.HandleProfile),
			MaybeAuth(r.Sessions),
			ReqUser(r.Directory),
		),
	)

	r.Mux.Handle("GET /api/user/{nickname}/settings",
		httpx.Chain(http.HandlerFunc(h.HandleSettings),
			MaybeAuth(r.Sessions),
			ReqUser(r.Directory),
			MustAuth(),
			SameUser(),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer))
}
