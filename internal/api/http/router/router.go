package router

import (
	"net/http"

	"github.com/qzplatform/account-service/internal/api/http/handler"
	"github.com/qzplatform/account-service/internal/api/http/middleware"
	"github.com/qzplatform/account-service/internal/logger"
	"github.com/qzplatform/account-service/internal/model"
	"github.com/qzplatform/account-service/internal/service"
)

// Router wires HTTP handlers and middleware into a request multiplexer.
type Router struct {
	authService      *service.Auth
	resetService     *service.Reset
	accountService   *service.Account
	provisionService *service.Provision
	sessions         model.SessionManager
	contextManager   model.ContextManager
	storage          model.Storage
	logger           *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	resetService *service.Reset,
	accountService *service.Account,
	provisionService *service.Provision,
	sessions model.SessionManager,
	contextManager model.ContextManager,
	storage model.Storage,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:      authService,
		resetService:     resetService,
		accountService:   accountService,
		provisionService: provisionService,
		sessions:         sessions,
		contextManager:   contextManager,
		storage:          storage,
		logger:           logger,
	}
}

// Register builds the route table. Auth endpoints are public; account
// management requires a valid session token.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.logger)

	mux := http.NewServeMux()
	r.registerAuthRoutes(mux)
	r.registerAccountRoutes(mux, authenticate)

	return logging.Wrap(mux)
}

func (r *Router) registerAuthRoutes(mux *http.ServeMux) {
	authHandler := handler.NewAuth(r.authService, r.resetService, r.logger)

	mux.HandleFunc("POST /api/auths/register", authHandler.Register)
	mux.HandleFunc("POST /api/auths/login", authHandler.Login)
	mux.HandleFunc("POST /api/auths/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /api/auths/reset-password/{token}", authHandler.ResetPassword)
}

func (r *Router) registerAccountRoutes(mux *http.ServeMux, authenticate *middleware.Authenticate) {
	accountHandler := handler.NewAccount(r.accountService, r.provisionService, r.storage, r.logger)

	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate.Wrap(h)
	}

	mux.Handle("GET /api/accounts", protected(accountHandler.List))
	mux.Handle("POST /api/accounts", protected(accountHandler.Create))
	mux.Handle("GET /api/accounts/{id}", protected(accountHandler.Get))
	mux.Handle("PUT /api/accounts/{id}", protected(accountHandler.Update))
	mux.Handle("DELETE /api/accounts/{id}", protected(accountHandler.Delete))
	mux.Handle("POST /api/accounts/import", protected(accountHandler.Import))
}
