package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/fantabuste/envelope-server-go/internal/config"
	"github.com/fantabuste/envelope-server-go/internal/middleware"
	"github.com/fantabuste/envelope-server-go/internal/service"
	"github.com/fantabuste/envelope-server-go/internal/sse"
)

// RateLimits are per-IP action budgets over Window. Zero disables one.
type RateLimits struct {
	Create int
	Join   int
	Reveal int
	Window time.Duration
}

type Dependencies struct {
	SessionService     *service.SessionService
	ParticipantService *service.ParticipantService
	Broker             *sse.Broker
	Identity           *middleware.IdentityCookies
	Renderer           *Renderer
	DB                 Pinger
	Limiter            middleware.Limiter
	RateLimits         RateLimits
	IsProduction       bool
}

// NewRouter wires every page, action and stream behind the shared
// middleware stack.
func NewRouter(deps Dependencies) chi.Router {
	participantHandler := NewParticipantHandler(
		deps.SessionService, deps.ParticipantService, deps.Identity, deps.Renderer,
	)
	adminHandler := NewAdminHandler(deps.SessionService, deps.Renderer)
	eventsHandler := NewEventsHandler(
		deps.Broker, deps.SessionService, deps.ParticipantService, deps.Identity,
	)

	limits := deps.RateLimits
	createLimit := middleware.NewIPRateLimitMiddleware(deps.Limiter, limits.Create, limits.Window, "create")
	joinLimit := middleware.NewIPRateLimitMiddleware(deps.Limiter, limits.Join, limits.Window, "join")
	revealLimit := middleware.NewIPRateLimitMiddleware(deps.Limiter, limits.Reveal, limits.Window, "reveal")

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewSecurityHeadersMiddleware(deps.IsProduction).Handler)
	r.Use(middleware.NewBodyLimitMiddleware(0).Handler)

	r.Get("/health", NewHealthHandler(deps.DB).ServeHTTP)
	r.Handle("/static/*", NewStaticHandler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRFMiddleware(deps.IsProduction).Handler)

		// Long-lived stream; no request timeout.
		r.Get("/session/{code}/events", eventsHandler.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

			r.Get("/", participantHandler.Home)
			r.With(createLimit.Handler).Post("/sessions", participantHandler.CreateSession)
			r.Post("/join", participantHandler.GoToJoin)

			r.Get("/session/{code}", participantHandler.SessionEntry)
			r.Get("/session/{code}/join", participantHandler.JoinPage)
			r.With(joinLimit.Handler).Post("/session/{code}/join", participantHandler.Join)
			r.Get("/session/{code}/envelope", participantHandler.EnvelopePage)
			r.Post("/session/{code}/envelope", participantHandler.WriteEnvelope)
			r.Get("/session/{code}/lobby", participantHandler.Lobby)

			r.Get("/admin/{code}", adminHandler.AdminPage)
			r.With(revealLimit.Handler).Post("/admin/{code}/reveal", adminHandler.Reveal)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		deps.Renderer.Render(w, r, http.StatusNotFound, "error", Page{Data: errorView{}})
	})

	return r
}
