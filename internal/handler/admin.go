package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/fantabuste/envelope-server-go/internal/audit"
	apperrors "github.com/fantabuste/envelope-server-go/internal/errors"
	"github.com/fantabuste/envelope-server-go/internal/httputil"
	"github.com/fantabuste/envelope-server-go/internal/service"
)

const (
	adminStateNotFound     = "not_found"
	adminStateUnauthorized = "unauthorized"
	adminStateReady        = "ready"
)

type adminView struct {
	Code    string
	State   string
	Error   string
	Key     string
	JoinURL string
	Board   *service.SessionBoard
}

// AdminHandler serves the key-protected admin page and the reveal action.
type AdminHandler struct {
	sessionService *service.SessionService
	renderer       *Renderer
}

func NewAdminHandler(sessionService *service.SessionService, renderer *Renderer) *AdminHandler {
	return &AdminHandler{
		sessionService: sessionService,
		renderer:       renderer,
	}
}

// GET /admin/{code}?key=
func (h *AdminHandler) AdminPage(w http.ResponseWriter, r *http.Request) {
	code := codeParam(r)
	query := r.URL.Query()
	key := query.Get("key")
	view := adminView{Code: code, Error: query.Get(paramError)}

	board, err := h.sessionService.AdminBoard(r.Context(), code, key)
	switch {
	case err == nil:
		view.State = adminStateReady
		view.Key = key
		view.Board = board
		view.JoinURL = absoluteURL(r, sessionPath(code, "join"))
		h.renderer.Render(w, r, http.StatusOK, "admin", Page{
			EventsURL: sessionPath(code, "events") + "?" + url.Values{"key": {key}}.Encode(),
			Data:      view,
		})
	case errors.Is(err, apperrors.SessionNotFound()):
		view.State = adminStateNotFound
		h.renderer.Render(w, r, http.StatusNotFound, "admin", Page{Data: view})
	case errors.Is(err, apperrors.MissingKey()), errors.Is(err, apperrors.WrongKey()):
		if key != "" {
			audit.LogFromRequest(r, audit.Event{
				Type:        audit.EventAdminAccessDenied,
				SessionCode: code,
			})
		}
		view.State = adminStateUnauthorized
		h.renderer.Render(w, r, http.StatusUnauthorized, "admin", Page{Data: view})
	default:
		log.Error().Err(err).Str("code", code).Msg("failed to load admin page")
		renderFailure(h.renderer, w, r, err)
	}
}

// POST /admin/{code}/reveal
func (h *AdminHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	code := codeParam(r)
	key := r.PostFormValue("key")

	session, err := h.sessionService.Reveal(r.Context(), code, key)
	if err != nil {
		if !apperrors.IsUserFacing(err) {
			log.Error().Err(err).Str("code", code).Msg("failed to reveal session")
			renderFailure(h.renderer, w, r, err)
			return
		}
		audit.LogFromRequest(r, audit.Event{
			Type:        audit.EventRevealFailure,
			SessionCode: code,
			Details:     map[string]interface{}{"reason": string(apperrors.GetReason(err))},
		})
		httputil.RedirectWithReason(w, r, adminPath(code), paramError, apperrors.GetReason(err))
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:        audit.EventSessionReveal,
		SessionCode: session.Code,
	})

	httputil.Redirect(w, r, adminPath(session.Code), url.Values{"key": {key}})
}

// absoluteURL builds a shareable link from the request's host. The scheme
// follows TLS or a proxy's X-Forwarded-Proto.
func absoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return (&url.URL{Scheme: scheme, Host: r.Host, Path: path}).String()
}
