package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fantabuste/envelope-server-go/internal/audit"
	apperrors "github.com/fantabuste/envelope-server-go/internal/errors"
	"github.com/fantabuste/envelope-server-go/internal/httputil"
	"github.com/fantabuste/envelope-server-go/internal/middleware"
	"github.com/fantabuste/envelope-server-go/internal/model"
	"github.com/fantabuste/envelope-server-go/internal/service"
	"github.com/fantabuste/envelope-server-go/internal/util"
)

const (
	paramError     = "error"
	paramInfo      = "info"
	paramSaved     = "saved"
	paramSubmitted = "submitted"
)

type homeView struct {
	Error string
}

type joinView struct {
	Code  string
	Error string
}

type envelopeView struct {
	Code  string
	View  *service.EnvelopeView
	Saved bool
	Error string
}

type lobbyView struct {
	Code      string
	View      *service.LobbyView
	Submitted bool
	Info      string
}

// ParticipantHandler serves the participant flow: home, join, envelope
// and lobby pages and their form actions.
type ParticipantHandler struct {
	sessionService     *service.SessionService
	participantService *service.ParticipantService
	identity           *middleware.IdentityCookies
	renderer           *Renderer
}

func NewParticipantHandler(
	sessionService *service.SessionService,
	participantService *service.ParticipantService,
	identity *middleware.IdentityCookies,
	renderer *Renderer,
) *ParticipantHandler {
	return &ParticipantHandler{
		sessionService:     sessionService,
		participantService: participantService,
		identity:           identity,
		renderer:           renderer,
	}
}

// GET /
func (h *ParticipantHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "home", Page{
		Data: homeView{Error: r.URL.Query().Get(paramError)},
	})
}

// POST /sessions
func (h *ParticipantHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.CreateSession(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")
		h.renderFailure(w, r, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:        audit.EventSessionCreate,
		SessionCode: result.Session.Code,
	})

	httputil.Redirect(w, r, adminPath(result.Session.Code), url.Values{"key": {result.AdminKey}})
}

// POST /join
func (h *ParticipantHandler) GoToJoin(w http.ResponseWriter, r *http.Request) {
	code, err := typedCode(r.PostFormValue("code"))
	if err != nil {
		httputil.RedirectWithReason(w, r, "/", paramError, apperrors.GetReason(err))
		return
	}
	httputil.Redirect(w, r, sessionPath(code, "join"), nil)
}

// GET /session/{code}
func (h *ParticipantHandler) SessionEntry(w http.ResponseWriter, r *http.Request) {
	code := codeParam(r)
	if h.identity.Read(r).Matches(code) {
		httputil.Redirect(w, r, sessionPath(code, "lobby"), nil)
		return
	}
	httputil.Redirect(w, r, sessionPath(code, "join"), nil)
}

// GET /session/{code}/join
func (h *ParticipantHandler) JoinPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "join", Page{
		Data: joinView{Code: codeParam(r), Error: r.URL.Query().Get(paramError)},
	})
}

// POST /session/{code}/join
func (h *ParticipantHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := codeParam(r)

	participant, err := h.participantService.Join(r.Context(), code, r.PostFormValue("displayName"))
	if err != nil {
		if apperrors.IsUserFacing(err) {
			httputil.RedirectWithReason(w, r, sessionPath(code, "join"), paramError, apperrors.GetReason(err))
			return
		}
		log.Error().Err(err).Str("code", code).Msg("failed to join session")
		h.renderFailure(w, r, err)
		return
	}

	h.identity.Set(w, participant.ID, code)

	audit.LogFromRequest(r, audit.Event{
		Type:          audit.EventParticipantJoin,
		SessionCode:   code,
		ParticipantID: participant.ID,
	})

	httputil.Redirect(w, r, sessionPath(code, "envelope"), nil)
}

// GET /session/{code}/envelope
func (h *ParticipantHandler) EnvelopePage(w http.ResponseWriter, r *http.Request) {
	code := codeParam(r)

	view, err := h.participantService.Envelope(r.Context(), h.identity.Read(r), code)
	if err != nil {
		h.handleViewerError(w, r, code, err)
		return
	}

	query := r.URL.Query()
	h.renderer.Render(w, r, http.StatusOK, "envelope", Page{
		Data: envelopeView{
			Code:  code,
			View:  view,
			Saved: query.Get(paramSaved) == "1",
			Error: query.Get(paramError),
		},
	})
}

// POST /session/{code}/envelope
func (h *ParticipantHandler) WriteEnvelope(w http.ResponseWriter, r *http.Request) {
	code := codeParam(r)
	identity := h.identity.Read(r)
	intent := model.ParseEnvelopeIntent(r.PostFormValue("intent"))

	err := h.participantService.WriteEnvelope(r.Context(), identity, code, r.PostFormValue("envelopeText"), intent)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.IdentityMissing()):
		httputil.RedirectWithReason(w, r, sessionPath(code, "join"), paramError, apperrors.ReasonRejoin)
		return
	case errors.Is(err, apperrors.AlreadySubmitted()):
		httputil.RedirectWithReason(w, r, sessionPath(code, "envelope"), paramError, apperrors.ReasonAlreadySubmitted)
		return
	case errors.Is(err, apperrors.SessionRevealed()):
		httputil.RedirectWithReason(w, r, sessionPath(code, "lobby"), paramInfo, apperrors.ReasonSessionRevealed)
		return
	default:
		h.handleViewerError(w, r, code, err)
		return
	}

	if intent == model.EnvelopeIntentSubmit {
		audit.LogFromRequest(r, audit.Event{
			Type:          audit.EventEnvelopeSubmit,
			SessionCode:   code,
			ParticipantID: identity.ParticipantID,
		})
		httputil.Redirect(w, r, sessionPath(code, "lobby"), url.Values{paramSubmitted: {"1"}})
		return
	}
	httputil.Redirect(w, r, sessionPath(code, "envelope"), url.Values{paramSaved: {"1"}})
}

// GET /session/{code}/lobby
func (h *ParticipantHandler) Lobby(w http.ResponseWriter, r *http.Request) {
	code := codeParam(r)

	view, err := h.participantService.Lobby(r.Context(), h.identity.Read(r), code)
	if err != nil {
		h.handleViewerError(w, r, code, err)
		return
	}

	query := r.URL.Query()
	h.renderer.Render(w, r, http.StatusOK, "lobby", Page{
		EventsURL: sessionPath(code, "events"),
		Data: lobbyView{
			Code:      code,
			View:      view,
			Submitted: query.Get(paramSubmitted) == "1",
			Info:      query.Get(paramInfo),
		},
	})
}

// handleViewerError sends a visitor without a usable identity back to the
// join page. A stale or foreign participant id also loses its cookies.
func (h *ParticipantHandler) handleViewerError(w http.ResponseWriter, r *http.Request, code string, err error) {
	switch {
	case errors.Is(err, apperrors.IdentityMissing()):
		httputil.Redirect(w, r, sessionPath(code, "join"), nil)
	case errors.Is(err, apperrors.InvalidParticipant()):
		audit.LogFromRequest(r, audit.Event{
			Type:          audit.EventIdentityRejected,
			SessionCode:   code,
			ParticipantID: h.identity.Read(r).ParticipantID,
		})
		h.identity.Clear(w)
		httputil.RedirectWithReason(w, r, sessionPath(code, "join"), paramError, apperrors.ReasonInvalidParticipant)
	default:
		log.Error().Err(err).Str("code", code).Msg("failed to load participant page")
		h.renderFailure(w, r, err)
	}
}

func (h *ParticipantHandler) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	renderFailure(h.renderer, w, r, err)
}

// renderFailure shows the error page. Only the allocation failure names
// its reason; store and internal errors stay generic.
func renderFailure(renderer *Renderer, w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperrors.CannotAllocateSession(0)) {
		renderer.RenderError(w, r, http.StatusServiceUnavailable, string(apperrors.ReasonCannotAllocate))
		return
	}
	renderer.RenderError(w, r, http.StatusInternalServerError, "")
}

// typedCode normalizes a code entered by hand. Nothing left means no code.
func typedCode(raw string) (string, error) {
	code := util.NormalizeCode(raw)
	if code == "" {
		return "", apperrors.InvalidCode()
	}
	return code, nil
}

// codeParam reads the session code from the URL in its canonical form.
func codeParam(r *http.Request) string {
	return util.NormalizeCode(chi.URLParam(r, "code"))
}

func sessionPath(code, page string) string {
	return "/session/" + url.PathEscape(code) + "/" + page
}

func adminPath(code string) string {
	return "/admin/" + url.PathEscape(code)
}
