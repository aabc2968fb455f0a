package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fantabuste/envelope-server-go/internal/middleware"
	"github.com/fantabuste/envelope-server-go/internal/service"
	"github.com/fantabuste/envelope-server-go/internal/sse"
)

// EventsHandler streams session changes to open lobby and admin pages.
type EventsHandler struct {
	broker             *sse.Broker
	sessionService     *service.SessionService
	participantService *service.ParticipantService
	identity           *middleware.IdentityCookies
}

func NewEventsHandler(
	broker *sse.Broker,
	sessionService *service.SessionService,
	participantService *service.ParticipantService,
	identity *middleware.IdentityCookies,
) *EventsHandler {
	return &EventsHandler{
		broker:             broker,
		sessionService:     sessionService,
		participantService: participantService,
		identity:           identity,
	}
}

// GET /session/{code}/events
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := codeParam(r)
	ctx := r.Context()

	// A participant of the session or the holder of its admin key.
	viewer := "admin"
	if key := r.URL.Query().Get("key"); key != "" {
		if _, err := h.sessionService.Authorize(ctx, code, key); err != nil {
			writeText(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
	} else {
		participant, err := h.participantService.ResolveViewer(ctx, h.identity.Read(r), code)
		if err != nil {
			writeText(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		viewer = participant.ID
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeText(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := h.broker.Subscribe(code)
	defer h.broker.Unsubscribe(client)

	log.Info().
		Str("code", code).
		Str("viewer", viewer).
		Msg("sse connection established")

	if err := h.sendEvent(w, flusher, "connected", map[string]string{"code": code}); err != nil {
		return
	}

	heartbeat := time.NewTicker(sse.HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().
				Str("code", code).
				Msg("sse connection closed by client")
			return

		case <-client.Done:
			log.Info().
				Str("code", code).
				Msg("sse connection closed by broker")
			return

		case event := <-client.Events:
			if err := h.sendRawEvent(w, flusher, event); err != nil {
				log.Error().Err(err).Msg("failed to send event")
				return
			}

		case <-heartbeat.C:
			if _, err := fmt.Fprintf(w, ": ping\n\n"); err != nil {
				log.Debug().
					Str("code", code).
					Msg("heartbeat failed, closing connection")
				return
			}
			flusher.Flush()
		}
	}
}

func (h *EventsHandler) sendEvent(w http.ResponseWriter, flusher http.Flusher, eventType sse.EventType, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return h.sendRawEvent(w, flusher, sse.Event{Type: eventType, Data: jsonData})
}

func (h *EventsHandler) sendRawEvent(w http.ResponseWriter, flusher http.Flusher, event sse.Event) error {
	if _, err := fmt.Fprintf(w, "event: %s\n", event.Type); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", event.Data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
