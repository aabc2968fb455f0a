package audit

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventSessionCreate     EventType = "session_create"
	EventSessionReveal     EventType = "session_reveal"
	EventRevealFailure     EventType = "reveal_failure"
	EventParticipantJoin   EventType = "participant_join"
	EventEnvelopeSubmit    EventType = "envelope_submit"
	EventIdentityRejected  EventType = "identity_rejected"
	EventRateLimitExceed   EventType = "rate_limit_exceeded"
	EventCSRFFailure       EventType = "csrf_failure"
	EventAdminAccessDenied EventType = "admin_access_denied"
)

// Event is one security-relevant action. Admin keys and envelope texts
// never go in Details.
type Event struct {
	Type          EventType
	SessionCode   string
	ParticipantID string
	IP            string
	UserAgent     string
	Details       map[string]interface{}
}

func Log(ctx context.Context, event Event) {
	logger := log.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &log.Logger
	}

	l := logger.With().
		Str("audit", "security").
		Str("event_type", string(event.Type)).
		Time("timestamp", time.Now()).
		Logger()

	if event.SessionCode != "" {
		l = l.With().Str("code", event.SessionCode).Logger()
	}
	if event.ParticipantID != "" {
		l = l.With().Str("participant_id", event.ParticipantID).Logger()
	}
	if event.IP != "" {
		l = l.With().Str("ip", event.IP).Logger()
	}
	if event.UserAgent != "" {
		l = l.With().Str("user_agent", event.UserAgent).Logger()
	}

	logEvent := l.Info()
	for k, v := range event.Details {
		logEvent = addField(logEvent, k, v)
	}
	logEvent.Msg("security audit event")
}

func addField(e *zerolog.Event, key string, value interface{}) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return e.Str(key, v)
	case int:
		return e.Int(key, v)
	case int64:
		return e.Int64(key, v)
	case bool:
		return e.Bool(key, v)
	default:
		return e.Interface(key, v)
	}
}

func LogFromRequest(r *http.Request, event Event) {
	event.IP = clientIP(r)
	event.UserAgent = r.UserAgent()
	Log(r.Context(), event)
}

// clientIP trusts RemoteAddr; chi's RealIP has already folded proxy
// headers into it.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
