package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/fantabuste/envelope-server-go/internal/errors"
	"github.com/fantabuste/envelope-server-go/internal/model"
	"github.com/fantabuste/envelope-server-go/internal/repository"
	"github.com/fantabuste/envelope-server-go/internal/sse"
	"github.com/fantabuste/envelope-server-go/internal/util"
)

// Identity is the browser credential set at join: the participant id and
// the code of the session it joined.
type Identity struct {
	ParticipantID string
	SessionCode   string
}

func (i Identity) Matches(code string) bool {
	return i.ParticipantID != "" && i.SessionCode == code
}

// EnvelopeView is a participant's own envelope with its text in clear.
type EnvelopeView struct {
	Viewer *model.ParticipantWithSession
	Text   string
}

// Locked reports whether the envelope form accepts no more writes.
func (v *EnvelopeView) Locked() bool {
	return v.Viewer.IsSubmitted() || v.Viewer.SessionRevealed()
}

// LobbyView is the shared participant listing as seen by one participant.
type LobbyView struct {
	*SessionBoard
	Viewer *model.ParticipantWithSession
}

type ParticipantService struct {
	sessionRepo     repository.SessionRepository
	participantRepo repository.ParticipantRepository
	events          EventPublisher
	cipher          envelopeCipher
}

func NewParticipantService(
	sessionRepo repository.SessionRepository,
	participantRepo repository.ParticipantRepository,
	events EventPublisher,
	encryptionKey string,
) *ParticipantService {
	return &ParticipantService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		events:          events,
		cipher:          envelopeCipher{key: encryptionKey},
	}
}

// Join adds a drafting participant to the session. Display names are not
// unique; joining twice creates two participants.
func (s *ParticipantService) Join(ctx context.Context, code, displayName string) (*model.Participant, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperrors.NameRequired()
	}

	session, err := s.sessionRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if session == nil {
		return nil, apperrors.SessionNotFound()
	}

	participant, err := s.participantRepo.Create(ctx, model.CreateParticipantParams{
		SessionID:   session.ID,
		DisplayName: displayName,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("sessionId", session.ID).
		Str("participantId", participant.ID).
		Msg("participant joined")

	notify(ctx, s.events, session.Code, sse.EventParticipantJoined, map[string]string{
		"participantId": participant.ID,
		"displayName":   participant.DisplayName,
	})

	return participant, nil
}

// ResolveViewer maps the identity pair and the code in the URL to a
// participant. It never writes.
//
// A missing pair, or one issued for another code, yields IdentityMissing.
// A pair naming an unknown participant, or one whose session has a
// different code, yields InvalidParticipant.
func (s *ParticipantService) ResolveViewer(
	ctx context.Context,
	identity Identity,
	code string,
) (*model.ParticipantWithSession, error) {
	if !identity.Matches(code) {
		return nil, apperrors.IdentityMissing()
	}
	if !util.IsValidUUID(identity.ParticipantID) {
		return nil, apperrors.InvalidParticipant()
	}

	viewer, err := s.participantRepo.FindWithSession(ctx, identity.ParticipantID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if viewer == nil || viewer.SessionCode != code {
		return nil, apperrors.InvalidParticipant()
	}
	return viewer, nil
}

// WriteEnvelope saves the draft, or with EnvelopeIntentSubmit saves and
// locks it. A participant who already submitted gets AlreadySubmitted
// even after the reveal; otherwise a revealed session gets SessionRevealed.
func (s *ParticipantService) WriteEnvelope(
	ctx context.Context,
	identity Identity,
	code string,
	text string,
	intent model.EnvelopeIntent,
) error {
	viewer, err := s.ResolveViewer(ctx, identity, code)
	if err != nil {
		return err
	}
	if err := writeBlocked(viewer); err != nil {
		return err
	}

	stored, err := s.cipher.seal(text)
	if err != nil {
		return apperrors.Internal("Cannot seal envelope").WithCause(err)
	}

	changed, err := s.participantRepo.UpdateEnvelope(ctx, model.UpdateEnvelopeParams{
		ID:           viewer.ID,
		EnvelopeText: stored,
		Submit:       intent == model.EnvelopeIntentSubmit,
	})
	if err != nil {
		return apperrors.Database(err)
	}

	if !changed {
		// Lost a race with a concurrent submit or reveal; report which.
		current, err := s.participantRepo.FindWithSession(ctx, viewer.ID)
		if err != nil {
			return apperrors.Database(err)
		}
		if current == nil {
			return apperrors.InvalidParticipant()
		}
		if err := writeBlocked(current); err != nil {
			return err
		}
		return apperrors.Internal("Envelope update was not applied")
	}

	if intent == model.EnvelopeIntentSubmit {
		log.Info().
			Str("sessionId", viewer.SessionID).
			Str("participantId", viewer.ID).
			Msg("envelope submitted")

		notify(ctx, s.events, code, sse.EventEnvelopeSubmitted, map[string]string{
			"participantId": viewer.ID,
		})
	}

	return nil
}

// Envelope returns the viewer's own envelope, read fresh from the store.
func (s *ParticipantService) Envelope(ctx context.Context, identity Identity, code string) (*EnvelopeView, error) {
	viewer, err := s.ResolveViewer(ctx, identity, code)
	if err != nil {
		return nil, err
	}

	text, err := s.cipher.open(viewer.EnvelopeText)
	if err != nil {
		return nil, apperrors.Internal("Cannot read envelope").WithCause(err)
	}
	return &EnvelopeView{Viewer: viewer, Text: text}, nil
}

// Lobby lists every participant of the viewer's session. Texts appear only
// after the reveal, for every participant including the viewer.
func (s *ParticipantService) Lobby(ctx context.Context, identity Identity, code string) (*LobbyView, error) {
	viewer, err := s.ResolveViewer(ctx, identity, code)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindByID(ctx, viewer.SessionID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if session == nil {
		return nil, apperrors.SessionNotFound()
	}

	participants, err := s.participantRepo.ListBySessionID(ctx, session.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	board, err := buildBoard(session, participants, viewer.ID, s.cipher)
	if err != nil {
		return nil, apperrors.Internal("Cannot read envelopes").WithCause(err)
	}
	return &LobbyView{SessionBoard: board, Viewer: viewer}, nil
}

func writeBlocked(p *model.ParticipantWithSession) error {
	if p.IsSubmitted() {
		return apperrors.AlreadySubmitted()
	}
	if p.SessionRevealed() {
		return apperrors.SessionRevealed()
	}
	return nil
}
