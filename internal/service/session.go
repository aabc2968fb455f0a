package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/fantabuste/envelope-server-go/internal/config"
	apperrors "github.com/fantabuste/envelope-server-go/internal/errors"
	"github.com/fantabuste/envelope-server-go/internal/model"
	"github.com/fantabuste/envelope-server-go/internal/repository"
	"github.com/fantabuste/envelope-server-go/internal/sse"
	"github.com/fantabuste/envelope-server-go/internal/util"
)

// CreateSessionResult carries the only copy of the admin key that ever
// leaves the server. The store keeps its hash.
type CreateSessionResult struct {
	Session  *model.Session
	AdminKey string
}

type SessionService struct {
	sessionRepo     repository.SessionRepository
	participantRepo repository.ParticipantRepository
	events          EventPublisher
	cipher          envelopeCipher
	newCode         func() (string, error)
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	participantRepo repository.ParticipantRepository,
	events EventPublisher,
	encryptionKey string,
) *SessionService {
	return &SessionService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		events:          events,
		cipher:          envelopeCipher{key: encryptionKey},
		newCode:         generateSessionCode,
	}
}

// CreateSession allocates a fresh code and admin key. A code already taken
// is retried with a new one, up to config.SessionCodeMaxAttempts times.
func (s *SessionService) CreateSession(ctx context.Context) (*CreateSessionResult, error) {
	for attempt := 1; attempt <= config.SessionCodeMaxAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate session code: %w", err)
		}
		adminKey, err := util.GenerateURLToken()
		if err != nil {
			return nil, fmt.Errorf("generate admin key: %w", err)
		}

		session, err := s.sessionRepo.Create(ctx, model.CreateSessionParams{
			Code:         code,
			AdminKeyHash: util.HashToken(adminKey),
		})
		if errors.Is(err, repository.ErrDuplicate) {
			log.Debug().Str("code", code).Int("attempt", attempt).Msg("session code collision, retrying")
			continue
		}
		if err != nil {
			return nil, apperrors.Database(err)
		}

		log.Info().
			Str("sessionId", session.ID).
			Str("code", session.Code).
			Int("attempts", attempt).
			Msg("session created")

		return &CreateSessionResult{Session: session, AdminKey: adminKey}, nil
	}

	log.Error().Int("attempts", config.SessionCodeMaxAttempts).Msg("could not allocate session code")
	return nil, apperrors.CannotAllocateSession(config.SessionCodeMaxAttempts)
}

// FindByCode returns nil when no session has the code.
func (s *SessionService) FindByCode(ctx context.Context, code string) (*model.Session, error) {
	session, err := s.sessionRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return session, nil
}

// Authorize checks an admin key against the session it claims to open.
// The session is looked up first, so an unknown code reports not found
// whatever key was supplied.
func (s *SessionService) Authorize(ctx context.Context, code, adminKey string) (*model.Session, error) {
	session, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.SessionNotFound()
	}
	if err := checkAdminKey(session, adminKey); err != nil {
		return nil, err
	}
	return session, nil
}

// Reveal opens every envelope of the session. An empty key is rejected
// before the lookup. Revealing an already revealed session succeeds
// without changing anything.
func (s *SessionService) Reveal(ctx context.Context, code, adminKey string) (*model.Session, error) {
	if adminKey == "" {
		return nil, apperrors.MissingKey()
	}

	session, err := s.Authorize(ctx, code, adminKey)
	if err != nil {
		return nil, err
	}
	if session.IsRevealed() {
		return session, nil
	}

	changed, err := s.sessionRepo.MarkRevealed(ctx, session.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	refreshed, err := s.sessionRepo.FindByID(ctx, session.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if refreshed == nil {
		return nil, apperrors.SessionNotFound()
	}

	// A concurrent reveal may have won the update; only the winner announces it.
	if changed {
		log.Info().Str("sessionId", session.ID).Str("code", session.Code).Msg("session revealed")
		notify(ctx, s.events, session.Code, sse.EventSessionRevealed, map[string]string{
			"code": session.Code,
		})
	}

	return refreshed, nil
}

// AdminBoard is the admin page for a session, with every envelope text
// once the session is revealed.
func (s *SessionService) AdminBoard(ctx context.Context, code, adminKey string) (*SessionBoard, error) {
	session, err := s.Authorize(ctx, code, adminKey)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListBySessionID(ctx, session.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	board, err := buildBoard(session, participants, "", s.cipher)
	if err != nil {
		return nil, apperrors.Internal("Cannot read envelopes").WithCause(err)
	}
	return board, nil
}

func checkAdminKey(session *model.Session, adminKey string) error {
	if adminKey == "" {
		return apperrors.MissingKey()
	}
	if !util.ConstantTimeEqual(util.HashToken(adminKey), session.AdminKeyHash) {
		return apperrors.WrongKey()
	}
	return nil
}
