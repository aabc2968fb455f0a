package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fantabuste/envelope-server-go/internal/database"
	"github.com/fantabuste/envelope-server-go/internal/model"
)

const participantColumns = `p.id, p.session_id, p.display_name, p.envelope_text, p.submitted_at, p.created_at, p.updated_at`

type ParticipantRepository interface {
	FindWithSession(ctx context.Context, id string) (*model.ParticipantWithSession, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]model.Participant, error)
	Create(ctx context.Context, params model.CreateParticipantParams) (*model.Participant, error)
	// UpdateEnvelope writes the envelope only while the participant is
	// unsubmitted and its session is OPEN. It reports whether a row changed.
	UpdateEnvelope(ctx context.Context, params model.UpdateEnvelopeParams) (bool, error)
}

type participantRepo struct {
	db database.DBTX
}

func NewParticipantRepository(db *sqlx.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) FindWithSession(ctx context.Context, id string) (*model.ParticipantWithSession, error) {
	var p model.ParticipantWithSession
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`
		SELECT `+participantColumns+`, s.code AS session_code, s.status AS session_status
		FROM participants p
		JOIN sessions s ON s.id = p.session_id
		WHERE p.id = ?
	`), id)
	return HandleNotFound(&p, err)
}

func (r *participantRepo) ListBySessionID(ctx context.Context, sessionID string) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.db.SelectContext(ctx, &participants, r.db.Rebind(`
		SELECT `+participantColumns+` FROM participants p
		WHERE p.session_id = ?
		ORDER BY p.created_at ASC, p.id ASC
	`), sessionID)
	return participants, err
}

func (r *participantRepo) Create(ctx context.Context, params model.CreateParticipantParams) (*model.Participant, error) {
	now := time.Now().UTC()
	p := model.Participant{
		ID:          uuid.NewString(),
		SessionID:   params.SessionID,
		DisplayName: params.DisplayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO participants (id, session_id, display_name, envelope_text, created_at, updated_at)
		VALUES (?, ?, ?, '', ?, ?)
	`), p.ID, p.SessionID, p.DisplayName, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, translateInsertError(err)
	}
	return &p, nil
}

func (r *participantRepo) UpdateEnvelope(ctx context.Context, params model.UpdateEnvelopeParams) (bool, error) {
	now := time.Now().UTC()

	var submittedAt *time.Time
	if params.Submit {
		submittedAt = &now
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE participants SET
			envelope_text = ?,
			submitted_at = ?,
			updated_at = ?
		WHERE id = ?
		AND submitted_at IS NULL
		AND session_id IN (SELECT id FROM sessions WHERE status = ?)
	`), params.EnvelopeText, submittedAt, now, params.ID, string(model.SessionStatusOpen))
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
