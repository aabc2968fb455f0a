package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fantabuste/envelope-server-go/internal/database"
	"github.com/fantabuste/envelope-server-go/internal/model"
)

const sessionColumns = `id, code, admin_key_hash, status, revealed_at, created_at, updated_at`

type SessionRepository interface {
	FindByID(ctx context.Context, id string) (*model.Session, error)
	FindByCode(ctx context.Context, code string) (*model.Session, error)
	// Create returns ErrDuplicate when the code is already taken.
	Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error)
	// MarkRevealed moves an OPEN session to REVEALED. It reports whether
	// this call performed the transition.
	MarkRevealed(ctx context.Context, id string) (bool, error)
}

type sessionRepo struct {
	db database.DBTX
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, r.db.Rebind(`
		SELECT `+sessionColumns+` FROM sessions WHERE id = ?
	`), id)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) FindByCode(ctx context.Context, code string) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, r.db.Rebind(`
		SELECT `+sessionColumns+` FROM sessions WHERE code = ?
	`), code)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error) {
	now := time.Now().UTC()
	session := model.Session{
		ID:           uuid.NewString(),
		Code:         params.Code,
		AdminKeyHash: params.AdminKeyHash,
		Status:       model.SessionStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO sessions (id, code, admin_key_hash, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), session.ID, session.Code, session.AdminKeyHash, string(session.Status), session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return nil, translateInsertError(err)
	}
	return &session, nil
}

func (r *sessionRepo) MarkRevealed(ctx context.Context, id string) (bool, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE sessions SET
			status = ?,
			revealed_at = ?,
			updated_at = ?
		WHERE id = ? AND status = ?
	`), string(model.SessionStatusRevealed), now, now, id, string(model.SessionStatusOpen))
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
