package model

import (
	"time"
)

// Participant is one envelope writer inside a session. EnvelopeText holds
// the stored form, which is ciphertext when encryption at rest is enabled.
type Participant struct {
	ID           string     `db:"id" json:"id"`
	SessionID    string     `db:"session_id" json:"sessionId"`
	DisplayName  string     `db:"display_name" json:"displayName"`
	EnvelopeText string     `db:"envelope_text" json:"-"`
	SubmittedAt  *time.Time `db:"submitted_at" json:"submittedAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

func (p *Participant) IsSubmitted() bool {
	return p.SubmittedAt != nil
}

func (p *Participant) State() EnvelopeState {
	if p.IsSubmitted() {
		return EnvelopeStateSubmitted
	}
	return EnvelopeStateDrafting
}

// ParticipantWithSession is a participant joined with the code and status
// of its owning session.
type ParticipantWithSession struct {
	Participant
	SessionCode   string        `db:"session_code" json:"sessionCode"`
	SessionStatus SessionStatus `db:"session_status" json:"sessionStatus"`
}

func (p *ParticipantWithSession) SessionRevealed() bool {
	return p.SessionStatus == SessionStatusRevealed
}

type CreateParticipantParams struct {
	SessionID   string
	DisplayName string
}

type UpdateEnvelopeParams struct {
	ID           string
	EnvelopeText string
	Submit       bool
}
