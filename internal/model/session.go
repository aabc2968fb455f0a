package model

import (
	"time"
)

type Session struct {
	ID           string        `db:"id" json:"id"`
	Code         string        `db:"code" json:"code"`
	AdminKeyHash string        `db:"admin_key_hash" json:"-"`
	Status       SessionStatus `db:"status" json:"status"`
	RevealedAt   *time.Time    `db:"revealed_at" json:"revealedAt,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updatedAt"`
}

func (s *Session) IsRevealed() bool {
	return s.Status == SessionStatusRevealed
}

type CreateSessionParams struct {
	Code         string
	AdminKeyHash string
}
