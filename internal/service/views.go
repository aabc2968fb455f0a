package service

import (
	"fmt"
	"time"

	"github.com/fantabuste/envelope-server-go/internal/model"
)

// EnvelopeEntry is one row of a lobby or admin listing. Text stays nil
// until the session is revealed.
type EnvelopeEntry struct {
	ParticipantID string
	DisplayName   string
	State         model.EnvelopeState
	SubmittedAt   *time.Time
	Text          *string
	IsViewer      bool
}

func (e EnvelopeEntry) Submitted() bool {
	return e.State == model.EnvelopeStateSubmitted
}

// Revealed reports whether the entry carries its envelope text.
func (e EnvelopeEntry) Revealed() bool {
	return e.Text != nil
}

func (e EnvelopeEntry) Body() string {
	if e.Text == nil {
		return ""
	}
	return *e.Text
}

// SessionBoard is the shared shape of the lobby and admin pages.
type SessionBoard struct {
	Session        *model.Session
	Entries        []EnvelopeEntry
	SubmittedCount int
}

func (b *SessionBoard) Total() int {
	return len(b.Entries)
}

// buildBoard lists participants in join order. Envelope texts are read
// only when the session is revealed.
func buildBoard(
	session *model.Session,
	participants []model.Participant,
	viewerID string,
	cipher envelopeCipher,
) (*SessionBoard, error) {
	board := &SessionBoard{
		Session: session,
		Entries: make([]EnvelopeEntry, 0, len(participants)),
	}

	for i := range participants {
		p := &participants[i]
		entry := EnvelopeEntry{
			ParticipantID: p.ID,
			DisplayName:   p.DisplayName,
			State:         p.State(),
			SubmittedAt:   p.SubmittedAt,
			IsViewer:      viewerID != "" && p.ID == viewerID,
		}
		if entry.Submitted() {
			board.SubmittedCount++
		}
		if session.IsRevealed() {
			text, err := cipher.open(p.EnvelopeText)
			if err != nil {
				return nil, fmt.Errorf("open envelope %s: %w", p.ID, err)
			}
			entry.Text = &text
		}
		board.Entries = append(board.Entries, entry)
	}

	return board, nil
}
