package model

type SessionStatus string

const (
	SessionStatusOpen     SessionStatus = "OPEN"
	SessionStatusRevealed SessionStatus = "REVEALED"
)

type EnvelopeState string

const (
	EnvelopeStateDrafting  EnvelopeState = "DRAFTING"
	EnvelopeStateSubmitted EnvelopeState = "SUBMITTED"
)

// EnvelopeIntent is the action requested by an envelope form post.
type EnvelopeIntent string

const (
	EnvelopeIntentSave   EnvelopeIntent = "save"
	EnvelopeIntentSubmit EnvelopeIntent = "submit"
)

func ParseEnvelopeIntent(value string) EnvelopeIntent {
	if EnvelopeIntent(value) == EnvelopeIntentSubmit {
		return EnvelopeIntentSubmit
	}
	return EnvelopeIntentSave
}
