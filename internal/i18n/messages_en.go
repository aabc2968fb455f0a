package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Layout
	message.SetString(lang, "app.name", "FantaBuste")
	message.SetString(lang, "app.description", "Sealed-envelope auction: write your envelope, then open them all")
	message.SetString(lang, "nav.home", "Home")
	message.SetString(lang, "nav.lang_it", "Italiano")
	message.SetString(lang, "nav.lang_en", "English")

	// Home
	message.SetString(lang, "home.intro", "Each participant writes a free-form list of names, then the admin opens the envelopes and everyone sees them all.")
	message.SetString(lang, "home.admin.title", "Admin")
	message.SetString(lang, "home.admin.body", "Create a new session and get the secret admin link.")
	message.SetString(lang, "home.admin.create", "Create session")
	message.SetString(lang, "home.join.title", "Participant")
	message.SetString(lang, "home.join.body", "Enter the session code to join.")
	message.SetString(lang, "home.join.placeholder", "Code (e.g. X7K2Q)")
	message.SetString(lang, "home.join.submit", "Join")
	message.SetString(lang, "home.footer", "No login: until the reveal, nobody can see envelope texts.")

	// Join
	message.SetString(lang, "join.title", "Join the session")
	message.SetString(lang, "join.code", "Session code")
	message.SetString(lang, "join.sealed", "sealed envelope")
	message.SetString(lang, "join.hint", "Pick a name (e.g. FC Pippo) to join and fill in your envelope.")
	message.SetString(lang, "join.name", "Team / participant name")
	message.SetString(lang, "join.name_placeholder", "e.g. Real Tappi")
	message.SetString(lang, "join.submit", "Join")
	message.SetString(lang, "join.cookie_note", "A cookie remembers you. On another device you will need to join again.")

	// Envelope
	message.SetString(lang, "envelope.title", "Your envelope")
	message.SetString(lang, "envelope.revealed", "The envelopes are already open. You can no longer edit.")
	message.SetString(lang, "envelope.submitted", "Envelope submitted. You can wait in the lobby now.")
	message.SetString(lang, "envelope.saved", "Draft saved.")
	message.SetString(lang, "envelope.form_title", "Write your names (free text)")
	message.SetString(lang, "envelope.form_hint", "One name per line, or a comma separated list.")
	message.SetString(lang, "envelope.placeholder", "Example:\nLautaro Martinez\nDybala\nOsimhen")
	message.SetString(lang, "envelope.locked_hint", "Already submitted.")
	message.SetString(lang, "envelope.draft_hint", "Save drafts while you write, then submit when ready.")
	message.SetString(lang, "envelope.save", "Save draft")
	message.SetString(lang, "envelope.submit", "Submit envelope")
	message.SetString(lang, "envelope.next_title", "What happens next?")
	message.SetString(lang, "envelope.next_wait", "Go to the lobby and wait for the admin to open the envelopes.")
	message.SetString(lang, "envelope.next_reveal", "Once they are open, you will see every team's full list.")

	// Lobby
	message.SetString(lang, "lobby.title", "Lobby")
	message.SetString(lang, "lobby.my_envelope", "My envelope")
	message.SetString(lang, "lobby.refresh", "Refresh")
	message.SetString(lang, "lobby.submitted", "Envelope submitted.")
	message.SetString(lang, "lobby.participants", "Participants")
	message.SetString(lang, "lobby.hidden_note", "Before the reveal you only see who has submitted. Envelope contents stay hidden.")
	message.SetString(lang, "lobby.revealed_title", "Envelopes opened")
	message.SetString(lang, "lobby.revealed_body", "Every envelope is visible now.")
	message.SetString(lang, "lobby.waiting_title", "Waiting for the reveal")
	message.SetString(lang, "lobby.waiting_body", "When the admin opens the envelopes, this page updates by itself.")
	message.SetString(lang, "lobby.admin_note", "If you are the admin, use your secret link to open the envelopes.")

	// Shared badges
	message.SetString(lang, "badge.session", "Session %s")
	message.SetString(lang, "badge.you_are", "You: %s")
	message.SetString(lang, "badge.you", "you")
	message.SetString(lang, "badge.count", "Submitted: %d/%d")
	message.SetString(lang, "badge.status", "Status: %s")
	message.SetString(lang, "badge.code", "Code: %s")
	message.SetString(lang, "state.submitted", "submitted")
	message.SetString(lang, "state.drafting", "writing")
	message.SetString(lang, "state.not_submitted", "not submitted")
	message.SetString(lang, "status.OPEN", "OPEN")
	message.SetString(lang, "status.REVEALED", "REVEALED")
	message.SetString(lang, "text.empty", "(empty)")

	// Admin
	message.SetString(lang, "admin.title", "Admin")
	message.SetString(lang, "admin.session_title", "Session admin")
	message.SetString(lang, "admin.not_found", "Session not found.")
	message.SetString(lang, "admin.unauthorized", "Not authorized. You need the admin link with its key.")
	message.SetString(lang, "admin.lost_key", "If you lost the admin link, create a new session: the key cannot be recovered.")
	message.SetString(lang, "admin.share_title", "Share this code")
	message.SetString(lang, "admin.share_body", "Participants join from Home with code %s or by opening %s")
	message.SetString(lang, "admin.participant_link", "Participant link")
	message.SetString(lang, "admin.reveal_title", "Open the envelopes")
	message.SetString(lang, "admin.reveal_body", "When you press \"Open envelopes\", everyone sees every envelope. This cannot be undone.")
	message.SetString(lang, "admin.reveal", "Open envelopes")
	message.SetString(lang, "admin.revealed_title", "Envelopes already open")
	message.SetString(lang, "admin.revealed_body", "Read everything below or from the participants' lobby.")
	message.SetString(lang, "admin.open_lobby", "Open lobby")
	message.SetString(lang, "admin.nobody", "Nobody has joined yet.")
	message.SetString(lang, "admin.keep_link", "Keep the admin link safe: it contains the secret key, and whoever has it can open the session.")

	// Error page
	message.SetString(lang, "error.title", "Something went wrong")
	message.SetString(lang, "error.body", "The request could not be completed. Please try again.")
	message.SetString(lang, "error.prefix", "Error: %s")

	// Reasons
	message.SetString(lang, "reason.CODICE_NON_VALIDO", "Enter a session code.")
	message.SetString(lang, "reason.NOME_OBBLIGATORIO", "Enter a team or participant name.")
	message.SetString(lang, "reason.SESSIONE_NON_TROVATA", "Session not found. Check the code.")
	message.SetString(lang, "reason.RIPARTI_DA_JOIN", "Please join the session again.")
	message.SetString(lang, "reason.PARTECIPANTE_NON_VALIDO", "The session changed or your cookie is invalid. Join again.")
	message.SetString(lang, "reason.SESSIONE_GIA_APERTA", "The envelopes are already open.")
	message.SetString(lang, "reason.GIA_CONSEGNATA", "You already submitted your envelope. It cannot be changed.")
	message.SetString(lang, "reason.CHIAVE_MANCANTE", "The admin key is missing.")
	message.SetString(lang, "reason.CHIAVE_ERRATA", "The admin key is wrong.")
	message.SetString(lang, "reason.SESSIONE_NON_ALLOCABILE", "Could not create a session (too many code collisions). Please try again.")
}
