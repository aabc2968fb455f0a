package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Italian

	// Layout
	message.SetString(lang, "app.name", "FantaBuste")
	message.SetString(lang, "app.description", "Asta a buste chiuse: scrittura busta e apertura")
	message.SetString(lang, "nav.home", "Home")
	message.SetString(lang, "nav.lang_it", "Italiano")
	message.SetString(lang, "nav.lang_en", "English")

	// Home
	message.SetString(lang, "home.intro", "Ogni partecipante scrive un elenco libero di nomi, poi l'admin apre le buste e si vedono tutte.")
	message.SetString(lang, "home.admin.title", "Admin")
	message.SetString(lang, "home.admin.body", "Crea una nuova sessione e ottieni il link admin segreto.")
	message.SetString(lang, "home.admin.create", "Crea sessione")
	message.SetString(lang, "home.join.title", "Partecipante")
	message.SetString(lang, "home.join.body", "Inserisci il codice sessione e entra.")
	message.SetString(lang, "home.join.placeholder", "Codice (es. X7K2Q)")
	message.SetString(lang, "home.join.submit", "Entra")
	message.SetString(lang, "home.footer", "Nessun login: prima dell'apertura i testi delle buste non vengono mostrati a nessuno.")

	// Join
	message.SetString(lang, "join.title", "Entra nella sessione")
	message.SetString(lang, "join.code", "Codice sessione")
	message.SetString(lang, "join.sealed", "busta chiusa")
	message.SetString(lang, "join.hint", "Inserisci un nome (es. FC Pippo) per entrare e compilare la busta.")
	message.SetString(lang, "join.name", "Nome squadra / partecipante")
	message.SetString(lang, "join.name_placeholder", "Es. Real Tappi")
	message.SetString(lang, "join.submit", "Entra")
	message.SetString(lang, "join.cookie_note", "Il sistema salva un cookie per riconoscerti. Se cambi dispositivo, dovrai rientrare.")

	// Envelope
	message.SetString(lang, "envelope.title", "La tua busta")
	message.SetString(lang, "envelope.revealed", "Le buste sono già state aperte. Non puoi più modificare.")
	message.SetString(lang, "envelope.submitted", "Busta consegnata. Ora puoi aspettare in lobby.")
	message.SetString(lang, "envelope.saved", "Bozza salvata.")
	message.SetString(lang, "envelope.form_title", "Inserisci i nomi (testo libero)")
	message.SetString(lang, "envelope.form_hint", "Puoi mettere un nome per riga, oppure un elenco separato da virgole.")
	message.SetString(lang, "envelope.placeholder", "Esempio:\nLautaro Martinez\nDybala\nOsimhen")
	message.SetString(lang, "envelope.locked_hint", "Consegna già effettuata.")
	message.SetString(lang, "envelope.draft_hint", "Salva la bozza mentre scrivi, poi consegna quando sei pronto.")
	message.SetString(lang, "envelope.save", "Salva bozza")
	message.SetString(lang, "envelope.submit", "Consegna busta")
	message.SetString(lang, "envelope.next_title", "Che succede dopo?")
	message.SetString(lang, "envelope.next_wait", "Vai in lobby e aspetta che l'admin apra le buste.")
	message.SetString(lang, "envelope.next_reveal", "Quando le buste sono aperte, vedrai l'elenco completo di tutte le squadre.")

	// Lobby
	message.SetString(lang, "lobby.title", "Lobby")
	message.SetString(lang, "lobby.my_envelope", "La mia busta")
	message.SetString(lang, "lobby.refresh", "Aggiorna")
	message.SetString(lang, "lobby.submitted", "Busta consegnata.")
	message.SetString(lang, "lobby.participants", "Partecipanti")
	message.SetString(lang, "lobby.hidden_note", "Prima dell'apertura qui vedi solo chi ha consegnato. Il contenuto delle buste resta nascosto.")
	message.SetString(lang, "lobby.revealed_title", "Buste aperte")
	message.SetString(lang, "lobby.revealed_body", "Ora sono visibili tutte le buste.")
	message.SetString(lang, "lobby.waiting_title", "In attesa dell'apertura")
	message.SetString(lang, "lobby.waiting_body", "Quando l'admin apre le buste, questa pagina si aggiorna da sola.")
	message.SetString(lang, "lobby.admin_note", "Se sei l'admin, usa il tuo link segreto per aprire le buste.")

	// Shared badges
	message.SetString(lang, "badge.session", "Sessione %s")
	message.SetString(lang, "badge.you_are", "Tu: %s")
	message.SetString(lang, "badge.you", "tu")
	message.SetString(lang, "badge.count", "Consegnate: %d/%d")
	message.SetString(lang, "badge.status", "Stato: %s")
	message.SetString(lang, "badge.code", "Codice: %s")
	message.SetString(lang, "state.submitted", "consegnata")
	message.SetString(lang, "state.drafting", "in scrittura")
	message.SetString(lang, "state.not_submitted", "non consegnata")
	message.SetString(lang, "status.OPEN", "APERTA ALLE BUSTE")
	message.SetString(lang, "status.REVEALED", "BUSTE APERTE")
	message.SetString(lang, "text.empty", "(vuota)")

	// Admin
	message.SetString(lang, "admin.title", "Admin")
	message.SetString(lang, "admin.session_title", "Admin sessione")
	message.SetString(lang, "admin.not_found", "Sessione non trovata.")
	message.SetString(lang, "admin.unauthorized", "Non autorizzato. Serve il link admin con la chiave.")
	message.SetString(lang, "admin.lost_key", "Se hai perso il link admin, ricrea la sessione: la chiave non si può recuperare.")
	message.SetString(lang, "admin.share_title", "Condividi questo codice")
	message.SetString(lang, "admin.share_body", "I partecipanti entrano da Home con il codice %s oppure aprendo direttamente %s")
	message.SetString(lang, "admin.participant_link", "Link partecipanti")
	message.SetString(lang, "admin.reveal_title", "Apertura buste")
	message.SetString(lang, "admin.reveal_body", "Quando premi \"Apri buste\", tutti vedranno tutte le buste. L'operazione è irreversibile.")
	message.SetString(lang, "admin.reveal", "Apri buste")
	message.SetString(lang, "admin.revealed_title", "Buste già aperte")
	message.SetString(lang, "admin.revealed_body", "Puoi leggere tutto qui sotto oppure dalla lobby dei partecipanti.")
	message.SetString(lang, "admin.open_lobby", "Apri lobby")
	message.SetString(lang, "admin.nobody", "Nessuno è entrato ancora.")
	message.SetString(lang, "admin.keep_link", "Conserva il link admin: contiene la chiave segreta e chi lo possiede può aprire la sessione.")

	// Error page
	message.SetString(lang, "error.title", "Qualcosa è andato storto")
	message.SetString(lang, "error.body", "Non è stato possibile completare la richiesta. Riprova.")
	message.SetString(lang, "error.prefix", "Errore: %s")

	// Reasons
	message.SetString(lang, "reason.CODICE_NON_VALIDO", "Inserisci un codice sessione.")
	message.SetString(lang, "reason.NOME_OBBLIGATORIO", "Inserisci un nome squadra/partecipante.")
	message.SetString(lang, "reason.SESSIONE_NON_TROVATA", "Sessione non trovata. Controlla il codice.")
	message.SetString(lang, "reason.RIPARTI_DA_JOIN", "Per favore rientra nella sessione.")
	message.SetString(lang, "reason.PARTECIPANTE_NON_VALIDO", "Sessione cambiata o cookie non valido. Rientra.")
	message.SetString(lang, "reason.SESSIONE_GIA_APERTA", "Le buste sono già state aperte.")
	message.SetString(lang, "reason.GIA_CONSEGNATA", "Hai già consegnato la busta. Non puoi modificarla.")
	message.SetString(lang, "reason.CHIAVE_MANCANTE", "Manca la chiave admin.")
	message.SetString(lang, "reason.CHIAVE_ERRATA", "La chiave admin non è corretta.")
	message.SetString(lang, "reason.SESSIONE_NON_ALLOCABILE", "Impossibile creare una sessione (troppe collisioni sul codice). Riprova.")
}
