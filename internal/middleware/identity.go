package middleware

import (
	"net/http"
	"time"

	"github.com/fantabuste/envelope-server-go/internal/service"
	"github.com/fantabuste/envelope-server-go/internal/util"
)

const (
	ParticipantCookie = "pid"
	SessionCodeCookie = "scode"
	SignatureCookie   = "psig"
)

// IdentityCookies reads and writes the participant credential: pid and
// scode, plus psig when a secret is configured. A pair whose signature
// does not verify reads as no identity at all.
type IdentityCookies struct {
	secret string
	secure bool
	maxAge time.Duration
}

func NewIdentityCookies(secret string, secure bool, maxAge time.Duration) *IdentityCookies {
	return &IdentityCookies{secret: secret, secure: secure, maxAge: maxAge}
}

func (c *IdentityCookies) Set(w http.ResponseWriter, participantID, code string) {
	c.write(w, ParticipantCookie, participantID, int(c.maxAge.Seconds()))
	c.write(w, SessionCodeCookie, code, int(c.maxAge.Seconds()))
	if c.secret != "" {
		c.write(w, SignatureCookie, c.sign(participantID, code), int(c.maxAge.Seconds()))
	}
}

func (c *IdentityCookies) Read(r *http.Request) service.Identity {
	id := service.Identity{
		ParticipantID: cookieValue(r, ParticipantCookie),
		SessionCode:   cookieValue(r, SessionCodeCookie),
	}
	if c.secret == "" || id.ParticipantID == "" {
		return id
	}
	if !util.ConstantTimeEqual(cookieValue(r, SignatureCookie), c.sign(id.ParticipantID, id.SessionCode)) {
		return service.Identity{}
	}
	return id
}

// Clear expires all identity cookies. Browsers may ignore it.
func (c *IdentityCookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{ParticipantCookie, SessionCodeCookie, SignatureCookie} {
		c.write(w, name, "", -1)
	}
}

func (c *IdentityCookies) write(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *IdentityCookies) sign(participantID, code string) string {
	return util.HmacSHA256(c.secret, participantID+"|"+code)
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
