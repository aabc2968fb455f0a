package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fantabuste/envelope-server-go/internal/service"
)

func roundTrip(set func(w http.ResponseWriter)) *http.Request {
	rec := httptest.NewRecorder()
	set(rec)
	req := httptest.NewRequest(http.MethodGet, "/session/ABCDE/lobby", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestIdentityCookies(t *testing.T) {
	const pid = "3f1c5a52-9a53-4c3e-8a4c-0e2f7a8b9c10"

	t.Run("unsigned pair round trips", func(t *testing.T) {
		cookies := NewIdentityCookies("", false, time.Hour)
		req := roundTrip(func(w http.ResponseWriter) { cookies.Set(w, pid, "ABCDE") })

		assert.Equal(t, service.Identity{ParticipantID: pid, SessionCode: "ABCDE"}, cookies.Read(req))
	})

	t.Run("cookie attributes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewIdentityCookies("secret", true, time.Hour).Set(rec, pid, "ABCDE")

		names := map[string]bool{}
		for _, c := range rec.Result().Cookies() {
			names[c.Name] = true
			assert.True(t, c.HttpOnly, c.Name)
			assert.True(t, c.Secure, c.Name)
			assert.Equal(t, "/", c.Path, c.Name)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite, c.Name)
			assert.Equal(t, 3600, c.MaxAge, c.Name)
		}
		assert.Equal(t, map[string]bool{ParticipantCookie: true, SessionCodeCookie: true, SignatureCookie: true}, names)
	})

	t.Run("signed pair round trips", func(t *testing.T) {
		cookies := NewIdentityCookies("secret", false, time.Hour)
		req := roundTrip(func(w http.ResponseWriter) { cookies.Set(w, pid, "ABCDE") })

		assert.Equal(t, service.Identity{ParticipantID: pid, SessionCode: "ABCDE"}, cookies.Read(req))
	})

	t.Run("tampered code drops the identity", func(t *testing.T) {
		cookies := NewIdentityCookies("secret", false, time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: ParticipantCookie, Value: pid})
		req.AddCookie(&http.Cookie{Name: SessionCodeCookie, Value: "ZZZZZ"})
		req.AddCookie(&http.Cookie{Name: SignatureCookie, Value: cookies.sign(pid, "ABCDE")})

		assert.Equal(t, service.Identity{}, cookies.Read(req))
	})

	t.Run("missing cookies read as empty", func(t *testing.T) {
		cookies := NewIdentityCookies("secret", false, time.Hour)
		assert.Equal(t, service.Identity{}, cookies.Read(httptest.NewRequest(http.MethodGet, "/", nil)))
	})

	t.Run("clear expires every cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewIdentityCookies("secret", false, time.Hour).Clear(rec)

		cleared := rec.Result().Cookies()
		assert.Len(t, cleared, 3)
		for _, c := range cleared {
			assert.Equal(t, "", c.Value)
			assert.Less(t, c.MaxAge, 0)
		}
	})
}
