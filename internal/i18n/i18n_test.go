package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	res := NewResolver("it")

	tests := []struct {
		name        string
		setup       func(r *http.Request)
		url         string
		wantTag     language.Tag
		wantPersist bool
	}{
		{"default", func(r *http.Request) {}, "/", language.Italian, false},
		{"query param wins and persists", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "it"})
		}, "/?lang=en", language.English, true},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})
		}, "/", language.English, false},
		{"accept-language", func(r *http.Request) {
			r.Header.Set("Accept-Language", "en-US,en;q=0.9")
		}, "/", language.English, false},
		{"unsupported accept-language falls back", func(r *http.Request) {
			r.Header.Set("Accept-Language", "ja")
		}, "/", language.Italian, false},
		{"bad query param is ignored", func(r *http.Request) {}, "/?lang=zz-garbage!", language.Italian, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			tc.setup(req)
			tag, persist := res.ResolveTag(req)
			assert.Equal(t, tc.wantTag, tag)
			assert.Equal(t, tc.wantPersist, persist)
		})
	}
}

func TestNewResolver_Fallback(t *testing.T) {
	assert.Equal(t, language.English, NewResolver("en").Default())
	assert.Equal(t, language.Italian, NewResolver("").Default())
	assert.Equal(t, language.Italian, NewResolver("klingon").Default())
}

func TestPrinter(t *testing.T) {
	assert.Equal(t, "Sessione non trovata. Controlla il codice.",
		Printer(language.Italian).Sprintf("reason.SESSIONE_NON_TROVATA"))
	assert.Equal(t, "Submitted: 1/2", Printer(language.English).Sprintf("badge.count", 1, 2))
	assert.Equal(t, "Consegnate: 1/2", Printer(language.Italian).Sprintf("badge.count", 1, 2))
}
