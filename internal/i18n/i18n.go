// Package i18n resolves the page language and prints UI messages.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "fb_lang"
)

var supported = []language.Tag{language.Italian, language.English}

var matcher = language.NewMatcher(supported)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	return supported
}

// Resolver picks the language for a request, falling back to a default.
type Resolver struct {
	fallback language.Tag
}

// NewResolver parses the configured default; unknown values mean Italian.
func NewResolver(defaultLanguage string) *Resolver {
	tag, ok := ParseTag(defaultLanguage)
	if !ok {
		tag = language.Italian
	}
	return &Resolver{fallback: tag}
}

func (res *Resolver) Default() language.Tag {
	return res.fallback
}

// ResolveTag determines the best language tag for the request.
// The bool indicates whether the lang query param should be persisted as a cookie.
func (res *Resolver) ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return res.fallback, false
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := ParseTag(langValue); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if _, index, confidence := matcher.Match(tags...); confidence != language.No {
				return supported[index], false
			}
		}
	}

	return res.fallback, false
}

// ParseTag maps a raw tag such as "en-US" onto a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return language.Und, false
	}
	return supported[index], true
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
