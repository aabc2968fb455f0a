package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/message"

	"github.com/fantabuste/envelope-server-go/internal/i18n"
	"github.com/fantabuste/envelope-server-go/internal/middleware"
	"github.com/fantabuste/envelope-server-go/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "join", "envelope", "lobby", "admin", "error"}

var templateFuncs = template.FuncMap{
	"board": func(page *Page, board *service.SessionBoard) boardView {
		return boardView{Page: page, Board: board}
	},
}

// boardView feeds the shared participant listing.
type boardView struct {
	Page  *Page
	Board *service.SessionBoard
}

// Page is the data every template receives. Data holds the page specific
// view; the rest is filled in by the renderer.
type Page struct {
	Lang      string
	CSRFToken string
	EventsURL string
	Data      any

	printer *message.Printer
	path    string
	query   url.Values
}

// T prints a localized message.
func (p *Page) T(key string, args ...any) string {
	return p.printer.Sprintf(key, args...)
}

// Reason prints the message for a reason token. Tokens without a message
// are shown raw behind the generic error prefix.
func (p *Page) Reason(reason string) string {
	if !isReasonToken(reason) {
		return p.printer.Sprintf("error.prefix", reason)
	}
	key := "reason." + reason
	if msg := p.printer.Sprintf(key); msg != key {
		return msg
	}
	return p.printer.Sprintf("error.prefix", reason)
}

// LangURL is the current page with the language switched.
func (p *Page) LangURL(lang string) string {
	query := url.Values{}
	for k, v := range p.query {
		query[k] = v
	}
	query.Set(i18n.LangParam, lang)
	return p.path + "?" + query.Encode()
}

func isReasonToken(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c < 'A' || c > 'Z') && c != '_' {
			return false
		}
	}
	return true
}

type Renderer struct {
	resolver *i18n.Resolver
	pages    map[string]*template.Template
}

func NewRenderer(resolver *i18n.Resolver) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/board.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{resolver: resolver, pages: pages}, nil
}

// Render writes a full page. The template runs into a buffer first so a
// failing template never leaves a half written response.
func (rr *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	tmpl, ok := rr.pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	tag, persist := rr.resolver.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}

	page.Lang = tag.String()
	page.CSRFToken = middleware.GetCSRFToken(r.Context())
	page.printer = i18n.Printer(tag)
	page.path = r.URL.Path
	page.query = r.URL.Query()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", &page); err != nil {
		log.Error().Err(err).Str("page", name).Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError shows the generic error page. Details stay in the log.
func (rr *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int, reason string) {
	rr.Render(w, r, status, "error", Page{Data: errorView{Reason: reason}})
}

type errorView struct {
	Reason string
}
