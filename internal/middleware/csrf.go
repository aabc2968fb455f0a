package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fantabuste/envelope-server-go/internal/audit"
	"github.com/fantabuste/envelope-server-go/internal/util"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
	CSRFFormField  = "csrf_token"
	CSRFMaxAge     = 24 * 60 * 60
)

const csrfTokenContextKey contextKey = "csrfToken"

// GetCSRFToken returns the token pages must echo in their forms.
func GetCSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(csrfTokenContextKey).(string); ok {
		return token
	}
	return ""
}

// CSRFMiddleware provides CSRF protection for state-changing requests
// with the double-submit cookie pattern. The token lives in a cookie and
// every unsafe request must echo it in the csrf_token form field or the
// X-CSRF-Token header.
type CSRFMiddleware struct {
	isProduction bool
}

func NewCSRFMiddleware(isProduction bool) *CSRFMiddleware {
	return &CSRFMiddleware{isProduction: isProduction}
}

func (m *CSRFMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(CSRFCookieName); err == nil {
			token = cookie.Value
		}

		if token == "" {
			if !isSafeMethod(r.Method) {
				m.reject(w, r, "missing cookie")
				return
			}
			generated, err := util.GenerateToken()
			if err != nil {
				log.Error().Err(err).Msg("failed to generate csrf token")
				writeText(w, http.StatusInternalServerError, "Failed to generate security token")
				return
			}
			token = generated
			m.setCSRFCookie(w, token)
		}

		if !isSafeMethod(r.Method) {
			// Parse once here so a truncated body fails the request instead
			// of reaching handlers as empty form values.
			if err := r.ParseForm(); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeText(w, http.StatusRequestEntityTooLarge, "Request body too large")
					return
				}
				writeText(w, http.StatusBadRequest, "Malformed form body")
				return
			}

			submitted := r.Header.Get(CSRFHeaderName)
			if submitted == "" {
				submitted = r.PostFormValue(CSRFFormField)
			}
			if submitted == "" {
				m.reject(w, r, "missing token")
				return
			}
			if !util.ConstantTimeEqual(token, submitted) {
				m.reject(w, r, "token mismatch")
				return
			}
		}

		ctx := context.WithValue(r.Context(), csrfTokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *CSRFMiddleware) reject(w http.ResponseWriter, r *http.Request, why string) {
	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventCSRFFailure,
		Details: map[string]interface{}{"why": why, "path": r.URL.Path},
	})
	writeText(w, http.StatusForbidden, "Invalid or missing form token. Reload the page and try again.")
}

func (m *CSRFMiddleware) setCSRFCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CSRFMaxAge,
		HttpOnly: true,
		Secure:   m.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet ||
		method == http.MethodHead ||
		method == http.MethodOptions
}
