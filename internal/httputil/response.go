package httputil

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	apperrors "github.com/fantabuste/envelope-server-go/internal/errors"
)

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Debug().Err(err).Msg("failed to write json response")
	}
}

func WriteText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message + "\n"))
}

// Redirect answers a form post with 303 See Other so the browser follows
// with a GET. query may be nil.
func Redirect(w http.ResponseWriter, r *http.Request, path string, query url.Values) {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RedirectWithReason redirects to path carrying reason under param,
// for example ?error=SESSIONE_NON_TROVATA.
func RedirectWithReason(w http.ResponseWriter, r *http.Request, path, param string, reason apperrors.Reason) {
	Redirect(w, r, path, url.Values{param: {string(reason)}})
}

// StatusFromCode maps an error category to the status used when the error
// is rendered instead of redirected.
func StatusFromCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
