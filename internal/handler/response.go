package handler

import (
	"net/http"

	"github.com/fantabuste/envelope-server-go/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeText(w http.ResponseWriter, status int, message string) {
	httputil.WriteText(w, status, message)
}
