package middleware

import (
	"net/http"

	"github.com/fantabuste/envelope-server-go/internal/httputil"
)

func writeText(w http.ResponseWriter, status int, message string) {
	httputil.WriteText(w, status, message)
}
