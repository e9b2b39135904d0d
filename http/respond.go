package httpapi

import (
	"net/http"

	"github.com/go-chi/render"
)

func writeError(w http.ResponseWriter, req *http.Request, code int, msg string) {
	render.Status(req, code)
	render.JSON(w, req, map[string]any{"error": msg})
}

// writeRaw passes an upstream JSON body through untouched.
func writeRaw(w http.ResponseWriter, raw []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
