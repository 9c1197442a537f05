package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
)

type responder struct {
	logger *slog.Logger
}

func (res *responder) JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		res.logger.WarnContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

// Error maps err to its status and body. Server-side failures are logged
// with the underlying error, which never reaches the client.
func (res *responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	body := apierr.New(err)

	logLevel := slog.LevelInfo
	if body.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if body.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	res.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	res.JSON(w, r, body.StatusCode, body)
}
