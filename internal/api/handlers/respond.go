package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/api/dto"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError is the single boundary that maps error kinds to status codes
// and safe messages. Anything unclassified is logged and answered as an
// internal error; store-level text never reaches the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if appErr := apperr.As(err); appErr != nil {
		switch appErr.Kind {
		case apperr.KindBadRequest:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: appErr.Message})
			return
		case apperr.KindUnauthorized:
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: appErr.Message})
			return
		case apperr.KindValidation:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
				Message: appErr.Message,
				Errors:  appErr.Fields,
			})
			return
		}
	}

	logger.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
}
