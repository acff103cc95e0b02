package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/playlist/internal/domain"
	"github.com/MrSnakeDoc/playlist/internal/logger"
)

// Client-facing messages of the JSON API.
const (
	msgVideoAdded    = "Video agregado exitosamente"
	msgVideoDeleted  = "Video eliminado exitosamente"
	msgVideoNotFound = "Video no encontrado"
	msgInternalError = "Error interno del servidor: "
	msgInvalidTop    = "La cantidad debe ser un número entero"
)

// result is the envelope of mutating API calls.
type result struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message,omitempty"`
	Video    *domain.Video `json:"video,omitempty"`
	Likes    *int          `json:"likes,omitempty"`
	Favorito *bool         `json:"favorito,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

func writeFailure(w http.ResponseWriter, status int, msg string, log logger.Logger) {
	writeJSON(w, status, result{Success: false, Message: msg}, log)
}

// writeError maps domain errors to HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error, log logger.Logger) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(w, http.StatusNotFound, msgVideoNotFound, log)
	case domain.IsValidation(err):
		writeFailure(w, http.StatusBadRequest, err.Error(), log)
	default:
		log.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
		writeFailure(w, http.StatusInternalServerError, msgInternalError+err.Error(), log)
	}
}
