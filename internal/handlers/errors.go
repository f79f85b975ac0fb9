package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bytebabies/internal/docstore"
	"bytebabies/internal/service"
	"bytebabies/internal/session"
	"bytebabies/internal/validation"
)

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// respondWithError logs err (when set) and writes the user-facing message
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}
	writeError(w, status, userMsg)
}

// respondWithFacadeError maps a facade error to its status. Domain errors carry their
// own message; anything else is a store failure and is logged.
func respondWithFacadeError(w http.ResponseWriter, logMsg string, err error) {
	var verr validation.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, service.ErrUnknownChildField),
		errors.Is(err, service.ErrInvalidChildField),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, session.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrNotSignedIn):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrParentHasChildren), errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, docstore.ErrNotFound):
		writeError(w, http.StatusNotFound, ErrNotFound)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
