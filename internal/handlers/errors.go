package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wordle/internal/service"
	"wordle/internal/validation"
)

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, code, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Message: userMsg, Code: code})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var serviceErrors = []errorMapping{
	{service.ErrDailyLimitExceeded, http.StatusForbidden, CodeDailyLimitExceeded},
	{service.ErrGameInProgress, http.StatusForbidden, CodeGameInProgress},
	{service.ErrNoActiveSession, http.StatusNotFound, CodeNoActiveSession},
	{service.ErrInvalidGuessLength, http.StatusBadRequest, CodeInvalidGuessLength},
	{service.ErrInvalidWord, http.StatusBadRequest, CodeInvalidWord},
	{service.ErrInvalidHintLevel, http.StatusBadRequest, CodeInvalidHintLevel},
	{service.ErrInvalidDate, http.StatusBadRequest, CodeInvalidDate},
	{service.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound},
	{service.ErrUsernameTaken, http.StatusConflict, CodeUsernameTaken},
	{service.ErrInappropriateUsername, http.StatusBadRequest, CodeValidationFailed},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
	{service.ErrSessionBusy, http.StatusConflict, CodeSessionBusy},
}

// respondWithServiceError maps a service error to its status and code.
// Unknown errors are logged and reported as 500 without detail.
func respondWithServiceError(w http.ResponseWriter, logMsg string, err error) {
	var verr validation.ValidationError
	if errors.As(err, &verr) {
		respondWithError(w, http.StatusBadRequest, CodeValidationFailed, verr.Message, "", nil)
		return
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			respondWithError(w, m.status, m.code, m.err.Error(), "", nil)
			return
		}
	}

	respondWithError(w, http.StatusInternalServerError, CodeInternal, ErrInternalServerError, logMsg, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, ErrInvalidRequestBody, "", nil)
		return false
	}
	return true
}
