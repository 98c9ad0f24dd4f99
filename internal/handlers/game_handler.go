package handlers

import (
	"errors"
	"net/http"
	"time"

	"wordle/internal/models"
	"wordle/internal/service"
)

// GameHandler serves the game lifecycle endpoints
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type startResponse struct {
	Message     string `json:"message"`
	SessionID   string `json:"session_id"`
	MaxAttempts int    `json:"max_attempts"`
	Date        string `json:"date"`
}

type guessRequest struct {
	Word string `json:"word"`
}

type guessResponse struct {
	Message           string         `json:"message"`
	Colors            []models.Color `json:"colors"`
	Win               bool           `json:"win"`
	RemainingAttempts int            `json:"remaining_attempts"`
	Status            models.Status  `json:"status"`
	Attempt           int            `json:"attempt"`
	TargetWord        string         `json:"target_word,omitempty"`
}

type guessView struct {
	Attempt     int            `json:"attempt"`
	Word        string         `json:"word"`
	Colors      []models.Color `json:"colors"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

type sessionView struct {
	SessionID         string        `json:"session_id"`
	Status            models.Status `json:"status"`
	Date              string        `json:"date"`
	MaxAttempts       int           `json:"max_attempts"`
	RemainingAttempts int           `json:"remaining_attempts"`
	StartedAt         time.Time     `json:"started_at"`
	Guesses           []guessView   `json:"guesses"`
}

// Start begins a new game for the current user
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	result, err := h.gameService.Start(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, "Error starting game", err)
		return
	}

	respondJSON(w, http.StatusOK, startResponse{
		Message:     result.Message,
		SessionID:   result.SessionID,
		MaxAttempts: result.MaxAttempts,
		Date:        result.CalendarDay,
	})
}

// Guess scores a guess against the current game
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req guessRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.gameService.Guess(r.Context(), user.ID, req.Word)
	if err != nil {
		// guessing without a game is a bad request, not a missing resource
		if errors.Is(err, service.ErrNoActiveSession) {
			respondWithError(w, http.StatusBadRequest, CodeNoActiveSession, err.Error(), "", nil)
			return
		}
		respondWithServiceError(w, "Error submitting guess", err)
		return
	}

	respondJSON(w, http.StatusOK, guessResponse{
		Message:           result.Message,
		Colors:            result.Colors,
		Win:               result.Win,
		RemainingAttempts: result.RemainingAttempts,
		Status:            result.Status,
		Attempt:           result.Attempt,
		TargetWord:        result.TargetWord,
	})
}

// Current returns the active game without its target word
func (h *GameHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	session, err := h.gameService.Current(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, "Error loading game", err)
		return
	}

	view := sessionView{
		SessionID:         session.ID,
		Status:            session.Status,
		Date:              session.CalendarDay,
		MaxAttempts:       session.MaxAttempts,
		RemainingAttempts: session.RemainingAttempts(),
		StartedAt:         session.StartedAt,
		Guesses:           make([]guessView, 0, len(session.Guesses)),
	}
	for _, g := range session.Guesses {
		view.Guesses = append(view.Guesses, guessView{
			Attempt:     g.Attempt,
			Word:        g.Word,
			Colors:      g.Colors,
			SubmittedAt: g.SubmittedAt,
		})
	}

	respondJSON(w, http.StatusOK, view)
}
