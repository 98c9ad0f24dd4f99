package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"wordle/internal/models"
	"wordle/internal/service"
)

// HintHandler serves hints for the current game
type HintHandler struct {
	hintService *service.HintService
}

// NewHintHandler creates a new hint handler
func NewHintHandler(hintService *service.HintService) *HintHandler {
	return &HintHandler{hintService: hintService}
}

type hintResponse struct {
	Hint      string `json:"hint"`
	HintLevel string `json:"hint_level"`
	Message   string `json:"message"`
}

type contextualHintResponse struct {
	Hint    string `json:"hint"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type hintView struct {
	Level    models.HintLevel `json:"level"`
	Hint     string           `json:"hint"`
	IssuedAt time.Time        `json:"issued_at"`
}

// Hint returns a level 1, 2 or 3 hint; level defaults to 1
func (h *HintHandler) Hint(w http.ResponseWriter, r *http.Request) {
	h.tiered(w, r, r.URL.Query().Get("level"))
}

type getHintRequest struct {
	HintLevel *int `json:"hint_level"`
}

// GetHint is Hint with the level in a JSON body as {"hint_level": 2}.
// An empty body asks for level 1.
func (h *HintHandler) GetHint(w http.ResponseWriter, r *http.Request) {
	var req getHintRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	level := ""
	if req.HintLevel != nil {
		level = strconv.Itoa(*req.HintLevel)
	}
	h.tiered(w, r, level)
}

func (h *HintHandler) tiered(w http.ResponseWriter, r *http.Request, level string) {
	user := GetUserFromContext(r.Context())

	if level == "" {
		level = string(models.HintLevel1)
	}
	parsed, ok := models.ParseHintLevel(level)
	if !ok || parsed == models.HintLevelContextual {
		respondWithServiceError(w, "", service.ErrInvalidHintLevel)
		return
	}

	record, err := h.hintService.Hint(r.Context(), user.ID, parsed)
	if err != nil {
		respondWithServiceError(w, "Error generating hint", err)
		return
	}

	respondJSON(w, http.StatusOK, hintResponse{
		Hint:      record.Text,
		HintLevel: string(record.Level),
		Message:   "Here's your hint!",
	})
}

// Contextual returns a hint derived from the guesses made so far
func (h *HintHandler) Contextual(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	record, err := h.hintService.Hint(r.Context(), user.ID, models.HintLevelContextual)
	if err != nil {
		respondWithServiceError(w, "Error generating contextual hint", err)
		return
	}

	respondJSON(w, http.StatusOK, contextualHintResponse{
		Hint:    record.Text,
		Type:    string(models.HintLevelContextual),
		Message: "Here's a hint based on your guesses!",
	})
}

// History lists the hints issued for the current game
func (h *HintHandler) History(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	records, err := h.hintService.History(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, "Error loading hint history", err)
		return
	}

	hints := make([]hintView, 0, len(records))
	for _, rec := range records {
		hints = append(hints, hintView{Level: rec.Level, Hint: rec.Text, IssuedAt: rec.IssuedAt})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"hints": hints})
}
