package handlers

import (
	"net/http"

	"wordle/internal/service"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// Register creates an account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithServiceError(w, "Error registering user", err)
		return
	}

	respondJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		Role:    user.Role,
	})
}

// Login issues a bearer token for valid credentials
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithServiceError(w, "Error logging in", err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token:    result.Token,
		Role:     result.Role,
		Username: result.Username,
	})
}
