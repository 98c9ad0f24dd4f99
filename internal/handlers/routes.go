package handlers

import "net/http"

// Handlers groups the HTTP handlers mounted by RegisterRoutes
type Handlers struct {
	Middleware *Middleware
	Auth       *AuthHandler
	Game       *GameHandler
	Hint       *HintHandler
	Admin      *AdminHandler
}

// RegisterRoutes mounts the JSON API on mux
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	m := h.Middleware

	// Public routes
	mux.HandleFunc("POST /api/auth/register", m.RateLimit(h.Auth.Register))
	mux.HandleFunc("POST /api/auth/login", m.RateLimit(h.Auth.Login))

	// Game routes
	mux.HandleFunc("POST /api/game/start", m.RequireAuth(h.Game.Start))
	mux.HandleFunc("POST /api/game/guess", m.RequireAuth(h.Game.Guess))
	mux.HandleFunc("GET /api/game/current", m.RequireAuth(h.Game.Current))

	// Hint routes
	mux.HandleFunc("GET /api/hint", m.RequireAuth(h.Hint.Hint))
	mux.HandleFunc("POST /api/hint/get-hint", m.RequireAuth(h.Hint.GetHint))
	mux.HandleFunc("GET /api/hint/contextual", m.RequireAuth(h.Hint.Contextual))
	mux.HandleFunc("GET /api/hint/contextual-hint", m.RequireAuth(h.Hint.Contextual))
	mux.HandleFunc("GET /api/hint/history", m.RequireAuth(h.Hint.History))

	// Admin routes
	mux.HandleFunc("GET /api/admin/report/daily", m.RequireAdmin(h.Admin.DailyReport))
	mux.HandleFunc("GET /api/admin/report/user", m.RequireAdmin(h.Admin.UserReport))
}
