package service

import (
	"errors"

	"wordle/internal/game"
	"wordle/internal/repository"
)

var (
	ErrDailyLimitExceeded    = errors.New("daily game limit reached, come back tomorrow")
	ErrGameInProgress        = errors.New("a game is already in progress")
	ErrNoActiveSession       = errors.New("no active game session, start a new game")
	ErrInvalidGuessLength    = game.ErrInvalidGuessLength
	ErrInvalidWord           = errors.New("not a valid word")
	ErrInvalidHintLevel      = game.ErrInvalidHintLevel
	ErrInvalidDate           = errors.New("date must be formatted as YYYY-MM-DD")
	ErrUserNotFound          = errors.New("user not found")
	ErrSessionBusy           = errors.New("another request for this player is still in progress")
	ErrUsernameTaken         = repository.ErrUsernameTaken
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInappropriateUsername = errors.New("username contains inappropriate language")
)
